// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"errors"

	"github.com/cfgdiff/cfgdiff/internal/config"
	"github.com/cfgdiff/cfgdiff/internal/log"
)

type BackendS3Option = func(ctx context.Context, be *BackendS3) error

// NewBackendS3 returns a BackendS3 that implements the Backend interface. A
// bucket and key are required.
func NewBackendS3(ctx context.Context, options ...BackendS3Option) (*BackendS3, error) {
	be := &BackendS3{}

	for _, opt := range options {
		if err := opt(ctx, be); err != nil {
			return nil, err
		}
	}

	if be.Bucket == "" || be.Key == "" {
		return nil, errors.New("s3 archive needs archive.s3.bucket and archive.s3.key")
	}

	return be, nil
}

// FromConfig reads bucket, key, region and profile from the archive.s3
// section of the config file.
func FromConfig() BackendS3Option {
	return func(ctx context.Context, be *BackendS3) error {
		be.Bucket, _ = config.GetString("archive.s3.bucket", be.Bucket)
		be.Key, _ = config.GetString("archive.s3.key", be.Key)
		be.Region, _ = config.GetString("archive.s3.region", be.Region)
		be.Profile, _ = config.GetString("archive.s3.profile", be.Profile)

		log.Debugf("NewBackendS3 FromConfig(): bucket=%s key=%s region=%s", be.Bucket, be.Key, be.Region)
		return nil
	}
}

// WithObject sets the bucket and key holding the snapshot.
func WithObject(bucket, key string) BackendS3Option {
	return func(ctx context.Context, be *BackendS3) error {
		be.Bucket = bucket
		be.Key = key
		return nil
	}
}

func WithRegion(region string) BackendS3Option {
	return func(ctx context.Context, be *BackendS3) error {
		if region != "" {
			be.Region = region
		}
		return nil
	}
}

// WithClient injects the S3 client instead of building one from the AWS
// config chain.
func WithClient(client API) BackendS3Option {
	return func(ctx context.Context, be *BackendS3) error {
		be.Client = client
		return nil
	}
}
