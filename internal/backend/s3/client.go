// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/cfgdiff/cfgdiff/internal/log"
)

// API is the part of the S3 client the archive uses.
type API interface {
	s3v2.ListObjectVersionsAPIClient
	GetObject(ctx context.Context, params *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// awsOptions holds optional overrides for AWS config loading.
type awsOptions struct {
	profile string
	region  string
	retryer func() awsv2.Retryer
}

// AWSOption customizes how AWS config is loaded. With no options the shell
// environment and shared config chain (AWS_PROFILE, ~/.aws/config, IMDS) is
// inherited.
type AWSOption func(*awsOptions)

// WithAWSProfile sets the shared config profile.
func WithAWSProfile(profile string) AWSOption {
	return func(o *awsOptions) { o.profile = profile }
}

// WithAWSRegion sets the region override.
func WithAWSRegion(region string) AWSOption {
	return func(o *awsOptions) { o.region = region }
}

// WithAWSRetryer injects a custom retryer; SDK defaults apply otherwise.
func WithAWSRetryer(newRetryer func() awsv2.Retryer) AWSOption {
	return func(o *awsOptions) { o.retryer = newRetryer }
}

// loadOptions converts opts into SDK load options.
func loadOptions(opts ...AWSOption) []func(*config.LoadOptions) error {
	var o awsOptions
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("aws opts: profile=%s region=%s", o.profile, o.region)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}
	return loadOpts
}

// NewClient loads the AWS config and builds an S3 client from it.
func NewClient(ctx context.Context, opts ...AWSOption) (*s3v2.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, loadOptions(opts...)...)
	if err != nil {
		log.Debugf("aws config load err: %v", err)
		return nil, err
	}
	return s3v2.NewFromConfig(cfg), nil
}
