// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/cfgdiff/cfgdiff/internal/cacheutil"
	"github.com/cfgdiff/cfgdiff/internal/log"
	"github.com/cfgdiff/cfgdiff/internal/revspec"
)

// BackendS3 is an archive kept as the object versions of one key in a
// versioned bucket. Every upload of the snapshot is one revision.
type BackendS3 struct {
	Bucket  string
	Key     string
	Region  string
	Profile string
	Client  API
}

func (be *BackendS3) client(ctx context.Context) (API, error) {
	if be.Client != nil {
		return be.Client, nil
	}

	var opts []AWSOption
	if be.Region != "" {
		opts = append(opts, WithAWSRegion(be.Region))
	}
	if be.Profile != "" {
		opts = append(opts, WithAWSProfile(be.Profile))
	}
	c, err := NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	be.Client = c
	return c, nil
}

// Revisions implements backend.Backend. It lists the versions of be.Key,
// newest first. Versions older than the newest delete marker belong to a
// previous life of the key and are dropped. The serial of a revision is its
// rank counted from the oldest, starting at 1.
func (be *BackendS3) Revisions(ctx context.Context) ([]*revspec.Revision, error) {
	svc, err := be.client(ctx)
	if err != nil {
		return nil, err
	}

	paginator := s3v2.NewListObjectVersionsPaginator(svc, &s3v2.ListObjectVersionsInput{
		Bucket: awsv2.String(be.Bucket),
		Prefix: awsv2.String(be.Key),
	})

	var allDeleteMarkers []types.DeleteMarkerEntry
	var allVersions []types.ObjectVersion
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list object versions: %w", err)
		}
		allDeleteMarkers = append(allDeleteMarkers, page.DeleteMarkers...)
		allVersions = append(allVersions, page.Versions...)
	}

	// The prefix also matches longer keys, so everything is filtered on the
	// exact key.
	var mostRecentDelete time.Time
	for _, d := range allDeleteMarkers {
		if awsv2.ToString(d.Key) != be.Key {
			continue
		}
		if d.LastModified != nil && d.LastModified.After(mostRecentDelete) {
			mostRecentDelete = *d.LastModified
		}
	}

	revisions := []*revspec.Revision{}
	for _, v := range allVersions {
		if awsv2.ToString(v.Key) != be.Key {
			log.Debugf("Throwing away %s", awsv2.ToString(v.Key))
			continue
		}
		if v.VersionId == nil || v.LastModified == nil {
			continue
		}
		if v.LastModified.Before(mostRecentDelete) {
			continue
		}

		revisions = append(revisions, &revspec.Revision{
			ID:        *v.VersionId,
			CreatedAt: *v.LastModified,
			Size:      awsv2.ToInt64(v.Size),
			Location:  be.String(),
		})
	}

	sort.SliceStable(revisions, func(i, j int) bool {
		return revisions[i].CreatedAt.After(revisions[j].CreatedAt)
	})
	for i, r := range revisions {
		r.Serial = int64(len(revisions) - i)
	}

	log.Debugf("s3 revisions: %s count=%d", be, len(revisions))
	return revisions, nil
}

// Body implements backend.Backend. Version bodies never change, so they are
// cached on disk by version ID.
func (be *BackendS3) Body(ctx context.Context, rev *revspec.Revision) ([]byte, error) {
	if err := cacheutil.Clean(); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}

	sub := be.cacheDirs()
	if entry, ok := cacheutil.Read(sub, rev.ID); ok {
		return entry.Data, nil
	}

	svc, err := be.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := svc.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket:    awsv2.String(be.Bucket),
		Key:       awsv2.String(be.Key),
		VersionId: awsv2.String(rev.ID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}

	if err := cacheutil.Write(sub, rev.ID, data); err != nil {
		log.WithError(err).Error("error writing to cache")
	}

	return data, nil
}

func (be *BackendS3) cacheDirs() []string {
	return []string{"s3", be.Bucket, be.Key}
}

func (be *BackendS3) String() string {
	return "s3://" + be.Bucket + "/" + be.Key
}

func (be *BackendS3) Type() string {
	return "s3"
}
