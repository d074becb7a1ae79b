// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cfgdiff/cfgdiff/internal/log"
	"github.com/cfgdiff/cfgdiff/internal/revspec"
)

// BackendLocal is an archive kept as snapshot files in one directory, e.g.
// config.boot.1.json, config.boot.2.json. Each file is one revision.
type BackendLocal struct {
	Dir     string
	Pattern string
}

// Revisions implements backend.Backend. It scans be.Dir for files matching
// be.Pattern and orders them newest first by modification time. The serial of
// a revision is its rank counted from the oldest, starting at 1. Results are
// not cached since local filesystem access is cheap.
func (be *BackendLocal) Revisions(_ context.Context) ([]*revspec.Revision, error) {
	files, err := filepath.Glob(filepath.Join(be.Dir, be.Pattern))
	if err != nil {
		return nil, err
	}

	revisions := []*revspec.Revision{}
	for _, f := range files {
		stat, err := os.Stat(f)
		if err != nil || !stat.Mode().IsRegular() {
			continue
		}
		revisions = append(revisions, &revspec.Revision{
			ID:        filepath.Base(f),
			CreatedAt: stat.ModTime(),
			Size:      stat.Size(),
			Location:  f,
		})
	}

	// Newest first; names break ties so equal mtimes stay stable.
	sort.SliceStable(revisions, func(i, j int) bool {
		if !revisions[i].CreatedAt.Equal(revisions[j].CreatedAt) {
			return revisions[i].CreatedAt.After(revisions[j].CreatedAt)
		}
		return revisions[i].ID > revisions[j].ID
	})
	for i, r := range revisions {
		r.Serial = int64(len(revisions) - i)
	}

	log.Debugf("local revisions: dir=%s count=%d", be.Dir, len(revisions))
	return revisions, nil
}

// Body implements backend.Backend.
func (be *BackendLocal) Body(_ context.Context, rev *revspec.Revision) ([]byte, error) {
	body, err := os.ReadFile(rev.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to read revision %s: %w", rev.ID, err)
	}
	return body, nil
}

func (be *BackendLocal) String() string {
	return be.Dir
}

func (be *BackendLocal) Type() string {
	return "local"
}
