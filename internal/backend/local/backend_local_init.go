// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cfgdiff/cfgdiff/internal/log"
)

type BackendLocalOption = func(ctx context.Context, be *BackendLocal) error

// NewBackendLocal returns a BackendLocal that implements the Backend
// interface.
func NewBackendLocal(ctx context.Context, options ...BackendLocalOption) (*BackendLocal, error) {
	options = append([]BackendLocalOption{WithDefaults()}, options...)

	be := &BackendLocal{}

	for _, opt := range options {
		if err := opt(ctx, be); err != nil {
			return nil, err
		}
	}

	return be, nil
}

func WithDefaults() BackendLocalOption {
	return func(ctx context.Context, be *BackendLocal) error {
		cwd, _ := os.Getwd()
		be.Dir = filepath.Join(cwd, "archive")
		be.Pattern = "*"
		return nil
	}
}

// FromDir sets the archive directory. Relative paths are taken from the
// working directory. The directory does not have to exist yet; an absent
// archive simply has no revisions.
func FromDir(dir string) BackendLocalOption {
	return func(ctx context.Context, be *BackendLocal) error {
		if filepath.IsAbs(dir) {
			be.Dir = dir
		} else {
			cwd, _ := os.Getwd()
			be.Dir = filepath.Join(cwd, dir)
		}

		log.Debugf("NewBackendLocal FromDir(): dir = %s", be.Dir)
		return nil
	}
}

// WithPattern limits the archive to file names matching the glob pattern.
func WithPattern(pattern string) BackendLocalOption {
	return func(ctx context.Context, be *BackendLocal) error {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return err
		}
		be.Pattern = pattern
		return nil
	}
}
