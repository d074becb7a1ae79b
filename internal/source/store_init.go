// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cfgdiff/cfgdiff/internal/backend"
	"github.com/cfgdiff/cfgdiff/internal/config"
	"github.com/cfgdiff/cfgdiff/internal/snapshot"
)

// Default live snapshot file names, relative to the store directory.
const (
	DefaultActiveFile  = "active.json"
	DefaultWorkingFile = "working.json"
)

// StoreOption configures a Store under construction.
type StoreOption func(context.Context, *Store) error

// NewStore builds a Store. Defaults from the config file are applied before
// opts.
func NewStore(ctx context.Context, options ...StoreOption) (*Store, error) {
	s := &Store{}
	options = append([]StoreOption{WithDefaults()}, options...)

	for _, option := range options {
		if err := option(ctx, s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// WithDefaults applies the active, working, active_file, working_file and
// format keys of the config file.
func WithDefaults() StoreOption {
	return func(_ context.Context, s *Store) error {
		s.Active, _ = config.GetString("active", DefaultActive)
		s.Working, _ = config.GetString("working", DefaultWorking)
		s.ActiveFile, _ = config.GetString("active_file", DefaultActiveFile)
		s.WorkingFile, _ = config.GetString("working_file", DefaultWorkingFile)

		if f, _ := config.GetString("format", ""); f != "" {
			format, err := snapshot.ParseFormat(f)
			if err != nil {
				return err
			}
			s.Format = format
		}
		return nil
	}
}

// FromDir roots relative live file names at dir.
func FromDir(dir string) StoreOption {
	return func(_ context.Context, s *Store) error {
		if dir == "" {
			return fmt.Errorf("store directory is required")
		}
		s.Dir = dir
		return nil
	}
}

// WithIdentifiers renames the live snapshots. Empty names keep the current
// ones.
func WithIdentifiers(active, working string) StoreOption {
	return func(_ context.Context, s *Store) error {
		if active != "" {
			s.Active = active
		}
		if working != "" {
			s.Working = working
		}
		if s.Active == s.Working {
			return fmt.Errorf("active and working identifiers must differ: %q", s.Active)
		}
		return nil
	}
}

// WithLiveFiles sets the files served for the live snapshots. Empty names keep
// the current ones.
func WithLiveFiles(active, working string) StoreOption {
	return func(_ context.Context, s *Store) error {
		if active != "" {
			s.ActiveFile = active
		}
		if working != "" {
			s.WorkingFile = working
		}
		return nil
	}
}

// WithArchive serves non-live identifiers from be.
func WithArchive(be backend.Backend) StoreOption {
	return func(_ context.Context, s *Store) error {
		s.Archive = be
		return nil
	}
}

// WithFormat forces the snapshot format instead of detecting it.
func WithFormat(format snapshot.Format) StoreOption {
	return func(_ context.Context, s *Store) error {
		s.Format = format
		return nil
	}
}

// WithPassphrase sets the supplier used to open encrypted snapshots.
func WithPassphrase(pass snapshot.PassphraseFunc) StoreOption {
	return func(_ context.Context, s *Store) error {
		s.Passphrase = pass
		return nil
	}
}

func (s *Store) livePath(file string) string {
	if filepath.IsAbs(file) || s.Dir == "" {
		return file
	}
	return filepath.Join(s.Dir, file)
}
