// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/cfgdiff/cfgdiff/internal/backend/local"
	"github.com/cfgdiff/cfgdiff/internal/backend/s3"
	"github.com/cfgdiff/cfgdiff/internal/config"
	"github.com/cfgdiff/cfgdiff/internal/log"
	"github.com/cfgdiff/cfgdiff/internal/meta"
	"github.com/cfgdiff/cfgdiff/internal/revspec"
)

// DefaultArchiveDir is the local archive directory, relative to the store.
const DefaultArchiveDir = "archive"

// Backend lists and fetches archived configuration revisions.
type Backend interface {
	// Revisions returns every revision, newest first.
	Revisions(ctx context.Context) ([]*revspec.Revision, error)
	// Body returns the snapshot body of rev.
	Body(ctx context.Context, rev *revspec.Revision) ([]byte, error)
	String() string
	Type() string
}

// NewBackend returns the archive selected for cmd. The type comes from the
// store's ::TYPE override, then the --archive flag (which falls back to
// archive.type in the config file), then local.
func NewBackend(ctx context.Context, cmd *cli.Command) (Backend, error) {
	m, _ := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("NewBackend: meta: %+v", m.StoreSpec)

	typ := m.Archive
	if typ == "" {
		typ = cmd.String("archive")
	}
	return New(ctx, typ, m.StoreDir)
}

// New returns the archive of type typ for the store at storeDir.
func New(ctx context.Context, typ, storeDir string) (Backend, error) {
	switch typ {
	case "", "local":
		dir, _ := config.GetString("archive.dir", DefaultArchiveDir)
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(storeDir, dir)
		}
		return local.NewBackendLocal(ctx, local.FromDir(dir))
	case "s3":
		return s3.NewBackendS3(ctx, s3.FromConfig())
	default:
		return nil, fmt.Errorf("unknown archive type %s", typ)
	}
}

// Resolve lists be's revisions and resolves specs against them.
func Resolve(ctx context.Context, be Backend, specs ...string) ([]*revspec.Revision, error) {
	revisions, err := be.Revisions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions of %s: %w", be, err)
	}
	return revspec.Resolve(revisions, specs...)
}

// Read returns the body of rev. Revisions resolved from a file on disk are
// read directly; all others come from be.
func Read(ctx context.Context, be Backend, rev *revspec.Revision) ([]byte, error) {
	if rev.File {
		body, err := os.ReadFile(rev.Location)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot file: %w", err)
		}
		return body, nil
	}
	return be.Body(ctx, rev)
}
