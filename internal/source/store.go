// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cfgdiff/cfgdiff/internal/backend"
	"github.com/cfgdiff/cfgdiff/internal/cnode"
	"github.com/cfgdiff/cfgdiff/internal/log"
	"github.com/cfgdiff/cfgdiff/internal/revspec"
	"github.com/cfgdiff/cfgdiff/internal/snapshot"
)

// Store is a Source over a store directory and an optional revision archive.
type Store struct {
	Dir string

	// Active and Working are the identifiers of the live snapshots, served
	// from ActiveFile and WorkingFile.
	Active      string
	Working     string
	ActiveFile  string
	WorkingFile string

	Archive    backend.Backend
	Format     snapshot.Format
	Passphrase snapshot.PassphraseFunc
}

var _ Source = (*Store)(nil)

// Load implements Source.
func (s *Store) Load(ctx context.Context, id string, root []string) (*cnode.Node, error) {
	data, location, err := s.read(ctx, id)
	if err != nil {
		return nil, err
	}

	format := s.Format
	if format == "" {
		format = snapshot.DetectFormat(location, data)
	}

	data, format, err = snapshot.Open(data, format, s.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", id, err)
	}

	n, err := snapshot.Decode(data, format, root)
	if errors.Is(err, snapshot.ErrNoPath) {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, cnode.FormatPath(root), id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", id, err)
	}

	log.Debugf("loaded %s from %s", id, location)
	return n, nil
}

// read returns the raw body named by id and where it came from.
func (s *Store) read(ctx context.Context, id string) ([]byte, string, error) {
	var file string
	switch id {
	case "":
		return nil, "", fmt.Errorf("%w: empty identifier", ErrUnknownSnapshot)
	case s.Active:
		file = s.livePath(s.ActiveFile)
	case s.Working:
		file = s.livePath(s.WorkingFile)
	}

	if file != "" {
		data, err := os.ReadFile(file)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s (%s)", ErrUnknownSnapshot, id, file)
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", id, err)
		}
		return data, file, nil
	}

	if s.Archive == nil {
		return nil, "", fmt.Errorf("%w: %s (no archive configured)", ErrUnknownSnapshot, id)
	}

	revs, err := backend.Resolve(ctx, s.Archive, id)
	if errors.Is(err, revspec.ErrNoMatch) {
		return nil, "", fmt.Errorf("%w: %w", ErrUnknownSnapshot, err)
	}
	if err != nil {
		return nil, "", err
	}

	rev := revs[0]
	log.Debugf("resolved %s to revision %s (serial %d) in %s", id, rev.ID, rev.Serial, s.Archive)

	data, err := backend.Read(ctx, s.Archive, rev)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read revision %s: %w", rev.ID, err)
	}
	return data, rev.Location, nil
}
