// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"

	"github.com/cfgdiff/cfgdiff/internal/cnode"
)

var (
	// ErrNotFound is wrapped by every Load error caused by a root path that is
	// not in the snapshot.
	ErrNotFound = errors.New("configuration not found")

	// ErrUnknownSnapshot is wrapped by every Load error caused by an identifier
	// that names no snapshot.
	ErrUnknownSnapshot = errors.New("unknown snapshot")
)

// Source loads named configuration snapshots.
type Source interface {
	// Load returns the subtree at root of the snapshot named id. root may be
	// empty for the whole snapshot.
	Load(ctx context.Context, id string, root []string) (*cnode.Node, error)
}

// Well known identifiers of the live snapshots.
const (
	DefaultActive  = "@ACTIVE"
	DefaultWorking = "@WORKING"
)
