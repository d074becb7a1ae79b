// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/cfgdiff/cfgdiff/internal/config"
)

// StoreSpec holds the resolved store directory and an optional archive type
// override given as DIR::TYPE.
type StoreSpec struct {
	StoreDir string
	Archive  string
}

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, the resolved store specification, and the
// starting working directory.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	StoreSpec
	StartingDir string
}
