// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/cfgdiff/cfgdiff/internal/config"
	"github.com/cfgdiff/cfgdiff/internal/differ"
	"github.com/cfgdiff/cfgdiff/internal/log"
	"github.com/cfgdiff/cfgdiff/internal/meta"
	"github.com/cfgdiff/cfgdiff/internal/revspec"
)

// PickArg on the command line opens the interactive revision picker.
const PickArg = "+"

// RevisionPicker chooses two revisions out of an archive listing. It returns
// nil when the user gives up.
type RevisionPicker func([]*revspec.Revision) ([]*revspec.Revision, error)

// picker is replaced in tests.
var picker RevisionPicker = differ.SelectRevisions

// compareCommandAction is the action handler for the "compare" subcommand.
// REV1 and REV2 are any identifiers the store serves: the live snapshots,
// revision specs or snapshot files.
func compareCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "compare"

	store, err := BuildStore(ctx, cmd)
	if err != nil {
		return err
	}

	args := cmd.Args().Slice()
	var rev1, rev2 string

	switch {
	case len(args) > 0 && args[0] == PickArg:
		revisions, err := store.Archive.Revisions(ctx)
		if err != nil {
			return fmt.Errorf("failed to list revisions of %s: %w", store.Archive, err)
		}
		if len(revisions) < 2 {
			return fmt.Errorf("%s holds %d revision(s), two are needed", store.Archive, len(revisions))
		}
		pair, err := picker(revisions)
		if err != nil {
			return err
		}
		if len(pair) != 2 {
			log.Debug("compare: nothing picked")
			return nil
		}
		rev1, rev2 = pair[0].ID, pair[1].ID
		args = args[1:]
	case len(args) >= 2:
		rev1, rev2 = args[0], args[1]
		args = args[2:]
	default:
		return fmt.Errorf("compare needs REV1 REV2, or %s to pick them", PickArg)
	}

	path := PathArgs(args)
	log.Debugf("compare: %s -> %s path=%v", rev1, rev2, path)

	return Report(ctx, cmd, store, rev1, rev2, path)
}

// compareCommandBuilder constructs the cli.Command for "compare".
func compareCommandBuilder(meta meta.Meta) *cli.Command {
	flags := append(NewShowFlags("compare"), NewStoreFlags("compare")...)

	return &cli.Command{
		Name:      "compare",
		Usage:     "compare two configuration revisions",
		UsageText: "cfgdiff compare REV1 REV2 [PATH...] [options]\n   cfgdiff compare + [PATH...] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(flags, NewGlobalFlags("compare")...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, cmd)
		},
		Action: compareCommandAction,
	}
}
