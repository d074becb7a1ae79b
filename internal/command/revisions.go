// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/cfgdiff/cfgdiff/internal/backend"
	"github.com/cfgdiff/cfgdiff/internal/config"
	"github.com/cfgdiff/cfgdiff/internal/log"
	"github.com/cfgdiff/cfgdiff/internal/meta"
	"github.com/cfgdiff/cfgdiff/internal/output"
	"github.com/cfgdiff/cfgdiff/internal/revspec"
)

// revisionsCommandAction is the action handler for the "revisions"
// subcommand. It lists the archive, or the revisions named by its arguments.
func revisionsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "revisions"

	be, err := backend.NewBackend(ctx, cmd)
	if err != nil {
		return err
	}

	var revisions []*revspec.Revision
	if specs := cmd.Args().Slice(); len(specs) > 0 {
		revisions, err = backend.Resolve(ctx, be, specs...)
	} else {
		revisions, err = be.Revisions(ctx)
	}
	if err != nil {
		return err
	}

	if revisions, err = output.FilterRevisions(revisions, cmd.String("filter")); err != nil {
		return err
	}

	if limit := cmd.Int("limit"); limit > 0 && len(revisions) > limit {
		revisions = revisions[:limit]
	}

	return output.WriteRevisions(revisions, output.OptionsFrom(cmd), Writer(cmd))
}

// revisionsCommandBuilder constructs the cli.Command for "revisions".
func revisionsCommandBuilder(meta meta.Meta) *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to the revisions",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "list at most this many revisions, newest first",
			Sources: NameSpacedValueChain("revisions", "limit"),
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
	}, NewStoreFlags("revisions")...)

	return &cli.Command{
		Name:      "revisions",
		Usage:     "list archived configuration revisions",
		UsageText: "cfgdiff revisions [REV...] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(flags, NewGlobalFlags("revisions")...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, cmd)
		},
		Action: revisionsCommandAction,
	}
}
