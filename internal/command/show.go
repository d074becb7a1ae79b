// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/cfgdiff/cfgdiff/internal/config"
	"github.com/cfgdiff/cfgdiff/internal/log"
	"github.com/cfgdiff/cfgdiff/internal/meta"
)

// showCommandAction is the action handler for the "show" subcommand. It shows
// the configuration below PATH: the difference between --from and --to, or a
// single tree when both name the same configuration.
func showCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "show"

	store, err := BuildStore(ctx, cmd)
	if err != nil {
		return err
	}

	from := cmd.String("from")
	if from == "" {
		from = store.Active
	}
	to := cmd.String("to")
	if to == "" {
		to = store.Working
	}

	path := PathArgs(cmd.Args().Slice())
	log.Debugf("show: from=%s to=%s path=%v", from, to, path)

	return Report(ctx, cmd, store, from, to, path)
}

// showCommandBuilder constructs the cli.Command for "show".
func showCommandBuilder(meta meta.Meta) *cli.Command {
	flags := append(NewFromToFlags(), NewShowFlags("show")...)
	flags = append(flags, NewStoreFlags("show")...)

	return &cli.Command{
		Name:      "show",
		Usage:     "show configuration changes",
		UsageText: "cfgdiff show [PATH...] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(flags, NewGlobalFlags("show")...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, cmd)
		},
		Action: showCommandAction,
	}
}
