// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cfgdiff/cfgdiff/internal/backend"
	"github.com/cfgdiff/cfgdiff/internal/cnode"
	"github.com/cfgdiff/cfgdiff/internal/log"
	"github.com/cfgdiff/cfgdiff/internal/meta"
	"github.com/cfgdiff/cfgdiff/internal/output"
	"github.com/cfgdiff/cfgdiff/internal/session"
	"github.com/cfgdiff/cfgdiff/internal/snapshot"
	"github.com/cfgdiff/cfgdiff/internal/source"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// BuildStore opens the store selected by cmd's store flags, backed by the
// archive backend.NewBackend picks for it.
func BuildStore(ctx context.Context, cmd *cli.Command) (*source.Store, error) {
	m := GetMeta(cmd)

	be, err := backend.NewBackend(ctx, cmd)
	if err != nil {
		return nil, err
	}
	log.Debugf("archive: %s %s", be.Type(), be)

	opts := []source.StoreOption{
		source.FromDir(m.StoreDir),
		source.WithArchive(be),
		source.WithPassphrase(snapshot.Passphrase(cmd.String("passphrase"))),
	}
	if f := cmd.String("format"); f != "" {
		format, err := snapshot.ParseFormat(f)
		if err != nil {
			return nil, err
		}
		opts = append(opts, source.WithFormat(format))
	}

	return source.NewStore(ctx, opts...)
}

// SessionOptions reads the show flags of cmd.
func SessionOptions(cmd *cli.Command) session.Options {
	return session.Options{
		ShowDefault:  cmd.Bool("defaults"),
		HideSecret:   cmd.Bool("hide-secrets"),
		ContextDiff:  cmd.Bool("context"),
		ShowCommands: cmd.Bool("commands"),
		Context:      cmd.Int("context-lines"),
	}
}

// PathArgs joins args into one configuration path. Each argument may itself
// hold several space or slash separated elements.
func PathArgs(args []string) []string {
	var path []string
	for _, a := range args {
		path = append(path, cnode.ParsePath(a)...)
	}
	return path
}

// Report builds the report for cfg1 against cfg2 and writes it with the
// output flags of cmd. Nothing is written when building fails.
func Report(ctx context.Context, cmd *cli.Command, src source.Source, cfg1, cfg2 string, path []string) error {
	r, err := session.Build(ctx, src, cfg1, cfg2, path, SessionOptions(cmd))
	if err != nil {
		return err
	}
	return output.WriteReport(r, output.OptionsFrom(cmd), Writer(cmd))
}

// Writer returns the destination of command output.
func Writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}
