// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/cfgdiff/cfgdiff/internal/cnode"
	"github.com/cfgdiff/cfgdiff/internal/differ"
	"github.com/cfgdiff/cfgdiff/internal/log"
	"github.com/cfgdiff/cfgdiff/internal/render"
	"github.com/cfgdiff/cfgdiff/internal/source"
)

// Options select what a request shows.
type Options struct {
	ShowDefault  bool
	HideSecret   bool
	ContextDiff  bool
	ShowCommands bool
	// Context is the number of unchanged lines around each change when
	// ContextDiff is set. Zero means differ.DefaultContext.
	Context int
}

func (o Options) render() render.Options {
	return render.Options{ShowDefault: o.ShowDefault, HideSecret: o.HideSecret}
}

func (o Options) diff() differ.Options {
	return differ.Options{Options: o.render(), ContextDiff: o.ContextDiff, Context: o.Context}
}

// Report is the computed answer to one request. Diff tells which of Lines
// (two trees) or Tree (one tree) holds the display text; Commands is set
// instead when commands were requested.
type Report struct {
	From, To string
	Path     []string
	Diff     bool
	Commands bool

	Lines []differ.Line
	Tree  []render.Line
	Batch cnode.Batch
}

// Text returns the printable lines of r.
func (r *Report) Text() []string {
	var out []string
	switch {
	case r.Commands:
		for c := range r.Batch.All() {
			out = append(out, c.String())
		}
	case r.Diff:
		for _, l := range r.Lines {
			out = append(out, l.String())
		}
	default:
		for _, l := range r.Tree {
			out = append(out, l.String())
		}
	}
	return out
}

// Empty reports whether r has nothing to show.
func (r *Report) Empty() bool {
	switch {
	case r.Commands:
		return r.Batch.Empty()
	case r.Diff:
		return len(r.Lines) == 0
	}
	return len(r.Tree) == 0
}

// WriteTo writes r's text, one line each, to w.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, l := range r.Text() {
		m, err := fmt.Fprintln(w, l)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Build computes the report for showing cfg1 against cfg2 below path. Equal
// identifiers show the single tree cfg1; different identifiers show the
// changes that turn cfg1 into cfg2.
func Build(ctx context.Context, src source.Source, cfg1, cfg2 string, path []string, opts Options) (*Report, error) {
	r := &Report{
		From:     cfg1,
		To:       cfg2,
		Path:     slices.Clone(path),
		Diff:     cfg1 != cfg2,
		Commands: opts.ShowCommands,
	}

	if !r.Diff {
		node, err := load(ctx, src, cfg1, path)
		if err != nil {
			return nil, err
		}
		if r.Commands {
			r.Batch = render.GetCmds(node, path)
		} else {
			r.Tree = slices.Collect(render.Lines(node, opts.render()))
		}
		return r, nil
	}

	d, err := compare(ctx, src, cfg1, cfg2, path)
	if err != nil {
		return nil, err
	}
	if r.Commands {
		r.Batch = differ.Commands(d)
	} else {
		r.Lines = differ.Lines(d, opts.diff())
	}

	log.Debugf("session: %s -> %s at %s: %s", cfg1, cfg2, cnode.FormatPath(path), d.Kind)
	return r, nil
}

// ShowConfig writes the single tree or the difference selected by cfg1, cfg2
// and opts to w. Nothing is written when loading fails.
func ShowConfig(ctx context.Context, src source.Source, cfg1, cfg2 string, path []string, opts Options, w io.Writer) error {
	r, err := Build(ctx, src, cfg1, cfg2, path, opts)
	if err != nil {
		return err
	}
	_, err = r.WriteTo(w)
	return err
}

// Lines is ShowConfig returning the lines instead of writing them.
func Lines(ctx context.Context, src source.Source, cfg1, cfg2 string, path []string, opts Options) ([]string, error) {
	r, err := Build(ctx, src, cfg1, cfg2, path, opts)
	if err != nil {
		return nil, err
	}
	return r.Text(), nil
}

// Commands returns the command batch for cfg1 and cfg2 below path: the
// commands that recreate cfg1 when the identifiers are equal, the commands
// that turn cfg1 into cfg2 otherwise.
func Commands(ctx context.Context, src source.Source, cfg1, cfg2 string, path []string) (cnode.Batch, error) {
	r, err := Build(ctx, src, cfg1, cfg2, path, Options{ShowCommands: true})
	if err != nil {
		return cnode.Batch{}, err
	}
	return r.Batch, nil
}

// ShowCmds writes the commands that recreate the tree cfg below path.
func ShowCmds(ctx context.Context, src source.Source, cfg string, path []string, w io.Writer) error {
	return ShowConfig(ctx, src, cfg, cfg, path, Options{ShowCommands: true}, w)
}

// ShowCmdsDiff writes the commands that turn cfg1 into cfg2 below path.
func ShowCmdsDiff(ctx context.Context, src source.Source, cfg1, cfg2 string, path []string, w io.Writer) error {
	if cfg1 == cfg2 {
		return nil
	}
	return ShowConfig(ctx, src, cfg1, cfg2, path, Options{ShowCommands: true}, w)
}

func load(ctx context.Context, src source.Source, id string, path []string) (*cnode.Node, error) {
	n, err := src.Load(ctx, id, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", id, err)
	}
	return n, nil
}

// compare loads both trees and classifies them. A path missing from one side
// is an addition or removal; missing from both is an error. Any other load
// failure, an unknown identifier included, aborts the comparison.
func compare(ctx context.Context, src source.Source, cfg1, cfg2 string, path []string) (*differ.Delta, error) {
	n1, err1 := load(ctx, src, cfg1, path)
	if err1 != nil && !errors.Is(err1, source.ErrNotFound) {
		return nil, err1
	}

	n2, err2 := load(ctx, src, cfg2, path)
	if err2 != nil && !errors.Is(err2, source.ErrNotFound) {
		return nil, err2
	}

	if n1 == nil && n2 == nil {
		return nil, fmt.Errorf("%s in neither %s nor %s: %w", cnode.FormatPath(path), cfg1, cfg2, source.ErrNotFound)
	}

	return differ.Compare(n1, n2, path), nil
}
