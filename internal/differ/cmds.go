// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"slices"

	"github.com/cfgdiff/cfgdiff/internal/cnode"
	"github.com/cfgdiff/cfgdiff/internal/render"
)

// Commands synthesizes the batch that turns the first tree of d into the
// second. Removed subtrees are deleted at their root only, added subtrees are
// recreated through render.GetCmds, and changed nodes get the value and
// comment commands they need. Every list is in traversal order, so parents
// are set before their children.
func Commands(d *Delta) cnode.Batch {
	var b cnode.Batch
	appendDelta(d, &b)
	return b
}

func appendDelta(d *Delta, b *cnode.Batch) {
	switch d.Kind {
	case Unchanged:
		return

	case Removed:
		if len(d.Path) > 0 {
			b.Delete = append(b.Delete, cnode.Command{Verb: cnode.VerbDelete, Path: cnode.Append(d.Path)})
			return
		}
		// The top of a snapshot cannot be deleted, its children can.
		for _, c := range d.Old.Children() {
			b.Delete = append(b.Delete, cnode.Command{Verb: cnode.VerbDelete, Path: []string{c.Name()}})
		}

	case Added:
		sub := render.GetCmds(d.New, d.Path)
		b.Set = append(b.Set, sub.Set...)
		b.Comment = append(b.Comment, sub.Comment...)

	case Changed:
		if len(d.Path) > 0 {
			appendValueCmds(d, b)
			if d.CommentChanged {
				b.Comment = append(b.Comment, cnode.Command{
					Verb: cnode.VerbComment,
					Path: cnode.Append(d.Path),
					Args: []string{d.New.Comment()},
				})
			}
		}
		for _, c := range d.Children {
			appendDelta(c, b)
		}
	}
}

// appendValueCmds handles a changed node's own values.
//
//   - explicit to default: delete the old values so the default applies again
//   - default to default: nothing, the schema owns both
//   - single value replaced: set overwrites, no delete
//   - otherwise: delete values that are gone, set values that are new
//
// If the values both sides share appear in a different order, every old value
// is deleted and every new value set so the order is rebuilt.
func appendValueCmds(d *Delta, b *cnode.Batch) {
	if !d.ValueChanged {
		return
	}

	path := d.Path
	oldV, newV := d.Old.Values(), d.New.Values()
	oldDef, newDef := d.Old.IsDefault(), d.New.IsDefault()

	switch {
	case oldDef && newDef:
		return
	case newDef:
		b.Delete = append(b.Delete, cnode.Command{Verb: cnode.VerbDelete, Path: cnode.Append(path), Args: oldV})
		return
	case len(oldV) <= 1 && len(newV) == 1:
		b.Set = append(b.Set, cnode.Command{Verb: cnode.VerbSet, Path: cnode.Append(path), Args: newV})
		return
	}

	var stale, added []string
	switch {
	case oldDef:
		added = newV
	case reordered(oldV, newV):
		stale, added = oldV, newV
	default:
		stale = missing(oldV, newV)
		added = missing(newV, oldV)
	}

	if len(stale) > 0 {
		b.Delete = append(b.Delete, cnode.Command{Verb: cnode.VerbDelete, Path: cnode.Append(path), Args: stale})
	}
	if len(added) > 0 || (len(newV) == 0 && !d.New.HasChildren()) {
		b.Set = append(b.Set, cnode.Command{Verb: cnode.VerbSet, Path: cnode.Append(path), Args: added})
	}
}

// missing returns the elements of a not present in b, in a's order.
func missing(a, b []string) []string {
	var out []string
	for _, v := range a {
		if !slices.Contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}

// reordered reports whether the values common to both sides appear in a
// different relative order.
func reordered(oldV, newV []string) bool {
	keep := func(a, b []string) []string {
		var out []string
		for _, v := range a {
			if slices.Contains(b, v) {
				out = append(out, v)
			}
		}
		return out
	}
	return !slices.Equal(keep(oldV, newV), keep(newV, oldV))
}
