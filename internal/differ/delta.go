// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"slices"

	"github.com/cfgdiff/cfgdiff/internal/cnode"
)

// Kind classifies one node pair.
type Kind int

const (
	Unchanged Kind = iota
	Added
	Removed
	Changed
)

func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Changed:
		return "changed"
	}
	return "unknown"
}

// Delta is the comparison result for one path. Old is the node from the first
// tree and New from the second; either is nil when the path is absent on that
// side. Children are only populated for Changed deltas.
type Delta struct {
	Kind     Kind
	Path     []string
	Old, New *cnode.Node
	Children []*Delta

	// Own-property differences of a Changed node.
	ValueChanged   bool
	CommentChanged bool
	StateChanged   bool
}

// Compare classifies cfg1 against cfg2, both rooted at path. A nil tree means
// the path does not exist in that snapshot.
func Compare(cfg1, cfg2 *cnode.Node, path []string) *Delta {
	d := &Delta{Path: cnode.Append(path), Old: cfg1, New: cfg2}

	switch {
	case cfg1 == nil && cfg2 == nil:
		d.Kind = Unchanged
		return d
	case cfg1 == nil:
		d.Kind = Added
		return d
	case cfg2 == nil:
		d.Kind = Removed
		return d
	}

	d.ValueChanged = !slices.Equal(cfg1.Values(), cfg2.Values()) || cfg1.IsDefault() != cfg2.IsDefault()
	d.CommentChanged = cfg1.Comment() != cfg2.Comment()
	d.StateChanged = cfg1.IsDeactivated() != cfg2.IsDeactivated()

	changed := d.ValueChanged || d.CommentChanged || d.StateChanged
	for _, name := range childOrder(cfg1, cfg2) {
		c1, _ := cfg1.Child(name)
		c2, _ := cfg2.Child(name)
		cd := Compare(c1, c2, cnode.Append(path, name))
		if cd.Kind != Unchanged {
			changed = true
		}
		d.Children = append(d.Children, cd)
	}

	if !changed {
		d.Kind = Unchanged
		d.Children = nil
		return d
	}

	d.Kind = Changed
	return d
}

// childOrder returns the union of child names: cfg2's order, with names only
// found in cfg1 placed at their original position relative to the names
// before them in cfg1.
func childOrder(cfg1, cfg2 *cnode.Node) []string {
	old := cfg1.Children()
	next := 0
	var out []string

	// flush emits cfg1-only names from old[next:upto].
	flush := func(upto int) {
		for ; next < upto; next++ {
			name := old[next].Name()
			if _, ok := cfg2.Child(name); !ok {
				out = append(out, name)
			}
		}
	}

	for _, c := range cfg2.Children() {
		name := c.Name()
		if i := indexOf(old, name); i >= 0 {
			flush(i)
			if next <= i {
				next = i + 1
			}
		}
		out = append(out, name)
	}
	flush(len(old))

	return out
}

func indexOf(nodes []*cnode.Node, name string) int {
	return slices.IndexFunc(nodes, func(n *cnode.Node) bool { return n.Name() == name })
}

// Walk visits d and its descendants preorder.
func (d *Delta) Walk(fn func(*Delta)) {
	fn(d)
	for _, c := range d.Children {
		c.Walk(fn)
	}
}
