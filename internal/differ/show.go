// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"iter"

	"znkr.io/diff"

	"github.com/cfgdiff/cfgdiff/internal/cnode"
	"github.com/cfgdiff/cfgdiff/internal/render"
)

// DefaultContext is the number of unchanged lines kept on each side of a
// change when context is requested without an explicit amount.
const DefaultContext = 3

// Ellipsis stands in for a collapsed run of unchanged lines.
const Ellipsis = "..."

// Op marks a diff line.
type Op int

const (
	OpContext Op = iota
	OpAdd
	OpDel
)

// Mark is the one-character column printed in front of a line.
func (o Op) Mark() byte {
	switch o {
	case OpAdd:
		return '+'
	case OpDel:
		return '-'
	}
	return ' '
}

// Options control diff rendering.
type Options struct {
	render.Options
	// ContextDiff keeps unchanged lines around each change.
	ContextDiff bool
	// Context is the number of unchanged lines kept on each side of a change.
	// Zero or less means DefaultContext.
	Context int
}

// Line is one marked diff line.
type Line struct {
	Op Op
	render.Line
}

func (l Line) String() string {
	return string(l.Op.Mark()) + " " + l.Line.String()
}

// ShowDiff renders d as marked text lines.
func ShowDiff(d *Delta, opts Options) iter.Seq[string] {
	lines := Lines(d, opts)
	return func(yield func(string) bool) {
		for _, l := range lines {
			if !yield(l.String()) {
				return
			}
		}
	}
}

// Lines renders d and applies context filtering. A delta without changes
// renders as nothing.
func Lines(d *Delta, opts Options) []Line {
	w := &writer{opts: opts}

	switch d.Kind {
	case Unchanged:
		return nil
	case Added:
		w.contents(d.New, OpAdd)
	case Removed:
		w.contents(d.Old, OpDel)
	case Changed:
		if d.New.Name() != "" {
			w.ownLines(d, 0)
		} else {
			w.commentLines(d, 0)
		}
		for _, c := range d.Children {
			w.delta(c, 0)
		}
	}

	return collapse(w.lines, opts)
}

type writer struct {
	opts  Options
	lines []Line
}

func (w *writer) emit(op Op, depth int, text string, structural bool) {
	w.lines = append(w.lines, Line{Op: op, Line: render.Line{Depth: depth, Text: text, Structural: structural}})
}

// contents emits a viewed root through the single-tree renderer.
func (w *writer) contents(n *cnode.Node, op Op) {
	for l := range render.Lines(n, w.opts.Options) {
		l.Structural = false
		w.lines = append(w.lines, Line{Op: op, Line: l})
	}
}

// subtree emits a whole node through the single-tree renderer.
func (w *writer) subtree(n *cnode.Node, depth int, op Op) {
	render.NodeLines(n, depth, w.opts.Options, func(l render.Line) bool {
		l.Structural = false
		w.lines = append(w.lines, Line{Op: op, Line: l})
		return true
	})
}

func (w *writer) delta(d *Delta, depth int) {
	switch d.Kind {
	case Unchanged:
		w.subtree(d.New, depth, OpContext)
	case Added:
		w.subtree(d.New, depth, OpAdd)
	case Removed:
		w.subtree(d.Old, depth, OpDel)
	case Changed:
		start := len(w.lines)
		w.ownLines(d, depth)
		if len(d.Children) > 0 {
			w.header(d, depth)
			for _, c := range d.Children {
				w.delta(c, depth+1)
			}
			w.emit(OpContext, depth, "}", true)
		}
		// Changes hidden by the display options, such as one default value
		// replacing another, leave the node looking unchanged.
		if !w.changedSince(start) {
			w.lines = w.lines[:start]
			w.subtree(d.New, depth, OpContext)
		}
	}
}

func (w *writer) changedSince(start int) bool {
	for _, l := range w.lines[start:] {
		if l.Op != OpContext {
			return true
		}
	}
	return false
}

func (w *writer) header(d *Delta, depth int) {
	oldHas, newHas := d.Old.HasChildren(), d.New.HasChildren()
	hOld, hNew := render.HeaderText(d.Old), render.HeaderText(d.New)

	switch {
	case oldHas && newHas && hOld != hNew:
		w.emit(OpDel, depth, hOld, true)
		w.emit(OpAdd, depth, hNew, true)
	case newHas:
		w.emit(OpContext, depth, hNew, true)
	default:
		w.emit(OpContext, depth, hOld, true)
	}
}

func (w *writer) commentLines(d *Delta, depth int) {
	oldC, newC := d.Old.Comment(), d.New.Comment()
	if oldC == newC {
		if newC != "" {
			w.emit(OpContext, depth, render.CommentText(newC), false)
		}
		return
	}
	if oldC != "" {
		w.emit(OpDel, depth, render.CommentText(oldC), false)
	}
	if newC != "" {
		w.emit(OpAdd, depth, render.CommentText(newC), false)
	}
}

// valueItem is one value line of a node. Lines compare equal only if the
// real value and the node state match, so masked secrets still diff.
type valueItem struct {
	raw      string
	text     string
	valued   bool
	def      bool
	inactive bool
}

func valueItems(n *cnode.Node, opts render.Options) []valueItem {
	texts := render.ValueTexts(n, opts)
	values := n.Values()
	items := make([]valueItem, 0, len(texts))
	for i, text := range texts {
		it := valueItem{text: text, def: n.IsDefault(), inactive: n.IsDeactivated()}
		if i < len(values) {
			it.raw, it.valued = values[i], true
		}
		items = append(items, it)
	}
	return items
}

// ownLines emits the comment and value lines of a Changed node. Value lines
// are diffed element-wise so removals come right before their replacements.
// When both sides are untouched defaults and defaults are hidden, values are
// left out; an explicit value on either side is always shown.
func (w *writer) ownLines(d *Delta, depth int) {
	w.commentLines(d, depth)

	if d.Old.IsDefault() && d.New.IsDefault() && !w.opts.ShowDefault {
		return
	}

	opts := w.opts.Options
	opts.ShowDefault = true

	for _, e := range diff.Edits(valueItems(d.Old, opts), valueItems(d.New, opts)) {
		switch e.Op {
		case diff.Match:
			w.emit(OpContext, depth, e.X.text, false)
		case diff.Delete:
			w.emit(OpDel, depth, e.X.text, false)
		case diff.Insert:
			w.emit(OpAdd, depth, e.Y.text, false)
		}
	}
}

// collapse drops unchanged lines. Block headers of changed nodes are kept so
// every change stays locatable. With ContextDiff, unchanged lines within the
// context distance of a change survive and longer runs become one Ellipsis
// line.
func collapse(all []Line, opts Options) []Line {
	changes := 0
	for _, l := range all {
		if l.Op != OpContext {
			changes++
		}
	}
	if changes == 0 {
		return nil
	}

	if !opts.ContextDiff {
		out := make([]Line, 0, len(all))
		for _, l := range all {
			if l.Op != OpContext || l.Structural {
				out = append(out, l)
			}
		}
		return out
	}

	n := opts.Context
	if n <= 0 {
		n = DefaultContext
	}

	const far = int(^uint(0) >> 1)
	prev := make([]int, len(all))
	next := make([]int, len(all))
	last := -1
	for i, l := range all {
		if l.Op != OpContext {
			last = i
		}
		prev[i] = far
		if last >= 0 {
			prev[i] = i - last
		}
	}
	last = -1
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Op != OpContext {
			last = i
		}
		next[i] = far
		if last >= 0 {
			next[i] = last - i
		}
	}

	out := make([]Line, 0, len(all))
	skipping := false
	for i, l := range all {
		keep := l.Op != OpContext || l.Structural || prev[i] <= n || next[i] <= n
		if keep {
			out = append(out, l)
			skipping = false
			continue
		}
		if !skipping {
			out = append(out, Line{Op: OpContext, Line: render.Line{Depth: l.Depth, Text: Ellipsis}})
			skipping = true
		}
	}
	return out
}
