// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"iter"
	"strconv"
	"strings"

	"github.com/cfgdiff/cfgdiff/internal/cnode"
)

// Mask replaces every secret value token. It has the same form regardless of
// the length of the value it hides.
const Mask = "********"

// Indent is one level of display indentation.
const Indent = "    "

// Options control which nodes are shown and how values are displayed.
type Options struct {
	ShowDefault bool
	HideSecret  bool
}

// Line is one display line before indentation is applied. Structural marks
// block headers and closing braces.
type Line struct {
	Depth      int
	Text       string
	Structural bool
}

func (l Line) String() string {
	return strings.Repeat(Indent, l.Depth) + l.Text
}

// Render returns the display text of node's contents as a lazy sequence of
// lines.
func Render(node *cnode.Node, opts Options) iter.Seq[string] {
	return func(yield func(string) bool) {
		for l := range Lines(node, opts) {
			if !yield(l.String()) {
				return
			}
		}
	}
}

// Lines is Render without indentation applied. The viewed node's comment, its
// own value lines and its children are emitted at depth 0; its block header is
// not. The unnamed top of a snapshot has no value lines.
func Lines(node *cnode.Node, opts Options) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		if node == nil {
			return
		}
		if node.Comment() != "" {
			if !yield(Line{Text: CommentText(node.Comment())}) {
				return
			}
		}
		if node.Name() != "" && ShowValues(node, opts) {
			for _, text := range ValueTexts(node, opts) {
				if !yield(Line{Text: text}) {
					return
				}
			}
		}
		for _, c := range node.Children() {
			if !NodeLines(c, 0, opts, yield) {
				return
			}
		}
	}
}

// NodeLines emits node, including its comment and block, at depth. It returns
// false if yield asked to stop.
func NodeLines(node *cnode.Node, depth int, opts Options, yield func(Line) bool) bool {
	if node.Comment() != "" {
		if !yield(Line{Depth: depth, Text: CommentText(node.Comment())}) {
			return false
		}
	}

	if ShowValues(node, opts) {
		for _, text := range ValueTexts(node, opts) {
			if !yield(Line{Depth: depth, Text: text}) {
				return false
			}
		}
	}

	if !node.HasChildren() {
		return true
	}

	if !yield(Line{Depth: depth, Text: HeaderText(node), Structural: true}) {
		return false
	}
	for _, c := range node.Children() {
		if !NodeLines(c, depth+1, opts, yield) {
			return false
		}
	}
	return yield(Line{Depth: depth, Text: "}", Structural: true})
}

// ShowValues reports whether node's own value lines are displayed. Untouched
// default values are hidden unless defaults are requested.
func ShowValues(node *cnode.Node, opts Options) bool {
	return !node.IsDefault() || opts.ShowDefault
}

// ValueTexts returns node's value lines: one "name value" per value, or the
// bare name for a valueless leaf. A node with children and no values has no
// value lines.
func ValueTexts(node *cnode.Node, opts Options) []string {
	prefix := ""
	if node.IsDeactivated() {
		prefix = "inactive: "
	}

	values := node.Values()
	if len(values) == 0 {
		if node.HasChildren() {
			return nil
		}
		return []string{prefix + node.Name()}
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, prefix+node.Name()+" "+DisplayValue(node, v, opts))
	}
	return out
}

// DisplayValue formats one value of node for display, masking it when node is
// secret and secrets are hidden.
func DisplayValue(node *cnode.Node, v string, opts Options) string {
	if node.IsSecret() && opts.HideSecret {
		return Mask
	}
	return QuoteValue(v)
}

// QuoteValue double-quotes values that are empty or contain whitespace or
// quotes.
func QuoteValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " \t\n\r\"'{}") {
		return v
	}
	return strconv.Quote(v)
}

// HeaderText is the opening line of node's block.
func HeaderText(node *cnode.Node) string {
	if node.IsDeactivated() {
		return "inactive: " + node.Name() + " {"
	}
	return node.Name() + " {"
}

// CommentText is the display form of a comment.
func CommentText(comment string) string {
	return "/* " + comment + " */"
}
