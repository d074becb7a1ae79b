// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cnode

import (
	"fmt"
	"slices"
)

// Node is one node of a configuration snapshot. A Node is built once by New
// and is read-only afterwards. Children keep definition order, which is not
// necessarily sorted.
type Node struct {
	name        string
	values      []string
	children    []*Node
	index       map[string]int
	comment     string
	isDefault   bool
	isSecret    bool
	deactivated bool
}

// Option customizes a Node under construction.
type Option func(*Node)

// WithValues sets the node's ordered values.
func WithValues(values ...string) Option {
	return func(n *Node) { n.values = append(n.values, values...) }
}

// WithComment attaches a comment to the node.
func WithComment(comment string) Option {
	return func(n *Node) { n.comment = comment }
}

// WithChildren appends children in the given order.
func WithChildren(children ...*Node) Option {
	return func(n *Node) { n.children = append(n.children, children...) }
}

// Default marks the node's value as coming from the schema default.
func Default() Option {
	return func(n *Node) { n.isDefault = true }
}

// Secret marks the node's values for redaction on display.
func Secret() Option {
	return func(n *Node) { n.isSecret = true }
}

// Deactivated marks the node as present but excluded from active effect.
func Deactivated() Option {
	return func(n *Node) { n.deactivated = true }
}

// New builds a Node. It returns an error if two children share a name or a
// child is nil.
func New(name string, opts ...Option) (*Node, error) {
	n := &Node{name: name}
	for _, opt := range opts {
		opt(n)
	}

	n.index = make(map[string]int, len(n.children))
	for i, c := range n.children {
		if c == nil {
			return nil, fmt.Errorf("nil child at position %d of %q", i, name)
		}
		if _, dup := n.index[c.name]; dup {
			return nil, fmt.Errorf("duplicate child %q under %q", c.name, name)
		}
		n.index[c.name] = i
	}

	return n, nil
}

// Must is like New but panics on error. It is meant for fixtures and tests.
func Must(name string, opts ...Option) *Node {
	n, err := New(name, opts...)
	if err != nil {
		panic(err)
	}
	return n
}

func (n *Node) Name() string { return n.name }

// Values returns a copy of the node's ordered values.
func (n *Node) Values() []string { return slices.Clone(n.values) }

func (n *Node) HasValues() bool { return len(n.values) > 0 }

// Children returns the node's children in definition order. The returned
// slice is a copy; the nodes themselves are shared and read-only.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

func (n *Node) HasChildren() bool { return len(n.children) > 0 }

// Child returns the named child, if present.
func (n *Node) Child(name string) (*Node, bool) {
	i, ok := n.index[name]
	if !ok {
		return nil, false
	}
	return n.children[i], true
}

// Lookup walks path below n. An empty path returns n itself.
func (n *Node) Lookup(path []string) (*Node, bool) {
	cur := n
	for _, seg := range path {
		next, ok := cur.Child(seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func (n *Node) Comment() string { return n.comment }

func (n *Node) IsDefault() bool { return n.isDefault }

func (n *Node) IsSecret() bool { return n.isSecret }

func (n *Node) IsDeactivated() bool { return n.deactivated }
