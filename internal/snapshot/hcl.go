// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/cfgdiff/cfgdiff/internal/cnode"
)

// hclDraft is a mutable node used while blocks are merged.
type hclDraft struct {
	name     string
	values   []string
	children []*hclDraft
	index    map[string]*hclDraft
}

// child returns the named child, creating it on first use so repeated blocks
// merge into one node.
func (d *hclDraft) child(name string) *hclDraft {
	if c, ok := d.index[name]; ok {
		return c
	}
	if d.index == nil {
		d.index = map[string]*hclDraft{}
	}
	c := &hclDraft{name: name}
	d.index[name] = c
	d.children = append(d.children, c)
	return c
}

func (d *hclDraft) node() (*cnode.Node, error) {
	children := make([]*cnode.Node, 0, len(d.children))
	for _, c := range d.children {
		n, err := c.node()
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	return cnode.New(d.name, cnode.WithValues(d.values...), cnode.WithChildren(children...))
}

func decodeHCL(data []byte, root []string) (*cnode.Node, error) {
	file, diags := hclsyntax.ParseConfig(data, "snapshot.hcl", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected HCL body %T", file.Body)
	}

	top := &hclDraft{}
	if err := hclBody(top, body, hclEvalContext()); err != nil {
		return nil, err
	}

	tree, err := top.node()
	if err != nil {
		return nil, err
	}

	n, ok := tree.Lookup(root)
	if !ok {
		return nil, noPath(root)
	}
	return n, nil
}

// hclBody adds the attributes and blocks of body to d in source order.
func hclBody(d *hclDraft, body *hclsyntax.Body, ctx *hcl.EvalContext) error {
	type item struct {
		start int
		attr  *hclsyntax.Attribute
		block *hclsyntax.Block
	}

	items := make([]item, 0, len(body.Attributes)+len(body.Blocks))
	for _, a := range body.Attributes {
		items = append(items, item{start: a.SrcRange.Start.Byte, attr: a})
	}
	for _, b := range body.Blocks {
		items = append(items, item{start: b.TypeRange.Start.Byte, block: b})
	}
	slices.SortFunc(items, func(a, b item) int { return a.start - b.start })

	for _, it := range items {
		if it.attr != nil {
			v, diags := it.attr.Expr.Value(ctx)
			if diags.HasErrors() {
				return diags
			}
			values, err := ctyValues(it.attr.Name, v)
			if err != nil {
				return err
			}
			c := d.child(it.attr.Name)
			c.values = append(c.values, values...)
			continue
		}

		c := d.child(it.block.Type)
		for _, label := range it.block.Labels {
			c = c.child(label)
		}
		if err := hclBody(c, it.block.Body, ctx); err != nil {
			return err
		}
	}

	return nil
}

// hclEvalContext offers a few string and collection functions to attribute
// expressions. Variables are not supported.
func hclEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"concat": stdlib.ConcatFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
			"lower":  stdlib.LowerFunc,
			"range":  stdlib.RangeFunc,
			"split":  stdlib.SplitFunc,
			"upper":  stdlib.UpperFunc,
		},
	}
}

// ctyValues flattens an attribute value into a value list. Tuples, lists and
// sets give one value per element; null gives none.
func ctyValues(name string, v cty.Value) ([]string, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value of %q is not known", name)
	}

	t := v.Type()
	if !t.IsTupleType() && !t.IsListType() && !t.IsSetType() {
		s, err := ctyString(name, v)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}

	var values []string
	for it := v.ElementIterator(); it.Next(); {
		_, e := it.Element()
		s, err := ctyString(name, e)
		if err != nil {
			return nil, err
		}
		values = append(values, s)
	}
	return values, nil
}

func ctyString(name string, v cty.Value) (string, error) {
	if v.IsNull() {
		return "", fmt.Errorf("values of %q must not be null", name)
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("values of %q must be scalars: %w", name, err)
	}
	return s.AsString(), nil
}
