// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"github.com/cfgdiff/cfgdiff/internal/cnode"
)

// GetCmds returns the set and comment commands that recreate node's subtree
// at path. Values are never masked. Default nodes get no set command since the
// schema supplies them. A node without values still gets a bare set when
// nothing below it does, so valueless leaves and empty containers survive a
// replay.
func GetCmds(node *cnode.Node, path []string) cnode.Batch {
	var b cnode.Batch
	if node != nil {
		appendCmds(node, path, &b)
	}
	return b
}

// appendCmds walks node preorder and reports whether any set command was
// emitted for node or its descendants.
func appendCmds(node *cnode.Node, path []string, b *cnode.Batch) bool {
	emitted := false
	root := len(path) == 0

	if !root && !node.IsDefault() && node.HasValues() {
		b.Set = append(b.Set, cnode.Command{
			Verb: cnode.VerbSet,
			Path: cnode.Append(path),
			Args: node.Values(),
		})
		emitted = true
	}

	if !root && node.Comment() != "" {
		b.Comment = append(b.Comment, cnode.Command{
			Verb: cnode.VerbComment,
			Path: cnode.Append(path),
			Args: []string{node.Comment()},
		})
	}

	for _, c := range node.Children() {
		if appendCmds(c, cnode.Append(path, c.Name()), b) {
			emitted = true
		}
	}

	if !emitted && !root && !node.IsDefault() {
		b.Set = append(b.Set, cnode.Command{Verb: cnode.VerbSet, Path: cnode.Append(path)})
		emitted = true
	}

	return emitted
}
