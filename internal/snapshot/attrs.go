// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"

	"github.com/cfgdiff/cfgdiff/internal/cnode"
)

// Attribute keys understood in JSON and YAML snapshots.
const (
	attrValue       = "@value"
	attrValues      = "@values"
	attrComment     = "@comment"
	attrDefault     = "@default"
	attrSecret      = "@secret"
	attrDeactivated = "@deactivated"
)

func isFlagAttr(key string) bool {
	return key == attrDefault || key == attrSecret || key == attrDeactivated
}

// flagOption returns the option for a boolean attribute, or nil when the flag
// is false.
func flagOption(key string, set bool) (cnode.Option, error) {
	var opt cnode.Option
	switch key {
	case attrDefault:
		opt = cnode.Default()
	case attrSecret:
		opt = cnode.Secret()
	case attrDeactivated:
		opt = cnode.Deactivated()
	default:
		return nil, fmt.Errorf("unknown attribute %q", key)
	}

	if !set {
		return nil, nil
	}
	return opt, nil
}

// nodeBuilder collects the options of one node while a document is walked.
type nodeBuilder struct {
	name     string
	opts     []cnode.Option
	children []*cnode.Node
}

func (b *nodeBuilder) add(opt cnode.Option) {
	if opt != nil {
		b.opts = append(b.opts, opt)
	}
}

func (b *nodeBuilder) build() (*cnode.Node, error) {
	opts := append(b.opts, cnode.WithChildren(b.children...))
	return cnode.New(b.name, opts...)
}
