// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/cfgdiff/cfgdiff/internal/cnode"
	"github.com/cfgdiff/cfgdiff/internal/driller"
)

func decodeJSON(data []byte, root []string) (*cnode.Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}

	v, ok := driller.Driller(string(data), root)
	if !ok {
		return nil, noPath(root)
	}

	return jsonNode(rootName(root), v)
}

// jsonNode walks v with gjson so object members keep document order.
func jsonNode(name string, v gjson.Result) (*cnode.Node, error) {
	b := &nodeBuilder{name: name}

	switch {
	case v.IsObject():
		var err error
		v.ForEach(func(key, value gjson.Result) bool {
			k := key.String()
			if strings.HasPrefix(k, driller.AttrPrefix) {
				err = jsonAttr(b, k, value)
				return err == nil
			}

			var child *cnode.Node
			child, err = jsonNode(k, value)
			if err != nil {
				return false
			}
			b.children = append(b.children, child)
			return true
		})
		if err != nil {
			return nil, err
		}

	case v.IsArray():
		values, err := jsonValues(name, v)
		if err != nil {
			return nil, err
		}
		b.add(cnode.WithValues(values...))

	case v.Type == gjson.Null:

	default:
		b.add(cnode.WithValues(v.String()))
	}

	return b.build()
}

func jsonAttr(b *nodeBuilder, key string, v gjson.Result) error {
	switch key {
	case attrValue, attrValues:
		values, err := jsonValues(b.name, v)
		if err != nil {
			return err
		}
		b.add(cnode.WithValues(values...))

	case attrComment:
		if v.Type != gjson.String {
			return fmt.Errorf("%s of %q must be a string", key, b.name)
		}
		b.add(cnode.WithComment(v.String()))

	default:
		if !isFlagAttr(key) {
			return fmt.Errorf("unknown attribute %q on %q", key, b.name)
		}
		if !v.IsBool() {
			return fmt.Errorf("%s of %q must be a boolean", key, b.name)
		}
		opt, err := flagOption(key, v.Bool())
		if err != nil {
			return err
		}
		b.add(opt)
	}

	return nil
}

// jsonValues reads a scalar or an array of scalars as a value list.
func jsonValues(name string, v gjson.Result) ([]string, error) {
	if v.Type == gjson.Null {
		return nil, nil
	}
	if !v.IsArray() {
		if v.IsObject() {
			return nil, fmt.Errorf("value of %q must be a scalar or a list", name)
		}
		return []string{v.String()}, nil
	}

	var values []string
	for _, e := range v.Array() {
		if e.IsObject() || e.IsArray() {
			return nil, fmt.Errorf("values of %q must be scalars", name)
		}
		values = append(values, e.String())
	}
	return values, nil
}
