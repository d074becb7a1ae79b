// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cfgdiff/cfgdiff/internal/cnode"
	"github.com/cfgdiff/cfgdiff/internal/driller"
)

const yamlNull = "!!null"

func decodeYAML(data []byte, root []string) (*cnode.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		if len(root) == 0 {
			return cnode.New("")
		}
		return nil, noPath(root)
	}

	node, comment := doc.Content[0], ""
	for _, seg := range root {
		node = resolveAlias(node)
		if node.Kind != yaml.MappingNode || strings.HasPrefix(seg, driller.AttrPrefix) {
			return nil, noPath(root)
		}

		found := false
		for i := 0; i+1 < len(node.Content); i += 2 {
			if k := node.Content[i]; k.Value == seg {
				node, comment, found = node.Content[i+1], yamlComment(k), true
				break
			}
		}
		if !found {
			return nil, noPath(root)
		}
	}

	return yamlNode(rootName(root), comment, node)
}

// yamlNode builds a node from v. comment is the head comment of the key v
// was found under.
func yamlNode(name, comment string, v *yaml.Node) (*cnode.Node, error) {
	b := &nodeBuilder{name: name}
	if comment != "" {
		b.add(cnode.WithComment(comment))
	}

	v = resolveAlias(v)
	switch v.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(v.Content); i += 2 {
			k, value := v.Content[i], v.Content[i+1]
			if strings.HasPrefix(k.Value, driller.AttrPrefix) {
				if err := yamlAttr(b, k.Value, value); err != nil {
					return nil, err
				}
				continue
			}

			child, err := yamlNode(k.Value, yamlComment(k), value)
			if err != nil {
				return nil, err
			}
			b.children = append(b.children, child)
		}

	case yaml.SequenceNode, yaml.ScalarNode:
		values, err := yamlValues(name, v)
		if err != nil {
			return nil, err
		}
		b.add(cnode.WithValues(values...))
	}

	return b.build()
}

func yamlAttr(b *nodeBuilder, key string, v *yaml.Node) error {
	v = resolveAlias(v)

	switch key {
	case attrValue, attrValues:
		values, err := yamlValues(b.name, v)
		if err != nil {
			return err
		}
		b.add(cnode.WithValues(values...))

	case attrComment:
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("%s of %q must be a string", key, b.name)
		}
		b.add(cnode.WithComment(v.Value))

	default:
		if !isFlagAttr(key) {
			return fmt.Errorf("unknown attribute %q on %q", key, b.name)
		}
		var set bool
		if err := v.Decode(&set); err != nil {
			return fmt.Errorf("%s of %q must be a boolean: %w", key, b.name, err)
		}
		opt, err := flagOption(key, set)
		if err != nil {
			return err
		}
		b.add(opt)
	}

	return nil
}

func yamlValues(name string, v *yaml.Node) ([]string, error) {
	switch v.Kind {
	case yaml.ScalarNode:
		if v.ShortTag() == yamlNull {
			return nil, nil
		}
		return []string{v.Value}, nil

	case yaml.SequenceNode:
		var values []string
		for _, e := range v.Content {
			e = resolveAlias(e)
			if e.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("values of %q must be scalars", name)
			}
			values = append(values, e.Value)
		}
		return values, nil
	}

	return nil, fmt.Errorf("value of %q must be a scalar or a list", name)
}

func resolveAlias(v *yaml.Node) *yaml.Node {
	for v.Kind == yaml.AliasNode && v.Alias != nil {
		v = v.Alias
	}
	return v
}

// yamlComment strips the comment markers from a key's head comment.
func yamlComment(k *yaml.Node) string {
	if k.HeadComment == "" {
		return ""
	}

	lines := strings.Split(k.HeadComment, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(l), "#"))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
