// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/cfgdiff/cfgdiff/internal/cnode"
	"github.com/cfgdiff/cfgdiff/internal/log"
)

// Format names a snapshot document format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

var (
	// ErrFormat is returned for a format Decode does not understand.
	ErrFormat = errors.New("unsupported snapshot format")

	// ErrNoPath is returned when the requested root path is not in the
	// snapshot.
	ErrNoPath = errors.New("path not in snapshot")
)

// ParseFormat maps a user supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "hcl", "tf":
		return FormatHCL, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, s)
}

// DetectFormat picks the format of a snapshot. The extension of location
// decides when it is known, otherwise the body is sniffed.
func DetectFormat(location string, data []byte) Format {
	ext := strings.TrimPrefix(filepath.Ext(location), ".")
	if f, err := ParseFormat(ext); err == nil {
		return f
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}

	if _, diags := hclsyntax.ParseConfig(data, location, hcl.InitialPos); !diags.HasErrors() && len(trimmed) > 0 {
		return FormatHCL
	}

	return FormatYAML
}

// Decode builds the tree held in data and returns the node at root. The
// returned node is named after the last element of root, or "" for the whole
// snapshot. A root that does not resolve yields ErrNoPath.
func Decode(data []byte, format Format, root []string) (*cnode.Node, error) {
	log.Debugf("decoding %d bytes as %s at %s", len(data), format, cnode.FormatPath(root))

	var (
		node *cnode.Node
		err  error
	)

	switch format {
	case FormatJSON:
		node, err = decodeJSON(data, root)
	case FormatYAML:
		node, err = decodeYAML(data, root)
	case FormatHCL:
		node, err = decodeHCL(data, root)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode %s snapshot: %w", format, err)
	}
	return node, nil
}

// rootName is the name given to the node found at root.
func rootName(root []string) string {
	if len(root) == 0 {
		return ""
	}
	return root[len(root)-1]
}

func noPath(root []string) error {
	return fmt.Errorf("%w: %s", ErrNoPath, cnode.FormatPath(root))
}
