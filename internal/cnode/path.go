// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cnode

import (
	"strings"
)

// Append returns a new path with names added to the end. The result never
// shares a backing array with path, so sibling traversals cannot clobber each
// other's paths.
func Append(path []string, names ...string) []string {
	out := make([]string, 0, len(path)+len(names))
	out = append(out, path...)
	return append(out, names...)
}

// ParsePath splits a path given either as space-separated tokens
// ("interfaces ethernet eth0") or slash-separated ("interfaces/ethernet/eth0").
// Once a slash is present, spaces belong to the segment. Empty segments are
// dropped.
func ParsePath(s string) []string {
	if strings.Contains(s, "/") {
		return strings.FieldsFunc(s, func(r rune) bool { return r == '/' })
	}
	return strings.Fields(s)
}

// FormatPath renders a path slash-separated for messages and logs.
func FormatPath(path []string) string {
	if len(path) == 0 {
		return "/"
	}
	return strings.Join(path, "/")
}
