// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"strings"

	"github.com/tidwall/gjson"
)

// AttrPrefix marks object members that describe the enclosing node rather
// than naming a child.
const AttrPrefix = "@"

// Driller walks path through the object members of a JSON document and
// returns the value found there. Keys are matched literally so names holding
// dots, wildcards or slashes need no escaping. Attribute members are never
// matched.
func Driller(jsonData string, path []string) (gjson.Result, bool) {
	current := gjson.Parse(jsonData)

	for _, p := range path {
		if !current.IsObject() || strings.HasPrefix(p, AttrPrefix) {
			return gjson.Result{}, false
		}

		var next gjson.Result
		found := false
		current.ForEach(func(key, value gjson.Result) bool {
			if key.String() == p {
				next, found = value, true
				return false
			}
			return true
		})
		if !found {
			return gjson.Result{}, false
		}

		current = next
	}

	return current, true
}
