// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"cmp"
	"sort"
	"strings"
	"time"
)

// SortDataset sorts rows by the comma separated columns in spec. A leading
// '-' on a column sorts it descending; a leading '!' compares strings case
// sensitively. Numbers and times compare by value.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	if spec == "" {
		return
	}
	fields := strings.Split(spec, ",")

	sort.SliceStable(resultSet, func(one, two int) bool {
		for _, field := range fields {
			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(field, "!") {
				field = strings.TrimPrefix(field, "!")
				caseSensitive = true
			}

			oneValue := resultSet[one][field]
			twoValue := resultSet[two][field]

			if c, ok := compareValues(oneValue, twoValue); ok {
				if c != 0 {
					return (c < 0) == ascending
				}
				continue
			}

			// Fall back to string comparison which can also handle bools.
			compareOneStr := InterfaceToString(oneValue)
			compareTwoStr := InterfaceToString(twoValue)
			if !caseSensitive {
				compareOneStr = strings.ToLower(compareOneStr)
				compareTwoStr = strings.ToLower(compareTwoStr)
			}

			if compareOneStr != compareTwoStr {
				if ascending {
					return compareOneStr < compareTwoStr
				}
				return compareOneStr > compareTwoStr
			}
		}
		return false
	})
}

// compareValues orders two values of the same numeric or time type.
func compareValues(a, b interface{}) (int, bool) {
	switch a := a.(type) {
	case int64:
		if b, ok := b.(int64); ok {
			return cmp.Compare(a, b), true
		}
	case float64:
		if b, ok := b.(float64); ok {
			return cmp.Compare(a, b), true
		}
	case time.Time:
		if b, ok := b.(time.Time); ok {
			return a.Compare(b), true
		}
	}
	return 0, false
}
