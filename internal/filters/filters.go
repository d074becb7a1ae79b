// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
)

// EnvDelim names the environment variable that overrides the filter
// delimiter.
const EnvDelim = "CFGDIFF_FILTER_DELIM"

// filterRegex is the pattern used to parse filter expressions into key,
// operator, and target components. Operators are one of = ^ ~ < > @ or /,
// optionally prefixed with '!'. Examples: "id" (key only), "id^config"
// (key + operator + target), "size>1024".
var filterRegex = regexp.MustCompile(`^([^!?=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression including the key, operand,
// optional negation and value to match against.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Malformed expressions are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override for situations where the value
	// contains commas.
	delim := ","
	if d, ok := os.LookupEnv(EnvDelim); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		operand := parts[2]
		target := parts[3]

		if key == "" {
			log.Error("invalid filter: empty key in " + filterSpec)
			continue
		}

		negate := strings.HasPrefix(operand, "!")
		operand = strings.TrimPrefix(operand, "!")

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   target,
		})
	}

	return filters
}

// FilterRows returns the rows that match every filter in spec. Rows are kept
// in order and are not copied.
func FilterRows(rows []map[string]interface{}, spec string) ([]map[string]interface{}, error) {
	filters, err := Compile(spec)
	if err != nil {
		return nil, err
	}
	if len(filters) == 0 {
		return rows, nil
	}

	//nolint:prealloc
	var filtered []map[string]interface{}
	for _, row := range rows {
		if Match(row, filters) {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}

// Compile is BuildFilters that also rejects invalid regular expressions.
func Compile(spec string) ([]Filter, error) {
	filters := BuildFilters(spec)
	for _, f := range filters {
		if f.Operand == "/" {
			if _, err := regexp.Compile(f.Value); err != nil {
				return nil, fmt.Errorf("invalid filter regex %q: %w", f.Value, err)
			}
		}
	}
	return filters, nil
}

// Match reports whether row matches all of filters.
func Match(row map[string]interface{}, filters []Filter) bool {
	return applyFilters(row, filters)
}

// applyFilters returns true if row matches all of filters. Filters on keys the
// row does not have are logged and ignored.
func applyFilters(row map[string]interface{}, filters []Filter) bool {
	for _, filter := range filters {
		value, ok := row[filter.Key]
		if !ok {
			log.Warnf("filter key not found: %s", filter.Key)
			continue
		}
		if value == nil {
			return false
		}

		// A bare key keeps rows where the value is set.
		if filter.Operand == "" {
			if isZero(value) {
				return false
			}
			continue
		}

		var result bool
		switch v := value.(type) {
		case string:
			result = checkStringOperand(v, filter)
		case bool:
			result = checkStringOperand(strconv.FormatBool(v), filter)
		case time.Time:
			result = checkTimeOperand(v, filter)
		default:
			if num, ok := toFloat64(value); ok {
				result = checkNumericOperand(num, filter)
			} else {
				result = checkStringOperand(fmt.Sprint(value), filter)
			}
		}

		if !result {
			return false
		}
	}

	return true
}

func isZero(value interface{}) bool {
	switch v := value.(type) {
	case string:
		return v == ""
	case bool:
		return !v
	case time.Time:
		return v.IsZero()
	}
	if num, ok := toFloat64(value); ok {
		return num == 0
	}
	return false
}

// checkNumericOperand compares a numeric value against the filter value using
// numeric semantics. Supported operands: =, >, < and the negated form via
// filter.Negate (e.g., != is represented as Negate + "=").
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Error("invalid numeric value: " + filter.Value)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		log.Error("unsupported numeric operand: " + filter.Operand)
		return false
	}
}

// checkTimeOperand compares a timestamp against an RFC 3339 time or date.
// Other operands match against the RFC 3339 text of the timestamp.
func checkTimeOperand(value time.Time, filter Filter) bool {
	switch filter.Operand {
	case "<", ">", "=":
	default:
		return checkStringOperand(value.Format(time.RFC3339), filter)
	}

	tgt, err := time.Parse(time.RFC3339, filter.Value)
	if err != nil {
		tgt, err = time.ParseInLocation(time.DateOnly, filter.Value, value.Location())
	}
	if err != nil {
		log.Error("invalid time value: " + filter.Value)
		return false
	}

	c := value.Compare(tgt)
	switch filter.Operand {
	case "<":
		return (c < 0) == !filter.Negate
	case ">":
		return (c > 0) == !filter.Negate
	default:
		return (c == 0) == !filter.Negate
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}

// toFloat64 attempts to normalize various numeric types to float64.
// Returns (0, false) if v is not a recognized numeric type.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
