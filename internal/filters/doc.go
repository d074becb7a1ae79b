// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects rows of a listing, such as the revisions of an
// archive, with --filter expressions.
//
// Filters are key-operator-target expressions joined by a delimiter (default:
// comma, overridden by CFGDIFF_FILTER_DELIM). Operators:
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than (numeric, time or string comparison)
//   - > : greater than (numeric, time or string comparison)
//   - @ : contains substring
//   - / : regular expression match
//
// Every operator may be negated with a leading '!'. A bare key keeps rows
// where the value is set. Timestamps compare against RFC 3339 times or
// YYYY-MM-DD dates.
//
// Examples:
//
//   - "id^config" : IDs that start with "config"
//   - "size>1024" : bodies larger than 1 KiB
//   - "created>2026-01-01" : revisions archived since the start of 2026
//   - "location!@tmp" : locations that do not contain "tmp"
package filters
