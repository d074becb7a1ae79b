// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package session answers "show configuration" requests. Given two
// configuration identifiers it loads the trees from a source.Source and
// renders either a single tree (identifiers equal) or the difference between
// two trees, as display text or as set/delete/comment commands.
//
// Everything is computed before anything is written, so a load failure never
// leaves partial output behind.
package session
