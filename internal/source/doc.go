// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source resolves configuration identifiers to trees. A Store serves
// the live active and working snapshots from files in the store directory and
// every other identifier from the revision archive.
package source
