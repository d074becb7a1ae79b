// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package backend provides the revision archives that hold past configuration
// snapshots (a local directory or the object versions of one S3 key) behind a
// common interface for listing revisions and fetching their bodies.
package backend
