// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package revspec describes archived configuration revisions and resolves
// user supplied revision specs against a list of them. A spec can name a
// revision by its age (REV~N or -N), its serial number, a file on disk, or a
// prefix of its ID.
package revspec
