// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package cacheutil keeps fetched snapshot bodies on disk beneath the user
// cache directory. Entries are keyed by the sha256 of a clear-text key and
// grouped in caller supplied subdirectories.
package cacheutil
