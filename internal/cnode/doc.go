// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package cnode holds the immutable configuration tree node, the path helpers
// used to address nodes, and the primitive commands (set, delete, comment)
// synthesized from trees.
package cnode
