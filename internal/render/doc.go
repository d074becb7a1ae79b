// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package render walks a single configuration tree. It produces either the
// curly-brace display text of the tree or the flat list of set and comment
// commands that would recreate it.
//
// Display format, four spaces of indent per level:
//
//	/* uplink */
//	eth0 {
//	    address 192.0.2.1/24
//	    description "to core"
//	    mtu 9000
//	}
//
// The node being viewed prints only its contents. Values of secret nodes are
// replaced with Mask when hiding secrets.
package render
