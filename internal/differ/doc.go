// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ compares two configuration trees. Compare classifies every
// node pair into a Delta tree; ShowDiff renders a Delta as marked text lines
// and Commands turns it into the delete, set and comment lists that move the
// first tree to the second.
package differ
