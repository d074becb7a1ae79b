// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller walks JSON snapshot documents down to a configuration path
// so only the requested subtree is decoded.
package driller
