// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output writes session reports and revision listings as text, JSON
// or YAML. Text output can be colored with lipgloss; colors come from the
// colors.* keys of the config file or a default chosen for the terminal
// background.
package output
