// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/cfgdiff/cfgdiff/internal/config"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "only program and command",
			args:     []string{"cfgdiff", "show"},
			expected: []string{"cfgdiff", "show"},
		},
		{
			name:     "no duplicates",
			args:     []string{"cfgdiff", "show", "--output", "text", "--titles"},
			expected: []string{"cfgdiff", "show", "--output", "text", "--titles"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"cfgdiff", "show", "--output", "json", "--titles", "--output", "text"},
			expected: []string{"cfgdiff", "show", "--titles", "--output", "text"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"cfgdiff", "show", "--titles", "--debug", "--titles"},
			expected: []string{"cfgdiff", "show", "--debug", "--titles"},
		},
		{
			name:     "duplicate flag with equals syntax",
			args:     []string{"cfgdiff", "show", "--output=json", "--titles", "--output=text"},
			expected: []string{"cfgdiff", "show", "--titles", "--output=text"},
		},
		{
			name:     "mixed equals and space syntax - same flag",
			args:     []string{"cfgdiff", "show", "--output=json", "--output", "text"},
			expected: []string{"cfgdiff", "show", "--output", "text"},
		},
		{
			name:     "multiple different flags with duplicates",
			args:     []string{"cfgdiff", "compare", "--from", "a", "--to", "b", "--from", "c", "--to", "d"},
			expected: []string{"cfgdiff", "compare", "--from", "c", "--to", "d"},
		},
		{
			name:     "positional args preserved",
			args:     []string{"cfgdiff", "show", "interfaces", "--output", "json", "--output", "text"},
			expected: []string{"cfgdiff", "show", "interfaces", "--output", "text"},
		},
		{
			name:     "short flags deduplicated",
			args:     []string{"cfgdiff", "show", "-o", "json", "-o", "text"},
			expected: []string{"cfgdiff", "show", "-o", "text"},
		},
		{
			name:     "different flags not affected",
			args:     []string{"cfgdiff", "show", "--color", "--no-color"},
			expected: []string{"cfgdiff", "show", "--color", "--no-color"},
		},
		{
			name:     "triple duplicate",
			args:     []string{"cfgdiff", "show", "--output", "a", "--output", "b", "--output", "c"},
			expected: []string{"cfgdiff", "show", "--output", "c"},
		},
		{
			name:     "flag at end with no value treated as boolean",
			args:     []string{"cfgdiff", "show", "--titles", "--debug", "--titles"},
			expected: []string{"cfgdiff", "show", "--debug", "--titles"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := deduplicateFlags(tt.args)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("deduplicateFlags(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}

func TestDeduplicateFlagsPreservesOrder(t *testing.T) {
	// Ensure non-duplicate flags maintain their relative order.
	args := []string{"cfgdiff", "show", "--alpha", "--beta", "--gamma"}
	result := deduplicateFlags(args)
	expected := []string{"cfgdiff", "show", "--alpha", "--beta", "--gamma"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Order not preserved: got %v, want %v", result, expected)
	}
}

func TestDeduplicateFlagsWithPositionalAfterFlags(t *testing.T) {
	// Positional args after flags should be preserved.
	args := []string{"cfgdiff", "show", "--output", "json", "interfaces", "--output", "text"}
	result := deduplicateFlags(args)
	expected := []string{"cfgdiff", "show", "interfaces", "--output", "text"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("got %v, want %v", result, expected)
	}
}

func TestDeduplicateFlagsBooleanKeepsPositional(t *testing.T) {
	// The earlier --commands looks like it takes "interfaces" as its value,
	// but the bare last occurrence shows it is a boolean.
	args := []string{"cfgdiff", "show", "--commands", "interfaces", "--commands"}
	result := deduplicateFlags(args)
	expected := []string{"cfgdiff", "show", "interfaces", "--commands"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("got %v, want %v", result, expected)
	}
}

func TestInjectConfigSet(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		insertIdx int
		configVal []string
		expected  []string
	}{
		{
			name:      "empty config returns args unchanged",
			args:      []string{"cfgdiff", "show", "--titles"},
			insertIdx: 2,
			configVal: nil,
			expected:  []string{"cfgdiff", "show", "--titles"},
		},
		{
			name:      "single entry injected",
			args:      []string{"cfgdiff", "show", "--titles"},
			insertIdx: 2,
			configVal: []string{"--commands"},
			expected:  []string{"cfgdiff", "show", "--commands", "--titles"},
		},
		{
			name:      "multi-word entry split",
			args:      []string{"cfgdiff", "show", "--titles"},
			insertIdx: 2,
			configVal: []string{"--output text"},
			expected:  []string{"cfgdiff", "show", "--output", "text", "--titles"},
		},
		{
			name:      "multiple entries",
			args:      []string{"cfgdiff", "show"},
			insertIdx: 2,
			configVal: []string{"--commands", "--output json"},
			expected:  []string{"cfgdiff", "show", "--commands", "--output", "json"},
		},
		{
			name:      "insert at index 3",
			args:      []string{"cfgdiff", "show", "interfaces", "--titles"},
			insertIdx: 3,
			configVal: []string{"--commands"},
			expected:  []string{"cfgdiff", "show", "interfaces", "--commands", "--titles"},
		},
		{
			name:      "complex multi-word entries",
			args:      []string{"cfgdiff", "compare"},
			insertIdx: 2,
			configVal: []string{"--store /srv/router1::s3", "--context-lines  5"},
			expected:  []string{"cfgdiff", "compare", "--store", "/srv/router1::s3", "--context-lines", "5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := injectConfigSet(tt.args, tt.configVal, tt.insertIdx)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("injectConfigSet() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestProcessSetOnly(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "cfgdiff.yaml")
	body := `show:
  defaults:
    - --context
  review:
    - --commands
    - --output json
`
	if err := os.WriteFile(cfg, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvFile, cfg)
	if _, err := config.Load(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "defaults set",
			args:     []string{"cfgdiff", "show", "interfaces"},
			expected: []string{"cfgdiff", "show", "--context", "interfaces"},
		},
		{
			name:     "named set replaces marker",
			args:     []string{"cfgdiff", "show", "@review", "interfaces"},
			expected: []string{"cfgdiff", "show", "--commands", "--output", "json", "interfaces"},
		},
		{
			name:     "identifier is not a set",
			args:     []string{"cfgdiff", "show", "--from", "@ACTIVE"},
			expected: []string{"cfgdiff", "show", "--context", "--from", "@ACTIVE"},
		},
		{
			name:     "unknown set expands to nothing",
			args:     []string{"cfgdiff", "show", "@nope"},
			expected: []string{"cfgdiff", "show"},
		},
		{
			name:     "command without sets",
			args:     []string{"cfgdiff", "revisions"},
			expected: []string{"cfgdiff", "revisions"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := processSetOnly(slices.Clone(tt.args))
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("processSetOnly(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}
