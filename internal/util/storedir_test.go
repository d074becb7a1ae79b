// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches into dir for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestParseStoreDir(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T) string
		wantArchive string
		wantErr     bool
		errIs       error
	}{
		{
			name:  "absolute_path",
			setup: func(t *testing.T) string { return t.TempDir() },
		},
		{
			name:        "absolute_path_with_archive",
			setup:       func(t *testing.T) string { return t.TempDir() + "::s3" },
			wantArchive: "s3",
		},
		{
			name: "relative_path_with_archive",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				chdir(t, filepath.Dir(dir))
				return filepath.Base(dir) + "::local"
			},
			wantArchive: "local",
		},
		{
			name: "dot",
			setup: func(t *testing.T) string {
				chdir(t, t.TempDir())
				return "."
			},
		},
		{
			name: "parent",
			setup: func(t *testing.T) string {
				sub := filepath.Join(t.TempDir(), "store")
				require.NoError(t, os.Mkdir(sub, 0o755))
				chdir(t, sub)
				return ".."
			},
		},
		{
			name:  "empty_archive_override",
			setup: func(t *testing.T) string { return t.TempDir() + "::" },
		},
		{
			name:        "extra_separators_ignored",
			setup:       func(t *testing.T) string { return t.TempDir() + "::s3::extra" },
			wantArchive: "s3",
		},
		{
			name:    "nonexistent_directory",
			setup:   func(t *testing.T) string { return "/nonexistent/store/dir" },
			wantErr: true,
			errIs:   os.ErrNotExist,
		},
		{
			name: "file_not_directory",
			setup: func(t *testing.T) string {
				f := filepath.Join(t.TempDir(), "config.boot")
				require.NoError(t, os.WriteFile(f, []byte("{}"), 0o600))
				return f
			},
			wantErr: true,
			errIs:   os.ErrInvalid,
		},
		{
			name:    "empty",
			setup:   func(t *testing.T) string { return "" },
			wantErr: true,
			errIs:   os.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, archive, err := ParseStoreDir(tt.setup(t))

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				return
			}

			require.NoError(t, err)
			assert.DirExists(t, dir)
			assert.True(t, filepath.IsAbs(dir))
			assert.Equal(t, tt.wantArchive, archive)
		})
	}
}
