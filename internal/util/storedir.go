// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ParseStoreDir parses a store spec of the form DIR or DIR::ARCHIVE and returns
// the absolute directory and the archive type override. It returns an error if
// the fs entry does not exist, is empty or is not a directory.
func ParseStoreDir(spec string) (string, string, error) {
	if spec == "" {
		return "", "", os.ErrInvalid
	}

	var archive string
	dir, rest, found := strings.Cut(spec, "::")
	if found {
		archive, _, _ = strings.Cut(rest, "::")
	}

	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", "", err
		}
		dir = filepath.Join(cwd, dir)
	}

	if r, err := os.Stat(dir); err != nil {
		return "", "", err
	} else if !r.IsDir() {
		return "", "", os.ErrInvalid
	}

	return dir, archive, nil
}
