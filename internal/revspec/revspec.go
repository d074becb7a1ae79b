// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package revspec

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Current is the spec of the newest revision.
const Current = "REV~0"

// ErrNoMatch is returned when a spec does not select any revision.
var ErrNoMatch = errors.New("no matching revision")

// Revision is one archived configuration snapshot. Location is where the body
// lives: a file path for local archives and files, the s3:// URL of the object
// for S3. File is set for revisions resolved from a path on disk rather than from
// an archive.
type Revision struct {
	ID        string    `json:"id" yaml:"id"`
	Serial    int64     `json:"serial" yaml:"serial"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Size      int64     `json:"size" yaml:"size"`
	Location  string    `json:"location" yaml:"location"`
	File      bool      `json:"-" yaml:"-"`
}

// Resolve returns the revisions selected by specs, in spec order. revisions
// must be newest first. Without specs the newest revision is returned.
func Resolve(revisions []*Revision, specs ...string) ([]*Revision, error) {
	var result = []*Revision{}

	// A spec is one of:
	//   REV~N  - the N-th newest revision.
	//   0, -N  - the same, relative to the newest.
	//   serial - the revision with that serial.
	//   file   - a snapshot file on disk.
	//   id     - the first revision whose ID starts with it.
	if len(specs) == 0 {
		specs = []string{Current}
	}

	for _, spec := range specs {
		rev, err := resolveSpec(spec, revisions)
		if err != nil {
			return nil, err
		}
		result = append(result, rev)
	}

	return result, nil
}

func resolveSpec(spec string, revisions []*Revision) (*Revision, error) {
	switch {
	case spec == "":
		return nil, fmt.Errorf("empty revision spec: %w", ErrNoMatch)

	case strings.HasPrefix(strings.ToUpper(spec), "REV~"):
		return resolveRelSpec(spec, revisions)

	case isNumeric(spec):
		return resolveNumericSpec(spec, revisions)

	case isFilePath(spec):
		return resolveFileSpec(spec)

	default:
		return resolveIDSpec(spec, revisions)
	}
}

// resolveRelSpec handles REV~N.
func resolveRelSpec(spec string, revisions []*Revision) (*Revision, error) {
	parts := strings.Split(spec, "~")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid revision spec format: %s: %w", spec, ErrNoMatch)
	}

	index, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid revision index: %s: %w", parts[1], ErrNoMatch)
	}

	return at(index, revisions)
}

// resolveNumericSpec handles a serial, or a relative index when <= 0.
func resolveNumericSpec(spec string, revisions []*Revision) (*Revision, error) {
	i, _ := strconv.Atoi(spec)

	if i <= 0 {
		return at(-i, revisions)
	}

	for _, r := range revisions {
		if r.Serial == int64(i) {
			return r, nil
		}
	}

	return nil, fmt.Errorf("revision with serial %d: %w", i, ErrNoMatch)
}

func at(index int, revisions []*Revision) (*Revision, error) {
	if index < 0 || index > len(revisions)-1 {
		return nil, fmt.Errorf("index %d out of range for %d revisions: %w", index, len(revisions), ErrNoMatch)
	}
	return revisions[index], nil
}

func resolveFileSpec(spec string) (*Revision, error) {
	info, err := os.Stat(spec)
	if err != nil {
		return nil, err
	}

	return &Revision{
		ID:        spec,
		CreatedAt: info.ModTime(),
		Size:      info.Size(),
		Location:  spec,
		File:      true,
	}, nil
}

func resolveIDSpec(spec string, revisions []*Revision) (*Revision, error) {
	for _, r := range revisions {
		if strings.HasPrefix(r.ID, spec) {
			return r, nil
		}
	}

	return nil, fmt.Errorf("revision with ID prefix %s: %w", spec, ErrNoMatch)
}

func isNumeric(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func isFilePath(s string) bool {
	info, err := os.Stat(s)
	return err == nil && !info.IsDir()
}
