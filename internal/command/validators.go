// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/cfgdiff/cfgdiff/internal/log"
	"github.com/cfgdiff/cfgdiff/internal/snapshot"
	"github.com/cfgdiff/cfgdiff/internal/util"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator resolves --store (or the starting directory) into the
// command's metadata so backends and the store see the same directory.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	m := GetMeta(c)

	spec := c.String("store")
	if spec == "" {
		spec = m.StartingDir
	}

	dir, archive, err := util.ParseStoreDir(spec)
	if err != nil {
		return fmt.Errorf("failed to parse store (%s): %w", spec, err)
	}
	if archive != "" {
		if err := ArchiveValidator(archive); err != nil {
			return fmt.Errorf("store %s: archive %w", spec, err)
		}
	}

	m.StoreDir = dir
	m.Archive = archive
	if c.Metadata == nil {
		c.Metadata = map[string]any{}
	}
	c.Metadata["meta"] = m
	log.Debugf("store: %+v", m.StoreSpec)

	return nil
}

func oneOf(value any, valid []string) error {
	s, _ := value.(string)
	if !slices.Contains(valid, s) {
		return fmt.Errorf("must be one of %v", valid)
	}
	return nil
}

func OutputValidator(value any) error {
	return oneOf(value, []string{"text", "json", "yaml"})
}

func ArchiveValidator(value any) error {
	return oneOf(value, []string{"local", "s3"})
}

// FormatValidator accepts the snapshot format names and their aliases.
func FormatValidator(value any) error {
	s, _ := value.(string)
	if _, err := snapshot.ParseFormat(s); err != nil {
		return err
	}
	return nil
}

func NonNegativeValidator(value any) error {
	if n, ok := value.(int); ok && n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
