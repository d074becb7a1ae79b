// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/cfgdiff/cfgdiff/internal/config"
	"github.com/cfgdiff/cfgdiff/internal/differ"
	"github.com/cfgdiff/cfgdiff/internal/source"
)

// NewGlobalFlags returns the output flags shared by every command that prints
// results. ns is the command name, used to look up namespaced config values.
func NewGlobalFlags(ns string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
			Sources: NameSpacedValueChain(ns, "color"),
		},
		&cli.BoolFlag{
			Name:    "local",
			Aliases: []string{"l"},
			Usage:   "show local timestamps",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json or yaml)",
			Value:   "text",
			Sources: NameSpacedValueChain(ns, "output", "CFGDIFF_OUTPUT"),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:    "padding",
			Usage:   "cell padding of text tables",
			Value:   1,
			Hidden:  true,
			Sources: NameSpacedValueChain(ns, "padding"),
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
			Sources: NameSpacedValueChain(ns, "titles"),
		},
	}

	return
}

// NewStoreFlags returns the flags that locate and open the configuration
// store.
func NewStoreFlags(ns string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "store",
			Usage:   "store directory, optionally DIR::ARCHIVE. Defaults to the working directory",
			Sources: NameSpacedValueChain(ns, "store", "CFGDIFF_STORE"),
		},
		&cli.StringFlag{
			Name:    "archive",
			Usage:   "revision archive type (local or s3)",
			Sources: NameSpacedValueChainKey(ns, "archive", "archive.type", "CFGDIFF_ARCHIVE"),
			Validator: func(value string) error {
				return FlagValidators(value, ArchiveValidator)
			},
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "snapshot format (json, yaml or hcl). Detected when unset",
			Validator: func(value string) error {
				return FlagValidators(value, FormatValidator)
			},
		},
		&cli.StringFlag{
			Name:    "passphrase",
			Aliases: []string{"p"},
			Usage:   "encrypted snapshot passphrase",
		},
	}
}

// NewShowFlags returns the flags that select what a report shows.
func NewShowFlags(ns string) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "commands",
			Aliases: []string{"x"},
			Usage:   "print the commands that turn the first configuration into the second",
			Sources: NameSpacedValueChain(ns, "commands"),
		},
		&cli.BoolFlag{
			Name:    "context",
			Aliases: []string{"C"},
			Usage:   "show only changes and the lines around them",
			Sources: NameSpacedValueChain(ns, "context"),
		},
		&cli.IntFlag{
			Name:    "context-lines",
			Usage:   "unchanged lines shown around each change with --context",
			Value:   differ.DefaultContext,
			Sources: NameSpacedValueChain(ns, "context-lines"),
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "defaults",
			Aliases: []string{"d"},
			Usage:   "include nodes that carry schema defaults",
			Sources: NameSpacedValueChain(ns, "defaults"),
		},
		&cli.BoolFlag{
			Name:    "hide-secrets",
			Usage:   "mask the values of secret nodes",
			Sources: NameSpacedValueChain(ns, "hide-secrets", "CFGDIFF_HIDE_SECRETS"),
		},
	}
}

// NewFromToFlags returns the flags naming the two configurations of show.
func NewFromToFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "from",
			Usage: "configuration to compare from. Defaults to " + source.DefaultActive,
		},
		&cli.StringFlag{
			Name:  "to",
			Usage: "configuration to compare to. Defaults to " + source.DefaultWorking,
		},
	}
}

// NameSpacedValueChain returns a source chain for a flag that reads the given
// environment variables, then <ns>.<name> and <name> from the config file.
func NameSpacedValueChain(ns, name string, envs ...string) cli.ValueSourceChain {
	return NameSpacedValueChainKey(ns, name, name, envs...)
}

// NameSpacedValueChainKey is NameSpacedValueChain for a flag whose global
// config key differs from its name. The namespaced key is always <ns>.<name>.
func NameSpacedValueChainKey(ns, name, key string, envs ...string) cli.ValueSourceChain {
	var chain []cli.ValueSource
	for _, env := range envs {
		chain = append(chain, cli.EnvVar(env))
	}

	// Without a config file the chain is environment only.
	if path := config.Config.Source; path != "" {
		if ns != "" {
			chain = append(chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
		}
		chain = append(chain, yaml.YAML(key, altsrc.StringSourcer(path)))
	}

	return cli.NewValueSourceChain(chain...)
}
