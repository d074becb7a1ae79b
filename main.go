// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cfgdiff/cfgdiff/internal/cacheutil"
	"github.com/cfgdiff/cfgdiff/internal/command"
	"github.com/cfgdiff/cfgdiff/internal/config"
	"github.com/cfgdiff/cfgdiff/internal/log"
	"github.com/cfgdiff/cfgdiff/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			if version.Revision != "" {
				fmt.Printf("%s (%s)\n", version.Version, version.Revision)
			} else {
				fmt.Println(version.Version)
			}
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	switch {
	case len(args) > 1 && args[1] == "completion":
		// Short-circuit completion: pass args directly.
		return args
	default:
		args = processSetOnly(args)
		log.Debugf("args after set processing: args=%v", args)

		args = deduplicateFlags(args)
		log.Debugf("args after dedup: args=%v", args)
		return args
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, _, err := cacheutil.EnsureDir(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly handles the @set logic for all commands, expanding set
// arguments at the @set position. Without an explicit @set, the command's
// "defaults" set is expanded right after the command name so that arguments
// given on the command line come later and win.
func processSetOnly(args []string) []string {
	if len(args) < 2 {
		return args
	}

	// Look for an explicit @set argument starting from index 2.
	idx := 2
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 && !isIdentifier(a) {
			removeIdx := idx + i
			args = append(args[:removeIdx:removeIdx], args[removeIdx+1:]...)
			setArgs, _ := config.GetStringSlice(args[1] + "." + a[1:])
			return injectConfigSet(args, setArgs, removeIdx)
		}
	}

	setArgs, _ := config.GetStringSlice(args[1] + ".defaults")
	return injectConfigSet(args, setArgs, idx)
}

// injectConfigSet splits entries on whitespace and inserts the resulting
// arguments at insertIdx.
func injectConfigSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// isIdentifier reports whether a names a live snapshot, such as @ACTIVE, rather
// than an argument set. Live snapshot names are upper case by convention.
func isIdentifier(a string) bool {
	return strings.ToUpper(a) == a
}

// deduplicateFlags keeps only the last occurrence of each flag so that values
// from argument sets can be overridden on the command line. A flag owns the
// following argument as its value when that argument is not itself a flag.
// Positional arguments are kept in place.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type group struct {
		name  string
		items []string
	}

	var groups []group
	for i := 2; i < len(args); i++ {
		a := args[i]
		if !isFlag(a) {
			groups = append(groups, group{items: []string{a}})
			continue
		}

		name, _, hasValue := strings.Cut(a, "=")
		g := group{name: name, items: []string{a}}
		if !hasValue && i+1 < len(args) && !isFlag(args[i+1]) {
			g.items = append(g.items, args[i+1])
			i++
		}
		groups = append(groups, g)
	}

	last := map[string]int{}
	for i, g := range groups {
		if g.name != "" {
			last[g.name] = i
		}
	}

	out := make([]string, 0, len(args))
	out = append(out, args[:2]...)
	for i, g := range groups {
		if g.name == "" || last[g.name] == i {
			out = append(out, g.items...)
			continue
		}
		// A bare last occurrence marks a boolean flag, so what an earlier
		// occurrence took as its value was really a positional argument.
		if kept := groups[last[g.name]]; len(g.items) == 2 && len(kept.items) == 1 && !strings.Contains(kept.items[0], "=") {
			out = append(out, g.items[1])
		}
	}
	return out
}

func isFlag(a string) bool {
	return strings.HasPrefix(a, "-") && a != "-"
}
