// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cnode

import (
	"iter"
	"strings"
)

// Verb is the primitive operation of a Command.
type Verb string

const (
	VerbSet     Verb = "set"
	VerbDelete  Verb = "delete"
	VerbComment Verb = "comment"
)

// Command is one replayable operation: a verb, the full path of the node it
// applies to, and the values or comment text.
type Command struct {
	Verb Verb     `json:"verb" yaml:"verb"`
	Path []string `json:"path" yaml:"path"`
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`
}

// Tokens returns the path followed by the args, without the verb.
func (c Command) Tokens() []string {
	return Append(c.Path, c.Args...)
}

// String renders the canonical printable form: the verb, the path tokens and
// the args, space-joined. Tokens that would not survive a whitespace split are
// single-quoted.
func (c Command) String() string {
	var b strings.Builder
	b.WriteString(string(c.Verb))
	for _, t := range c.Tokens() {
		b.WriteByte(' ')
		b.WriteString(QuoteToken(t))
	}
	return b.String()
}

// QuoteToken single-quotes t when it is empty or contains whitespace or
// quotes. Embedded single quotes are written shell style ('\'').
func QuoteToken(t string) string {
	if t != "" && !strings.ContainsAny(t, " \t\n\r'\"") {
		return t
	}
	return "'" + strings.ReplaceAll(t, "'", `'\''`) + "'"
}

// Batch holds the three command lists synthesized from one comparison.
// Consumers apply them as whole batches: every delete, then every set, then
// every comment.
type Batch struct {
	Delete  []Command `json:"delete" yaml:"delete"`
	Set     []Command `json:"set" yaml:"set"`
	Comment []Command `json:"comment" yaml:"comment"`
}

// All yields the commands in application order.
func (b Batch) All() iter.Seq[Command] {
	return func(yield func(Command) bool) {
		for _, list := range [][]Command{b.Delete, b.Set, b.Comment} {
			for _, c := range list {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Len returns the total number of commands.
func (b Batch) Len() int {
	return len(b.Delete) + len(b.Set) + len(b.Comment)
}

// Empty reports whether the batch holds no commands.
func (b Batch) Empty() bool { return b.Len() == 0 }

// Tokens flattens one list into the path-plus-args token lists.
func Tokens(cmds []Command) [][]string {
	out := make([][]string, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.Tokens())
	}
	return out
}
