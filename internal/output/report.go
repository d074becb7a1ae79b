// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/cfgdiff/cfgdiff/internal/cnode"
	"github.com/cfgdiff/cfgdiff/internal/differ"
	"github.com/cfgdiff/cfgdiff/internal/session"
)

// reportDoc is the structured form of a session report. Commands are token
// lists, path first, so they can be replayed without reparsing.
type reportDoc struct {
	From     string      `json:"from" yaml:"from"`
	To       string      `json:"to" yaml:"to"`
	Path     []string    `json:"path" yaml:"path"`
	Commands *commandDoc `json:"commands,omitempty" yaml:"commands,omitempty"`
	Lines    []lineDoc   `json:"lines,omitempty" yaml:"lines,omitempty"`
}

type commandDoc struct {
	Delete  [][]string `json:"delete" yaml:"delete"`
	Set     [][]string `json:"set" yaml:"set"`
	Comment [][]string `json:"comment" yaml:"comment"`
}

type lineDoc struct {
	Op    string `json:"op,omitempty" yaml:"op,omitempty"`
	Depth int    `json:"depth" yaml:"depth"`
	Text  string `json:"text" yaml:"text"`
}

func newReportDoc(r *session.Report) reportDoc {
	doc := reportDoc{From: r.From, To: r.To, Path: cnode.Append(r.Path)}

	switch {
	case r.Commands:
		doc.Commands = &commandDoc{
			Delete:  cnode.Tokens(r.Batch.Delete),
			Set:     cnode.Tokens(r.Batch.Set),
			Comment: cnode.Tokens(r.Batch.Comment),
		}
	case r.Diff:
		for _, l := range r.Lines {
			op := ""
			if l.Op != differ.OpContext {
				op = string(l.Op.Mark())
			}
			doc.Lines = append(doc.Lines, lineDoc{Op: op, Depth: l.Depth, Text: l.Text})
		}
	default:
		for _, l := range r.Tree {
			doc.Lines = append(doc.Lines, lineDoc{Depth: l.Depth, Text: l.Text})
		}
	}

	return doc
}

// WriteReport writes r to w in the format selected by opts. If w is nil,
// os.Stdout is used.
func WriteReport(r *session.Report, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	switch opts.Output {
	case "", FormatText:
		return writeText(r, opts, w)
	default:
		return marshal(newReportDoc(r), opts.Output, w)
	}
}

// writeText prints r as session.Report.Text does, colored by line kind when
// opts.Color is set.
func writeText(r *session.Report, opts Options, w io.Writer) error {
	if !opts.Color {
		_, err := r.WriteTo(w)
		return err
	}

	_, add, del, _, _ := getColors("colors")
	styles := map[string]lipgloss.Style{
		"+": lipgloss.NewStyle().Foreground(add),
		"-": lipgloss.NewStyle().Foreground(del),
	}
	styles[string(cnode.VerbSet)] = styles["+"]
	styles[string(cnode.VerbDelete)] = styles["-"]
	styles[string(cnode.VerbComment)] = lipgloss.NewStyle().Faint(true)

	emit := func(kind, text string) error {
		if style, ok := styles[kind]; ok {
			text = style.Render(text)
		}
		_, err := fmt.Fprintln(w, text)
		return err
	}

	switch {
	case r.Commands:
		for c := range r.Batch.All() {
			if err := emit(string(c.Verb), c.String()); err != nil {
				return err
			}
		}
	case r.Diff:
		for _, l := range r.Lines {
			if err := emit(string(l.Op.Mark()), l.String()); err != nil {
				return err
			}
		}
	default:
		_, err := r.WriteTo(w)
		return err
	}

	return nil
}
