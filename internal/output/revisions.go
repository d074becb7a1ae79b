// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"

	"github.com/cfgdiff/cfgdiff/internal/filters"
	"github.com/cfgdiff/cfgdiff/internal/revspec"
)

// RevisionColumns are the columns of a revision listing, in display order.
var RevisionColumns = []string{"serial", "id", "created", "size", "location"}

// DefaultRevisionSort lists the newest revision first.
const DefaultRevisionSort = "-serial"

// revisionRows flattens revisions into rows keyed by column.
func revisionRows(revs []*revspec.Revision) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(revs))
	for _, r := range revs {
		rows = append(rows, map[string]interface{}{
			"serial":   r.Serial,
			"id":       r.ID,
			"created":  r.CreatedAt,
			"size":     r.Size,
			"location": r.Location,
		})
	}
	return rows
}

// FilterRevisions keeps the revisions whose row matches the --filter spec.
func FilterRevisions(revs []*revspec.Revision, spec string) ([]*revspec.Revision, error) {
	fs, err := filters.Compile(spec)
	if err != nil {
		return nil, err
	}
	if len(fs) == 0 {
		return revs, nil
	}

	var out []*revspec.Revision
	for i, row := range revisionRows(revs) {
		if filters.Match(row, fs) {
			out = append(out, revs[i])
		}
	}
	return out, nil
}

// WriteRevisions writes a revision listing to w. Text output is a table
// sorted by opts.Sort; JSON and YAML output keep the archive order. If w is
// nil, os.Stdout is used.
func WriteRevisions(revs []*revspec.Revision, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	if opts.Output != "" && opts.Output != FormatText {
		if revs == nil {
			revs = []*revspec.Revision{}
		}
		return marshal(revs, opts.Output, w)
	}

	rows := revisionRows(revs)
	spec := opts.Sort
	if spec == "" {
		spec = DefaultRevisionSort
	}
	SortDataset(rows, spec)

	TableWriter(rows, RevisionColumns, opts, w)
	return nil
}

// cell formats one table cell.
func cell(column string, value interface{}, opts Options) string {
	switch v := value.(type) {
	case time.Time:
		return formatTime(v, opts.Local)
	case int64:
		if column == "size" {
			if v <= 0 {
				return "-"
			}
			return humanize.Bytes(uint64(v))
		}
	}
	return InterfaceToString(value, "-")
}

// TableWriter renders rows in a tabular form honoring color, titles and
// padding options. Output is written to w.
func TableWriter(rows []map[string]interface{}, columns []string, opts Options, w io.Writer) {
	// We return early if there are no results to display.
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, _, _, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, 0, len(columns))
		for _, col := range columns {
			line = append(line, cell(col, row[col], opts))
		}
		cells = append(cells, line)
	}

	pad := opts.Padding
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(cells...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(columns...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}
