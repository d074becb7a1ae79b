// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cfgdiff/cfgdiff/internal/revspec"
)

// SelectRevisions lets the user pick two revisions from items. It returns the
// pair oldest first, or nil if the picker was abandoned.
func SelectRevisions(items []*revspec.Revision) ([]*revspec.Revision, error) {
	p := tea.NewProgram(picker{items: items})
	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("revision picker failed: %w", err)
	}
	return m.(picker).pair(), nil
}

type picker struct {
	items    []*revspec.Revision
	cursor   int
	selected []*revspec.Revision
	done     bool
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.selected = nil
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ":
		if len(m.items) == 0 {
			break
		}
		cur := m.items[m.cursor]
		if i := slices.Index(m.selected, cur); i >= 0 {
			m.selected = slices.Delete(m.selected, i, i+1)
		} else if len(m.selected) < 2 {
			m.selected = append(m.selected, cur)
		}
	case "enter":
		if len(m.selected) == 2 {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m picker) View() string {
	var b strings.Builder
	b.WriteString("Select two revisions:\n\n")
	for i, rev := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if slices.Contains(m.selected, rev) {
			mark = "x"
		}
		fmt.Fprintf(&b, "%s [%s] %4d %s %s\n", cursor, mark, rev.Serial, rev.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), rev.ID)
	}
	b.WriteString("\nSPACE: toggle, ENTER: go, Q/ESCAPE: quit\n")
	return b.String()
}

// pair returns the chosen revisions ordered by serial, or nil.
func (m picker) pair() []*revspec.Revision {
	if !m.done || len(m.selected) != 2 {
		return nil
	}
	pair := slices.Clone(m.selected)
	slices.SortFunc(pair, func(a, b *revspec.Revision) int {
		return cmp.Compare(a.Serial, b.Serial)
	})
	return pair
}
