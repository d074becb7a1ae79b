// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfgdiff/cfgdiff/internal/revspec"
)

func pickerRevisions() []*revspec.Revision {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []*revspec.Revision{
		{ID: "config.3.json", Serial: 3, CreatedAt: now},
		{ID: "config.2.json", Serial: 2, CreatedAt: now.Add(-time.Hour)},
		{ID: "config.1.json", Serial: 1, CreatedAt: now.Add(-2 * time.Hour)},
	}
}

func press(m picker, keys ...string) picker {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(picker)
	}
	return m
}

func TestPicker_SelectsPairOldestFirst(t *testing.T) {
	t.Parallel()

	m := press(picker{items: pickerRevisions()}, " ", "down", "down", " ", "enter")

	pair := m.pair()
	require.Len(t, pair, 2)
	assert.Equal(t, "config.1.json", pair[0].ID)
	assert.Equal(t, "config.3.json", pair[1].ID)
}

func TestPicker_Toggle(t *testing.T) {
	t.Parallel()

	m := press(picker{items: pickerRevisions()}, " ", " ")
	assert.Empty(t, m.selected)

	// A third selection is ignored.
	m = press(picker{items: pickerRevisions()}, " ", "down", " ", "down", " ")
	require.Len(t, m.selected, 2)
	assert.Equal(t, "config.3.json", m.selected[0].ID)
	assert.Equal(t, "config.2.json", m.selected[1].ID)
}

func TestPicker_EnterNeedsTwo(t *testing.T) {
	t.Parallel()

	m := press(picker{items: pickerRevisions()}, " ", "enter")
	assert.False(t, m.done)
	assert.Nil(t, m.pair())
}

func TestPicker_Quit(t *testing.T) {
	t.Parallel()

	m := press(picker{items: pickerRevisions()}, " ", "down", " ", "esc")
	assert.Nil(t, m.pair())
}

func TestPicker_CursorBounds(t *testing.T) {
	t.Parallel()

	m := press(picker{items: pickerRevisions()}, "up", "down", "down", "down", "down")
	assert.Equal(t, 2, m.cursor)

	m = press(m, "k")
	assert.Equal(t, 1, m.cursor)
}

func TestPicker_View(t *testing.T) {
	t.Parallel()

	m := press(picker{items: pickerRevisions()}, "down", " ")
	view := m.View()

	assert.Contains(t, view, "Select two revisions:")
	assert.Contains(t, view, "> [x]    2 2026-03-01T11:00:00Z config.2.json")
	assert.Contains(t, view, "  [ ]    3 2026-03-01T12:00:00Z config.3.json")
}

func TestPicker_Empty(t *testing.T) {
	t.Parallel()

	m := press(picker{}, " ", "down", "enter")
	assert.Nil(t, m.pair())
}
