package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testRow struct {
	id    string
	lines int
}

func (r *testRow) ID() string { return r.id }

func (r *testRow) Render(width int) string {
	rows := make([]string, r.lines)
	for i := range rows {
		rows[i] = fmt.Sprintf("%s line %d", r.id, i)
	}
	return strings.Join(rows, "\n")
}

func (r *testRow) Height() int { return r.lines }

func makeRows(n, lines int) []ScrollItem {
	items := make([]ScrollItem, n)
	for i := range items {
		items[i] = &testRow{id: fmt.Sprintf("row-%d", i), lines: lines}
	}
	return items
}

func TestScrollListViewLimitsToHeight(t *testing.T) {
	list := NewScrollList(40, 5)
	list.SetItems(makeRows(10, 2))

	view := list.View()
	assert.LessOrEqual(t, len(strings.Split(view, "\n")), 5)
	assert.Contains(t, view, "row-0 line 0")
}

func TestScrollListSelectionScrollsIntoView(t *testing.T) {
	list := NewScrollList(40, 6)
	list.SetItems(makeRows(10, 2))
	list.SetFocused(true)
	list.SetSelected(0)

	for i := 0; i < 9; i++ {
		list.SelectNext()
	}
	assert.Equal(t, 9, list.SelectedIdx())
	assert.Contains(t, list.View(), "row-9 line 0")
}

func TestScrollListSelectionClamped(t *testing.T) {
	list := NewScrollList(40, 6)
	list.SetItems(makeRows(3, 1))

	list.SetSelected(99)
	assert.Equal(t, -1, list.SelectedIdx())

	list.SetSelected(2)
	list.SelectNext()
	assert.Equal(t, 2, list.SelectedIdx())
}

func TestScrollListShrinksSelectionWithItems(t *testing.T) {
	list := NewScrollList(40, 6)
	list.SetItems(makeRows(5, 1))
	list.SetSelected(4)

	list.SetItems(makeRows(2, 1))
	assert.Equal(t, 1, list.SelectedIdx())
}

func TestScrollListScrollPercent(t *testing.T) {
	list := NewScrollList(40, 4)
	list.SetItems(makeRows(2, 1))
	assert.Equal(t, 1.0, list.ScrollPercent())

	list.SetItems(makeRows(20, 1))
	list.GotoTop()
	assert.Equal(t, 0.0, list.ScrollPercent())

	list.ScrollBy(100)
	assert.Equal(t, 1.0, list.ScrollPercent())
}
