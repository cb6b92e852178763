package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ScrollItem represents a single item in a ScrollList.
type ScrollItem interface {
	// ID returns the unique identifier for this item.
	ID() string
	// Render returns the rendered string representation at the given width.
	Render(width int) string
	// Height returns the number of lines this item occupies (0 if not yet rendered).
	Height() int
}

// ScrollList is a lazy-rendering scrollable list that only renders visible items.
// It maintains an offset-based view into a list of items and only renders
// what's visible in the current viewport.
type ScrollList struct {
	items       []ScrollItem // All items in the list
	offsetIdx   int          // Index of the first visible item
	offsetLine  int          // Number of lines to skip from the first visible item
	width       int          // Viewport width
	height      int          // Viewport height
	focused     bool         // Whether this list has keyboard focus
	selectedIdx int          // Index of selected item (-1 = no selection)
}

// NewScrollList creates a new ScrollList with the given width and height.
func NewScrollList(width, height int) *ScrollList {
	return &ScrollList{
		items:       make([]ScrollItem, 0),
		width:       width,
		height:      height,
		selectedIdx: -1,
	}
}

// SetItems replaces all items in the list.
func (s *ScrollList) SetItems(items []ScrollItem) {
	s.items = items
	s.clampOffset()
	if s.selectedIdx >= len(items) {
		s.selectedIdx = len(items) - 1
	}
}

// AppendItems adds items to the end of the list, keeping the viewport put.
func (s *ScrollList) AppendItems(items ...ScrollItem) {
	s.items = append(s.items, items...)
}

// Len returns the number of items.
func (s *ScrollList) Len() int {
	return len(s.items)
}

// SetWidth updates the viewport width.
func (s *ScrollList) SetWidth(width int) {
	s.width = width
}

// SetHeight updates the viewport height.
func (s *ScrollList) SetHeight(height int) {
	s.height = height
	s.clampOffset()
}

// SetFocused sets the focus state of the list.
func (s *ScrollList) SetFocused(focused bool) {
	s.focused = focused
}

// SetSelected sets the selected item index.
// Pass -1 to clear selection.
func (s *ScrollList) SetSelected(idx int) {
	if idx < -1 || idx >= len(s.items) {
		s.selectedIdx = -1
	} else {
		s.selectedIdx = idx
	}
}

// SelectedIdx returns the current selected item index (-1 if no selection).
func (s *ScrollList) SelectedIdx() int {
	return s.selectedIdx
}

// SelectNext moves the selection down, scrolling it into view.
func (s *ScrollList) SelectNext() {
	if s.selectedIdx < len(s.items)-1 {
		s.selectedIdx++
		s.scrollSelectionIntoView()
	}
}

// SelectPrev moves the selection up, scrolling it into view.
func (s *ScrollList) SelectPrev() {
	if s.selectedIdx > 0 {
		s.selectedIdx--
		s.scrollSelectionIntoView()
	}
}

// scrollSelectionIntoView adjusts the offset so the selected item is visible.
func (s *ScrollList) scrollSelectionIntoView() {
	if s.selectedIdx < 0 {
		return
	}

	if s.selectedIdx < s.offsetIdx {
		s.offsetIdx = s.selectedIdx
		s.offsetLine = 0
		return
	}

	// Walk forward from the offset until the selected item's bottom fits
	lines := 0
	for i := s.offsetIdx; i <= s.selectedIdx && i < len(s.items); i++ {
		lines += s.itemHeight(i) + 1 // +1 for inter-item newline
	}
	for lines > s.height && s.offsetIdx < s.selectedIdx {
		lines -= s.itemHeight(s.offsetIdx) + 1
		s.offsetIdx++
		s.offsetLine = 0
	}
}

func (s *ScrollList) itemHeight(i int) int {
	h := s.items[i].Height()
	if h == 0 {
		s.items[i].Render(s.width)
		h = s.items[i].Height()
	}
	return h
}

// View returns the rendered view of visible items.
// Only renders items that are visible within the viewport height.
func (s *ScrollList) View() string {
	if len(s.items) == 0 {
		return ""
	}

	var result strings.Builder
	linesRendered := 0

	// Start from offsetIdx and render items until we fill the viewport height
	for i := s.offsetIdx; i < len(s.items) && linesRendered < s.height; i++ {
		item := s.items[i]

		rendered := item.Render(s.width)

		// For the first visible item, skip offsetLine lines
		if i == s.offsetIdx && s.offsetLine > 0 {
			lines := strings.Split(rendered, "\n")
			if s.offsetLine < len(lines) {
				rendered = strings.Join(lines[s.offsetLine:], "\n")
			} else {
				continue
			}
		}

		// Apply selection styling if this item is selected
		if i == s.selectedIdx && s.focused {
			rendered = styleListSelected.Render("▸ ") + rendered
		}

		// Count lines in rendered output
		itemLines := strings.Count(rendered, "\n") + 1
		if linesRendered+itemLines > s.height {
			lines := strings.Split(rendered, "\n")
			remainingLines := s.height - linesRendered
			if remainingLines > 0 {
				rendered = strings.Join(lines[:remainingLines], "\n")
			} else {
				break
			}
		}

		result.WriteString(rendered)
		linesRendered += strings.Count(rendered, "\n") + 1

		if linesRendered < s.height && i < len(s.items)-1 {
			result.WriteString("\n")
			linesRendered++
		}
	}

	return result.String()
}

// ScrollBy scrolls the viewport by the given number of lines.
// Positive values scroll down, negative values scroll up.
func (s *ScrollList) ScrollBy(lines int) {
	if lines == 0 {
		return
	}

	if lines > 0 {
		for lines > 0 && s.offsetIdx < len(s.items) {
			itemHeight := s.itemHeight(s.offsetIdx)

			remainingLines := itemHeight - s.offsetLine
			if lines >= remainingLines {
				s.offsetIdx++
				s.offsetLine = 0
				lines -= remainingLines
			} else {
				s.offsetLine += lines
				lines = 0
			}
		}
	} else {
		lines = -lines
		for lines > 0 && (s.offsetIdx > 0 || s.offsetLine > 0) {
			if s.offsetLine >= lines {
				s.offsetLine -= lines
				lines = 0
			} else {
				lines -= s.offsetLine
				s.offsetLine = 0
				if s.offsetIdx > 0 {
					s.offsetIdx--
					s.offsetLine = s.itemHeight(s.offsetIdx) - 1
					if s.offsetLine < 0 {
						s.offsetLine = 0
					}
					lines--
				}
			}
		}
	}

	s.clampOffset()
}

// GotoTop scrolls to the top of the list.
func (s *ScrollList) GotoTop() {
	s.offsetIdx = 0
	s.offsetLine = 0
}

// TotalLineCount returns the total number of lines across all items.
func (s *ScrollList) TotalLineCount() int {
	total := 0
	for i := range s.items {
		total += s.itemHeight(i)
	}
	return total
}

// ScrollPercent returns the current scroll position as a percentage (0.0 to 1.0).
func (s *ScrollList) ScrollPercent() float64 {
	if len(s.items) == 0 {
		return 0.0
	}

	totalLines := s.TotalLineCount()
	if totalLines <= s.height {
		return 1.0
	}

	currentOffset := s.currentOffsetInLines()
	maxOffset := totalLines - s.height

	if maxOffset <= 0 {
		return 1.0
	}

	pct := float64(currentOffset) / float64(maxOffset)
	if pct > 1.0 {
		pct = 1.0
	}
	if pct < 0.0 {
		pct = 0.0
	}

	return pct
}

// Update handles messages for the scroll list.
// Only processes keyboard events when focused is true.
func (s *ScrollList) Update(msg tea.Msg) tea.Cmd {
	if !s.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "pgup":
			s.ScrollBy(-s.height)
		case "pgdown":
			s.ScrollBy(s.height)
		case "home":
			s.GotoTop()
		}
	}

	return nil
}

// currentOffsetInLines returns the current scroll offset in lines.
func (s *ScrollList) currentOffsetInLines() int {
	offset := 0
	for i := 0; i < s.offsetIdx && i < len(s.items); i++ {
		offset += s.itemHeight(i)
	}
	offset += s.offsetLine
	return offset
}

// clampOffset ensures offset is within valid bounds.
func (s *ScrollList) clampOffset() {
	if len(s.items) == 0 {
		s.offsetIdx = 0
		s.offsetLine = 0
		return
	}

	if s.offsetIdx >= len(s.items) {
		s.offsetIdx = len(s.items) - 1
	}
	if s.offsetIdx < 0 {
		s.offsetIdx = 0
	}

	if s.offsetIdx < len(s.items) {
		h := s.itemHeight(s.offsetIdx)
		if s.offsetLine >= h {
			s.offsetLine = h - 1
		}
		if s.offsetLine < 0 {
			s.offsetLine = 0
		}
	}
}
