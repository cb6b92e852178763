package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/reunite-ai/reunite/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
)

// ButtonID identifies a button's action.
type ButtonID int

const (
	ButtonNone ButtonID = iota - 1
	ButtonCancel
	ButtonBack
	ButtonNext
)

// Button represents a single button in the button bar.
type Button struct {
	ID    ButtonID
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with focus tracking.
type ButtonBar struct {
	buttons  []Button
	focusIdx int // -1 when blurred
	width    int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons:  buttons,
		focusIdx: -1,
		width:    60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// SetState updates the state of the button with the given ID.
func (b *ButtonBar) SetState(id ButtonID, state ButtonState) {
	for i := range b.buttons {
		if b.buttons[i].ID == id {
			b.buttons[i].State = state
		}
	}
}

// FocusFirst focuses the first enabled button.
func (b *ButtonBar) FocusFirst() {
	for i, btn := range b.buttons {
		if btn.State != ButtonDisabled {
			b.focusIdx = i
			return
		}
	}
	b.focusIdx = -1
}

// FocusLast focuses the last enabled button.
func (b *ButtonBar) FocusLast() {
	for i := len(b.buttons) - 1; i >= 0; i-- {
		if b.buttons[i].State != ButtonDisabled {
			b.focusIdx = i
			return
		}
	}
	b.focusIdx = -1
}

// FocusNext moves focus to the next enabled button.
// Returns false when focus walked off the end (caller should blur).
func (b *ButtonBar) FocusNext() bool {
	for i := b.focusIdx + 1; i < len(b.buttons); i++ {
		if b.buttons[i].State != ButtonDisabled {
			b.focusIdx = i
			return true
		}
	}
	return false
}

// FocusPrev moves focus to the previous enabled button.
// Returns false when focus walked off the start.
func (b *ButtonBar) FocusPrev() bool {
	for i := b.focusIdx - 1; i >= 0; i-- {
		if b.buttons[i].State != ButtonDisabled {
			b.focusIdx = i
			return true
		}
	}
	return false
}

// Blur removes button focus.
func (b *ButtonBar) Blur() {
	b.focusIdx = -1
}

// FocusedButton returns the ID of the focused button, or ButtonNone.
func (b *ButtonBar) FocusedButton() ButtonID {
	if b.focusIdx < 0 || b.focusIdx >= len(b.buttons) {
		return ButtonNone
	}
	return b.buttons[b.focusIdx].ID
}

// Render renders the button bar with proper spacing and styling.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	t := theme.Current()

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		Background(lipgloss.Color(t.BgSurface0)).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	disabledStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted)).
		Background(lipgloss.Color(t.BgMantle)).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	focusedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(t.BorderFocus)).
		Bold(true).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	var renderedButtons []string
	for i, btn := range b.buttons {
		var rendered string
		switch {
		case i == b.focusIdx:
			rendered = focusedStyle.Render(btn.Label)
		case btn.State == ButtonDisabled:
			rendered = disabledStyle.Render(btn.Label)
		default:
			rendered = normalStyle.Render(btn.Label)
		}
		renderedButtons = append(renderedButtons, rendered)
	}

	result := strings.Join(renderedButtons, "")

	// Center the button bar
	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, result)
}
