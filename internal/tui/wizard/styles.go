package wizard

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/reunite-ai/reunite/internal/tui/theme"
)

// renderHintBar renders key/description pairs separated by dots.
func renderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	var result string
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			result += " " + s.HintSeparator.Render(".") + " "
		}
		result += s.HintKey.Render(pairs[i]) + " " + s.HintDesc.Render(pairs[i+1])
	}
	return result
}

func styleModalContainer() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderDefault))
}

func styleStepTitle() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Primary)).
		MarginBottom(1)
}

func styleFieldLabel() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgSubtle)).
		Bold(true)
}

func styleInputBox(focused bool) lipgloss.Style {
	t := theme.Current()
	border := t.BorderDefault
	if focused {
		border = t.BorderFocus
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border))
}

func styleErrorText() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Error)).
		Bold(true)
}

func styleNoteText() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted)).
		Italic(true)
}

func styleTagChip() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(t.Secondary)).
		Padding(0, 1).
		MarginRight(1)
}

func styleSelectedRow() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Primary)).
		Background(lipgloss.Color(t.BgSurface0)).
		Bold(true)
}

func focusBorderColor() string {
	return theme.Current().BorderFocus
}

// formatCoordinate renders a picked point with four decimal places.
func formatCoordinate(lat, lng float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lng)
}
