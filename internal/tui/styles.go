package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/reunite-ai/reunite/internal/tui/theme"
)

// Package-level styles for list chrome and input frames.
// Built once from the default theme.
var (
	styleListSelected = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Current().Primary)).
			Bold(true)

	styleStatusBar = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Current().FgSubtle)).
			Background(lipgloss.Color(theme.Current().BgMantle)).
			Padding(0, 1)

	styleInputFrame = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Current().BorderDefault))

	styleInputFrameFocused = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(theme.Current().BorderFocus))
)
