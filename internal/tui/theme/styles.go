package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle  lipgloss.Style
	SectionTitle lipgloss.Style
	Hint         lipgloss.Style
	ErrorText    lipgloss.Style

	StatValue lipgloss.Style
	StatLabel lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	BadgeLost     lipgloss.Style
	BadgeFound    lipgloss.Style
	BadgeResolved lipgloss.Style
}
