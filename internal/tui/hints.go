package tui

import (
	"github.com/reunite-ai/reunite/internal/tui/theme"
)

// Standard key representations for consistent hints across the app.
const (
	KeyUpDownJK = "↑↓/jk"
	KeyEnter    = "enter"
	KeyEsc      = "esc"
	KeyTab      = "tab"
	KeyCtrlC    = "ctrl+c"
	KeySlash    = "/"
	KeyN        = "n"
	KeyP        = "p"
	KeyR        = "r"
	KeyF        = "f"
)

// RenderHint renders a single key-description pair.
func RenderHint(key, desc string) string {
	s := theme.Current().S()
	return s.HintKey.Render(key) + " " + s.HintDesc.Render(desc)
}

// RenderHintBar renders a hint bar with multiple key-description pairs.
// Pairs are separated by " . " (bullet point separator).
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	var result string

	for i := 0; i < len(pairs); i += 2 {
		key := pairs[i]
		desc := pairs[i+1]

		if i > 0 {
			result += " " + s.HintSeparator.Render(".") + " "
		}

		result += s.HintKey.Render(key) + " " + s.HintDesc.Render(desc)
	}

	return result
}
