package wizard

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reunite-ai/reunite/internal/draft"
	"github.com/reunite-ai/reunite/internal/tui/theme"
)

type typeOption struct {
	value draft.ItemType
	label string
	desc  string
}

// TypeStep asks whether the item was lost or found.
type TypeStep struct {
	st      *draft.State
	options []typeOption
	cursor  int
	focused bool
	width   int
	height  int
}

// NewTypeStep creates the item type step.
func NewTypeStep(st *draft.State) *TypeStep {
	s := &TypeStep{
		st: st,
		options: []typeOption{
			{value: draft.TypeLost, label: "I lost something", desc: "Report an item you are looking for"},
			{value: draft.TypeFound, label: "I found something", desc: "Report an item you picked up"},
		},
		focused: true,
	}
	// Restore cursor from a previously made choice
	for i, opt := range s.options {
		if opt.value == st.Draft.Type {
			s.cursor = i
		}
	}
	return s
}

func (s *TypeStep) Init() tea.Cmd { return nil }

func (s *TypeStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !s.focused {
		return nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.options)-1 {
			s.cursor++
		}
	case "enter", " ":
		s.st.SetType(s.options[s.cursor].value)
	case "tab":
		return func() tea.Msg { return TabExitForwardMsg{} }
	case "shift+tab":
		return func() tea.Msg { return TabExitBackwardMsg{} }
	}
	return nil
}

func (s *TypeStep) View() string {
	t := theme.Current()

	var rows []string
	for i, opt := range s.options {
		marker := "( )"
		if s.st.Draft.Type == opt.value {
			marker = "(•)"
		}

		accent := t.Lost
		if opt.value == draft.TypeFound {
			accent = t.Found
		}

		label := lipgloss.NewStyle().
			Foreground(lipgloss.Color(accent)).
			Bold(true).
			Render(opt.label)
		desc := styleNoteText().Render(opt.desc)

		row := marker + " " + label + "\n    " + desc
		boxStyle := lipgloss.NewStyle().
			Width(50).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderDefault))
		if i == s.cursor && s.focused {
			boxStyle = boxStyle.BorderForeground(lipgloss.Color(t.BorderFocus))
		}
		rows = append(rows, boxStyle.Render(row))
	}

	hint := renderHintBar("↑↓", "choose", "enter", "select", "tab", "buttons")

	return lipgloss.JoinVertical(lipgloss.Left,
		styleFieldLabel().Render("What happened?"),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		hint,
	)
}

func (s *TypeStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *TypeStep) Focus() { s.focused = true }
func (s *TypeStep) Blur()  { s.focused = false }
