package wizard

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reunite-ai/reunite/internal/draft"
)

// CategoryStep picks a category and collects optional tags.
type CategoryStep struct {
	st       *draft.State
	cursor   int
	tagInput textinput.Model
	focusIdx int // 0 = category list, 1 = tag input, -1 = blurred
	note     string
	width    int
	height   int
}

// NewCategoryStep creates the category step, restoring a prior choice.
func NewCategoryStep(st *draft.State) *CategoryStep {
	ti := textinput.New()
	ti.Placeholder = "add a tag and press enter"
	ti.CharLimit = 40

	s := &CategoryStep{
		st:       st,
		tagInput: ti,
	}
	for i, c := range draft.Categories {
		if c == st.Draft.Category {
			s.cursor = i
		}
	}
	return s
}

func (s *CategoryStep) Init() tea.Cmd { return nil }

func (s *CategoryStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyPressMsg)
	if !isKey {
		if s.focusIdx == 1 {
			var cmd tea.Cmd
			s.tagInput, cmd = s.tagInput.Update(msg)
			return cmd
		}
		return nil
	}

	switch keyMsg.String() {
	case "tab":
		if s.focusIdx == 0 {
			s.focusIdx = 1
			return s.tagInput.Focus()
		}
		s.tagInput.Blur()
		return func() tea.Msg { return TabExitForwardMsg{} }
	case "shift+tab":
		if s.focusIdx == 1 {
			s.focusIdx = 0
			s.tagInput.Blur()
			return nil
		}
		return func() tea.Msg { return TabExitBackwardMsg{} }
	}

	if s.focusIdx == 0 {
		switch keyMsg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(draft.Categories)-1 {
				s.cursor++
			}
		case "enter", " ":
			s.st.SetCategory(draft.Categories[s.cursor])
		}
		return nil
	}

	// Tag input focused
	switch keyMsg.String() {
	case "enter":
		tag := strings.TrimSpace(s.tagInput.Value())
		if tag == "" {
			return nil
		}
		if s.st.AddTag(tag) {
			s.tagInput.SetValue("")
			s.note = ""
		} else {
			s.note = "tag already added"
		}
		return nil
	case "backspace":
		// Backspace on an empty input removes the most recent tag
		if s.tagInput.Value() == "" && len(s.st.Draft.Tags) > 0 {
			s.st.RemoveTag(s.st.Draft.Tags[len(s.st.Draft.Tags)-1])
			return nil
		}
	}

	var cmd tea.Cmd
	s.tagInput, cmd = s.tagInput.Update(msg)
	return cmd
}

func (s *CategoryStep) View() string {
	var b strings.Builder

	b.WriteString(styleFieldLabel().Render("Category"))
	b.WriteString("\n")
	for i, c := range draft.Categories {
		marker := "  "
		if c == s.st.Draft.Category {
			marker = "✓ "
		}
		line := marker + c
		if i == s.cursor && s.focusIdx == 0 {
			line = styleSelectedRow().Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleFieldLabel().Render("Tags"))
	b.WriteString("\n")
	if len(s.st.Draft.Tags) > 0 {
		var chips []string
		for _, tag := range s.st.Draft.Tags {
			chips = append(chips, styleTagChip().Render(tag))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chips...))
		b.WriteString("\n")
	}
	b.WriteString(styleInputBox(s.focusIdx == 1).Width(44).Render(s.tagInput.View()))
	b.WriteString("\n")

	if s.note != "" {
		b.WriteString(styleNoteText().Render(s.note))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.focusIdx == 1 {
		b.WriteString(renderHintBar("enter", "add tag", "backspace", "remove last", "tab", "buttons"))
	} else {
		b.WriteString(renderHintBar("↑↓", "choose", "enter", "select", "tab", "tags"))
	}

	return b.String()
}

func (s *CategoryStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *CategoryStep) Focus() { s.focusIdx = 0 }

func (s *CategoryStep) Blur() {
	s.focusIdx = -1
	s.tagInput.Blur()
}
