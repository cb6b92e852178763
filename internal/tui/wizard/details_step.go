package wizard

import (
	"os"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/editor"

	"github.com/reunite-ai/reunite/internal/draft"
)

// DetailsStep collects the item title and description.
type DetailsStep struct {
	st       *draft.State
	title    textinput.Model
	desc     textarea.Model
	focusIdx int // 0 = title, 1 = description, -1 = blurred
	tmpFile  string
	width    int
	height   int
}

// NewDetailsStep creates the details step, restoring prior input.
func NewDetailsStep(st *draft.State) *DetailsStep {
	ti := textinput.New()
	ti.Placeholder = "e.g., 'Black leather wallet'"
	ti.CharLimit = 120
	ti.SetValue(st.Draft.Title)
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Distinguishing marks, contents, where it was last seen..."
	ta.SetValue(st.Draft.Description)
	ta.SetHeight(6)

	return &DetailsStep{
		st:    st,
		title: ti,
		desc:  ta,
	}
}

func (s *DetailsStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *DetailsStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab":
			if s.focusIdx == 0 {
				s.focusIdx = 1
				s.title.Blur()
				return s.desc.Focus()
			}
			return func() tea.Msg { return TabExitForwardMsg{} }
		case "shift+tab":
			if s.focusIdx == 1 {
				s.focusIdx = 0
				s.desc.Blur()
				return s.title.Focus()
			}
			return func() tea.Msg { return TabExitBackwardMsg{} }
		case "ctrl+e":
			if s.focusIdx == 1 {
				return s.openEditor()
			}
		}

	case DescriptionEditedMsg:
		s.desc.SetValue(msg.Content)
		s.st.SetDescription(msg.Content)
		if s.tmpFile != "" {
			_ = os.Remove(s.tmpFile)
			s.tmpFile = ""
		}
		return nil
	}

	var cmd tea.Cmd
	switch s.focusIdx {
	case 0:
		s.title, cmd = s.title.Update(msg)
		s.st.SetTitle(s.title.Value())
	case 1:
		s.desc, cmd = s.desc.Update(msg)
		s.st.SetDescription(s.desc.Value())
	}
	return cmd
}

// openEditor launches $EDITOR with the current description.
func (s *DetailsStep) openEditor() tea.Cmd {
	tmpfile, err := os.CreateTemp("", "reunite_description_*.md")
	if err != nil {
		return nil
	}

	if _, err := tmpfile.WriteString(s.desc.Value()); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	_ = tmpfile.Close()
	s.tmpFile = tmpfile.Name()

	cmd, err := editor.Command("reunite", tmpfile.Name())
	if err != nil {
		_ = os.Remove(tmpfile.Name())
		return nil
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return nil
		}
		content, err := os.ReadFile(tmpfile.Name())
		if err != nil {
			return nil
		}
		return DescriptionEditedMsg{Content: string(content)}
	})
}

func (s *DetailsStep) View() string {
	titleBox := styleInputBox(s.focusIdx == 0).Width(56).Render(s.title.View())
	descBox := styleInputBox(s.focusIdx == 1).Width(56).Render(s.desc.View())

	hintPairs := []string{"tab", "next field"}
	if s.focusIdx == 1 && os.Getenv("EDITOR") != "" {
		hintPairs = append(hintPairs, "ctrl+e", "edit in $EDITOR")
	}
	hint := renderHintBar(hintPairs...)

	return lipgloss.JoinVertical(lipgloss.Left,
		styleFieldLabel().Render("Title"),
		titleBox,
		"",
		styleFieldLabel().Render("Description"),
		descBox,
		"",
		hint,
	)
}

func (s *DetailsStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *DetailsStep) Focus() {
	s.focusIdx = 0
	s.title.Focus()
}

func (s *DetailsStep) Blur() {
	s.focusIdx = -1
	s.title.Blur()
	s.desc.Blur()
}
