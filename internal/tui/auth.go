package tui

import (
	"context"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reunite-ai/reunite/internal/auth"
	"github.com/reunite-ai/reunite/internal/logger"
	"github.com/reunite-ai/reunite/internal/tui/theme"
)

const (
	authModeLogin = iota
	authModeSignup
)

// authResultMsg carries the outcome of a login or signup request. The token
// has already been persisted when err is nil.
type authResultMsg struct {
	err error
}

// AuthScreen is the login/signup form shown when no credential is stored.
type AuthScreen struct {
	client   AuthClient
	store    auth.TokenStore
	mode     int
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focusIdx int
	busy     bool
	errText  string
	width    int
	height   int
}

// AuthClient is the slice of the API client the auth screen needs.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (string, error)
	Signup(ctx context.Context, name, email, password string) (string, error)
}

// NewAuthScreen creates the auth screen in login mode.
func NewAuthScreen(client AuthClient, store auth.TokenStore) *AuthScreen {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 80

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword

	return &AuthScreen{
		client:   client,
		store:    store,
		name:     name,
		email:    email,
		password: password,
	}
}

// Init starts the cursor blink.
func (s *AuthScreen) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize stores the viewport dimensions.
func (s *AuthScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// fields returns the focusable inputs for the current mode, in tab order.
func (s *AuthScreen) fields() []*textinput.Model {
	if s.mode == authModeSignup {
		return []*textinput.Model{&s.name, &s.email, &s.password}
	}
	return []*textinput.Model{&s.email, &s.password}
}

func (s *AuthScreen) focusField(idx int) tea.Cmd {
	fields := s.fields()
	if idx < 0 {
		idx = len(fields) - 1
	}
	if idx >= len(fields) {
		idx = 0
	}
	s.focusIdx = idx
	var cmd tea.Cmd
	for i, f := range fields {
		if i == idx {
			cmd = f.Focus()
		} else {
			f.Blur()
		}
	}
	return cmd
}

// Update handles key input and request results.
func (s *AuthScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case authResultMsg:
		s.busy = false
		if msg.err != nil {
			s.errText = msg.err.Error()
			return nil
		}
		return func() tea.Msg { return LoggedInMsg{} }

	case tea.KeyPressMsg:
		if s.busy {
			return nil
		}
		switch msg.String() {
		case "tab", "down":
			return s.focusField(s.focusIdx + 1)
		case "shift+tab", "up":
			return s.focusField(s.focusIdx - 1)
		case "ctrl+t":
			if s.mode == authModeLogin {
				s.mode = authModeSignup
			} else {
				s.mode = authModeLogin
			}
			s.errText = ""
			return s.focusField(0)
		case "enter":
			if s.focusIdx < len(s.fields())-1 {
				return s.focusField(s.focusIdx + 1)
			}
			return s.submit()
		}
	}

	// Forward everything else to the focused input
	fields := s.fields()
	var cmd tea.Cmd
	*fields[s.focusIdx], cmd = fields[s.focusIdx].Update(msg)
	return cmd
}

// submit validates the form and fires the credential request.
func (s *AuthScreen) submit() tea.Cmd {
	email := s.email.Value()
	password := s.password.Value()
	name := s.name.Value()

	if email == "" || password == "" {
		s.errText = "Email and password are required."
		return nil
	}
	if s.mode == authModeSignup && name == "" {
		s.errText = "Name is required."
		return nil
	}

	s.busy = true
	s.errText = ""

	mode := s.mode
	client := s.client
	store := s.store
	return func() tea.Msg {
		ctx := context.Background()
		var token string
		var err error
		if mode == authModeSignup {
			token, err = client.Signup(ctx, name, email, password)
		} else {
			token, err = client.Login(ctx, email, password)
		}
		if err != nil {
			return authResultMsg{err: err}
		}
		if err := store.Save(token); err != nil {
			logger.Error("Failed to persist token: %v", err)
			return authResultMsg{err: err}
		}
		return authResultMsg{}
	}
}

// View renders the centered auth form.
func (s *AuthScreen) View() string {
	t := theme.Current()
	st := t.S()

	title := "Welcome back"
	action := "Log in"
	other := "sign up"
	if s.mode == authModeSignup {
		title = "Create an account"
		action = "Sign up"
		other = "log in"
	}

	inputBox := func(m textinput.Model, focused bool) string {
		border := t.BorderDefault
		if focused {
			border = t.BorderFocus
		}
		return lipgloss.NewStyle().
			Padding(0, 1).
			Width(44).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Render(m.View())
	}

	label := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)).Bold(true)

	sections := []string{st.HeaderTitle.Render(title), ""}
	fieldIdx := 0
	if s.mode == authModeSignup {
		sections = append(sections, label.Render("Name"), inputBox(s.name, s.focusIdx == fieldIdx))
		fieldIdx++
	}
	sections = append(sections,
		label.Render("Email"), inputBox(s.email, s.focusIdx == fieldIdx),
		label.Render("Password"), inputBox(s.password, s.focusIdx == fieldIdx+1),
		"",
	)

	if s.errText != "" {
		sections = append(sections, st.ErrorText.Render("✗ "+s.errText), "")
	}
	if s.busy {
		sections = append(sections, st.Hint.Render(action+"..."), "")
	}

	sections = append(sections, RenderHintBar(
		KeyEnter, action,
		"ctrl+t", "switch to "+other,
		KeyCtrlC, "quit",
	))

	form := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderDefault)).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))

	if s.width == 0 || s.height == 0 {
		return form
	}
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, form)
}
