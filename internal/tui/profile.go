package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reunite-ai/reunite/internal/api"
	"github.com/reunite-ai/reunite/internal/auth"
	"github.com/reunite-ai/reunite/internal/logger"
	"github.com/reunite-ai/reunite/internal/tui/theme"
)

// ProfileClient is the slice of the API client the profile screen needs.
type ProfileClient interface {
	Me(ctx context.Context) (api.User, error)
	UpdateMe(ctx context.Context, name, phone string) (api.User, error)
	Items(ctx context.Context, q api.ItemQuery) (api.ItemList, error)
}

// Profile shows the logged-in user's account, their reporting stats, and
// their own items. Name and phone are editable in place.
type Profile struct {
	client ProfileClient
	store  auth.TokenStore

	user   api.User
	loaded bool

	myItems     []api.Item
	list        *ScrollList
	itemsLoaded bool

	editing    bool
	nameInput  textinput.Model
	phoneInput textinput.Model
	editFocus  int
	busy       bool

	errText string
	width   int
	height  int
}

// NewProfile creates the profile screen.
func NewProfile(client ProfileClient, store auth.TokenStore) *Profile {
	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 80

	phone := textinput.New()
	phone.Placeholder = "phone (optional)"
	phone.CharLimit = 20

	return &Profile{
		client:     client,
		store:      store,
		list:       NewScrollList(60, 10),
		nameInput:  name,
		phoneInput: phone,
	}
}

// Init loads the profile and the user's own items.
func (p *Profile) Init() tea.Cmd {
	return tea.Batch(p.loadProfile(), p.loadMyItems())
}

// SetSize recomputes the list viewport from the new dimensions.
func (p *Profile) SetSize(width, height int) {
	p.width = width
	p.height = height

	listWidth := width - 4
	if listWidth < 20 {
		listWidth = 20
	}
	listHeight := height - 14
	if listHeight < 3 {
		listHeight = 3
	}
	p.list.SetWidth(listWidth)
	p.list.SetHeight(listHeight)
}

func (p *Profile) loadProfile() tea.Cmd {
	client := p.client
	return func() tea.Msg {
		user, err := client.Me(context.Background())
		if err != nil {
			return APIErrorMsg{Err: err}
		}
		return ProfileLoadedMsg{User: user}
	}
}

func (p *Profile) loadMyItems() tea.Cmd {
	client := p.client
	return func() tea.Msg {
		list, err := client.Items(context.Background(), api.ItemQuery{UserID: "me", PerPage: 50})
		if err != nil {
			return APIErrorMsg{Err: err}
		}
		return MyItemsLoadedMsg{List: list}
	}
}

// SelectedItemID returns the own-item ID under the cursor, or "".
func (p *Profile) SelectedItemID() string {
	idx := p.list.SelectedIdx()
	if idx < 0 || idx >= len(p.myItems) {
		return ""
	}
	return p.myItems[idx].ID
}

// Update handles profile messages.
func (p *Profile) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ProfileLoadedMsg:
		p.user = msg.User
		p.loaded = true
		p.busy = false
		p.errText = ""
		if p.editing {
			// An in-flight save finished; leave edit mode.
			p.editing = false
			p.nameInput.Blur()
			p.phoneInput.Blur()
			return func() tea.Msg {
				return ShowToastMsg{Text: "Profile updated", Variant: ToastSuccess}
			}
		}
		return nil

	case MyItemsLoadedMsg:
		p.myItems = msg.List.Items
		p.itemsLoaded = true
		cards := make([]ScrollItem, len(p.myItems))
		for i := range p.myItems {
			cards[i] = &itemCard{item: p.myItems[i]}
		}
		p.list.SetItems(cards)
		p.list.SetFocused(true)
		if len(cards) > 0 && p.list.SelectedIdx() < 0 {
			p.list.SetSelected(0)
		}
		return nil

	case APIErrorMsg:
		p.busy = false
		p.errText = msg.Err.Error()
		return nil

	case tea.KeyPressMsg:
		if p.editing {
			return p.updateEdit(msg)
		}
		return p.updateBrowse(msg)
	}
	return nil
}

func (p *Profile) updateBrowse(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return func() tea.Msg { return ShowHomeMsg{} }
	case "up", "k":
		p.list.SelectPrev()
		return nil
	case "down", "j":
		p.list.SelectNext()
		return nil
	case "enter":
		if id := p.SelectedItemID(); id != "" {
			return func() tea.Msg { return ShowDetailMsg{ID: id} }
		}
		return nil
	case "e":
		if !p.loaded || p.busy {
			return nil
		}
		p.editing = true
		p.editFocus = 0
		p.nameInput.SetValue(p.user.Name)
		p.phoneInput.SetValue(p.user.Phone)
		p.phoneInput.Blur()
		return p.nameInput.Focus()
	case "ctrl+l":
		return p.logout()
	case "r":
		return tea.Batch(p.loadProfile(), p.loadMyItems())
	}
	return p.list.Update(msg)
}

func (p *Profile) updateEdit(msg tea.KeyPressMsg) tea.Cmd {
	if p.busy {
		return nil
	}
	switch msg.String() {
	case "esc":
		p.editing = false
		p.nameInput.Blur()
		p.phoneInput.Blur()
		return nil
	case "tab", "shift+tab", "up", "down":
		if p.editFocus == 0 {
			p.editFocus = 1
			p.nameInput.Blur()
			return p.phoneInput.Focus()
		}
		p.editFocus = 0
		p.phoneInput.Blur()
		return p.nameInput.Focus()
	case "enter":
		return p.saveProfile()
	}

	var cmd tea.Cmd
	if p.editFocus == 0 {
		p.nameInput, cmd = p.nameInput.Update(msg)
	} else {
		p.phoneInput, cmd = p.phoneInput.Update(msg)
	}
	return cmd
}

func (p *Profile) saveProfile() tea.Cmd {
	name := strings.TrimSpace(p.nameInput.Value())
	phone := strings.TrimSpace(p.phoneInput.Value())
	if name == "" {
		p.errText = "Name cannot be empty."
		return nil
	}

	p.busy = true
	p.errText = ""
	client := p.client
	return func() tea.Msg {
		user, err := client.UpdateMe(context.Background(), name, phone)
		if err != nil {
			return APIErrorMsg{Err: err}
		}
		return ProfileLoadedMsg{User: user}
	}
}

func (p *Profile) logout() tea.Cmd {
	store := p.store
	return func() tea.Msg {
		if err := store.Clear(); err != nil {
			logger.Error("Failed to clear token: %v", err)
			return APIErrorMsg{Err: err}
		}
		return LoggedOutMsg{}
	}
}

// View renders the profile screen.
func (p *Profile) View() string {
	st := theme.Current().S()

	if !p.loaded {
		body := st.Hint.Render("Loading profile...")
		if p.errText != "" {
			body = st.ErrorText.Render("✗ " + p.errText)
		}
		return lipgloss.NewStyle().Padding(1, 2).Render(body)
	}

	var sections []string
	sections = append(sections, p.renderAccount(), "")
	sections = append(sections, p.renderStats(), "")
	sections = append(sections, st.SectionTitle.Render("My reports"))

	switch {
	case !p.itemsLoaded:
		sections = append(sections, st.Hint.Render("Loading..."))
	case len(p.myItems) == 0:
		sections = append(sections, st.Hint.Render("No reports yet. Press esc, then n to create one."))
	default:
		sections = append(sections, p.list.View())
	}

	if p.errText != "" {
		sections = append(sections, st.ErrorText.Render("✗ "+p.errText))
	}
	if p.busy {
		sections = append(sections, st.Hint.Render("Saving..."))
	}

	sections = append(sections, "", p.renderFooter())

	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (p *Profile) renderAccount() string {
	t := theme.Current()
	st := t.S()

	if p.editing {
		inputBox := func(m textinput.Model, focused bool) string {
			frame := styleInputFrame
			if focused {
				frame = styleInputFrameFocused
			}
			return frame.Width(40).Render(m.View())
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			st.HeaderTitle.Render("Edit profile"),
			st.StatLabel.Render("Name"),
			inputBox(p.nameInput, p.editFocus == 0),
			st.StatLabel.Render("Phone"),
			inputBox(p.phoneInput, p.editFocus == 1),
		)
	}

	name := p.user.Name
	if p.user.Verified {
		name += " ✓"
	}
	lines := []string{
		st.HeaderTitle.Render(name) + "  " + st.Hint.Render(p.user.Email),
	}
	if p.user.Phone != "" {
		lines = append(lines, st.StatLabel.Render("Phone   ")+p.user.Phone)
	}
	if p.user.JoinDate != "" {
		lines = append(lines, st.StatLabel.Render("Joined  ")+p.user.JoinDate)
	}
	return strings.Join(lines, "\n")
}

func (p *Profile) renderStats() string {
	st := theme.Current().S()

	stat := func(value int, label string) string {
		return st.StatValue.Render(fmt.Sprintf("%d", value)) + " " + st.StatLabel.Render(label)
	}
	s := p.user.Stats
	return stat(s.TotalItems, "reports") + "   " +
		stat(s.LostItems, "lost") + "   " +
		stat(s.FoundItems, "found") + "   " +
		stat(s.SuccessfulMatches, "matches") + "   " +
		stat(s.HelpedOthers, "helped")
}

func (p *Profile) renderFooter() string {
	if p.editing {
		return RenderHintBar(KeyTab, "next field", KeyEnter, "save", KeyEsc, "cancel")
	}
	return RenderHintBar(
		KeyUpDownJK, "select",
		KeyEnter, "open",
		"e", "edit",
		KeyR, "refresh",
		"ctrl+l", "log out",
		KeyEsc, "back",
	)
}
