package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reunite-ai/reunite/internal/api"
	"github.com/reunite-ai/reunite/internal/tui/theme"
)

const feedPageSize = 20

// ItemReader is the slice of the API client the feed needs.
type ItemReader interface {
	Stats(ctx context.Context) (api.Stats, error)
	Items(ctx context.Context, q api.ItemQuery) (api.ItemList, error)
}

// Home is the main feed: platform stats, a type filter, search, and the
// scrolling list of recent reports.
type Home struct {
	client ItemReader

	stats       api.Stats
	statsLoaded bool

	items   []api.Item
	list    *ScrollList
	page    int
	hasNext bool
	loading bool

	filter    string // "", "lost", "found"
	search    textinput.Model
	searching bool

	errText string
	width   int
	height  int
}

// NewHome creates the feed screen.
func NewHome(client ItemReader) *Home {
	search := textinput.New()
	search.Placeholder = "search items..."
	search.CharLimit = 120

	return &Home{
		client: client,
		list:   NewScrollList(60, 20),
		search: search,
	}
}

// Init loads the stats and the first feed page.
func (h *Home) Init() tea.Cmd {
	return tea.Batch(h.loadStats(), h.loadItems(1, false))
}

// SetSize recomputes the list viewport from the new dimensions.
func (h *Home) SetSize(width, height int) {
	h.width = width
	h.height = height

	listWidth := width - 4
	if listWidth < 20 {
		listWidth = 20
	}
	// Stats row, filter/search row, hint bar, and panel chrome
	listHeight := height - 9
	if listHeight < 4 {
		listHeight = 4
	}
	h.list.SetWidth(listWidth)
	h.list.SetHeight(listHeight)
}

func (h *Home) loadStats() tea.Cmd {
	client := h.client
	return func() tea.Msg {
		stats, err := client.Stats(context.Background())
		if err != nil {
			return APIErrorMsg{Err: err}
		}
		return StatsLoadedMsg{Stats: stats}
	}
}

func (h *Home) loadItems(page int, appendPage bool) tea.Cmd {
	h.loading = true
	client := h.client
	q := api.ItemQuery{
		Type:    h.filter,
		Search:  strings.TrimSpace(h.search.Value()),
		Page:    page,
		PerPage: feedPageSize,
	}
	return func() tea.Msg {
		list, err := client.Items(context.Background(), q)
		if err != nil {
			return APIErrorMsg{Err: err}
		}
		return ItemsLoadedMsg{List: list, Append: appendPage}
	}
}

// Refresh reloads the stats and the first page with current filters.
func (h *Home) Refresh() tea.Cmd {
	return tea.Batch(h.loadStats(), h.loadItems(1, false))
}

// SelectedItemID returns the ID under the cursor, or "".
func (h *Home) SelectedItemID() string {
	idx := h.list.SelectedIdx()
	if idx < 0 || idx >= len(h.items) {
		return ""
	}
	return h.items[idx].ID
}

// Update handles feed messages. Navigation is emitted as messages for the
// app to route.
func (h *Home) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case StatsLoadedMsg:
		h.stats = msg.Stats
		h.statsLoaded = true
		return nil

	case ItemsLoadedMsg:
		h.loading = false
		h.errText = ""
		h.page = msg.List.Pagination.Page
		h.hasNext = msg.List.Pagination.HasNext
		if msg.Append {
			h.items = append(h.items, msg.List.Items...)
		} else {
			h.items = msg.List.Items
			h.list.GotoTop()
		}
		h.rebuildList(!msg.Append)
		return nil

	case APIErrorMsg:
		h.loading = false
		h.errText = msg.Err.Error()
		return nil

	case tea.KeyPressMsg:
		if h.searching {
			return h.updateSearch(msg)
		}
		return h.updateList(msg)
	}
	return nil
}

func (h *Home) updateSearch(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		h.searching = false
		h.search.Blur()
		return nil
	case "enter":
		h.searching = false
		h.search.Blur()
		return h.loadItems(1, false)
	}
	var cmd tea.Cmd
	h.search, cmd = h.search.Update(msg)
	return cmd
}

func (h *Home) updateList(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		h.list.SelectPrev()
		return nil
	case "down", "j":
		atEnd := h.list.SelectedIdx() == h.list.Len()-1
		h.list.SelectNext()
		// Fetch the next page when the cursor hits the bottom
		if atEnd && h.hasNext && !h.loading {
			return h.loadItems(h.page+1, true)
		}
		return nil
	case "enter":
		if id := h.SelectedItemID(); id != "" {
			return func() tea.Msg { return ShowDetailMsg{ID: id} }
		}
		return nil
	case "/":
		h.searching = true
		return h.search.Focus()
	case "f":
		switch h.filter {
		case "":
			h.filter = "lost"
		case "lost":
			h.filter = "found"
		default:
			h.filter = ""
		}
		return h.loadItems(1, false)
	case "r":
		return h.Refresh()
	case "n":
		return func() tea.Msg { return ShowWizardMsg{} }
	case "p":
		return func() tea.Msg { return ShowProfileMsg{} }
	}
	return h.list.Update(msg)
}

func (h *Home) rebuildList(resetSelection bool) {
	cards := make([]ScrollItem, len(h.items))
	for i := range h.items {
		cards[i] = &itemCard{item: h.items[i]}
	}
	selected := h.list.SelectedIdx()
	h.list.SetItems(cards)
	h.list.SetFocused(true)
	if resetSelection || selected < 0 {
		if len(cards) > 0 {
			h.list.SetSelected(0)
		} else {
			h.list.SetSelected(-1)
		}
	} else {
		h.list.SetSelected(selected)
	}
}

// View renders the feed screen.
func (h *Home) View() string {
	st := theme.Current().S()

	var sections []string
	sections = append(sections, h.renderStats(), "")
	sections = append(sections, h.renderFilterRow())

	if h.errText != "" {
		sections = append(sections, st.ErrorText.Render("✗ "+h.errText))
	}

	switch {
	case h.loading && len(h.items) == 0:
		sections = append(sections, st.Hint.Render("Loading items..."))
	case len(h.items) == 0:
		sections = append(sections, st.Hint.Render("No items match. Press r to refresh or n to report one."))
	default:
		sections = append(sections, h.list.View())
	}

	sections = append(sections, "", RenderHintBar(
		KeyUpDownJK, "select",
		KeyEnter, "open",
		KeyF, "filter",
		KeySlash, "search",
		KeyN, "report",
		KeyP, "profile",
		KeyR, "refresh",
	))

	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderStats draws the three platform counters side by side.
func (h *Home) renderStats() string {
	st := theme.Current().S()

	if !h.statsLoaded {
		return st.HeaderTitle.Render("Reunite") + "  " + st.Hint.Render("loading stats...")
	}

	stat := func(value int, label string) string {
		return st.StatValue.Render(fmt.Sprintf("%d", value)) + " " + st.StatLabel.Render(label)
	}

	return st.HeaderTitle.Render("Reunite") + "   " +
		stat(h.stats.TotalItems, "items") + "   " +
		stat(h.stats.ItemsStillLost, "still lost") + "   " +
		stat(h.stats.SuccessfulReunions, "reunions")
}

func (h *Home) renderFilterRow() string {
	t := theme.Current()
	st := t.S()

	filterLabel := "all"
	if h.filter != "" {
		filterLabel = h.filter
	}
	filter := st.StatLabel.Render("filter: ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)).Bold(true).Render(filterLabel)

	frame := styleInputFrame
	if h.searching {
		frame = styleInputFrameFocused
	}
	searchBox := frame.Width(34).Render(h.search.View())

	row := lipgloss.JoinHorizontal(lipgloss.Center, filter, "  ", searchBox)
	if h.searching {
		row = lipgloss.JoinHorizontal(lipgloss.Center, row, "  ", RenderHint(KeyEsc, "cancel"))
	}
	return row
}

// itemCard renders one feed row.
type itemCard struct {
	item     api.Item
	rendered string
	height   int
}

func (c *itemCard) ID() string { return c.item.ID }

func (c *itemCard) Height() int { return c.height }

func (c *itemCard) Render(width int) string {
	t := theme.Current()
	st := t.S()

	badge := st.BadgeLost.Render("LOST")
	if c.item.Type == "found" {
		badge = st.BadgeFound.Render("FOUND")
	}
	if c.item.Status == "resolved" {
		badge = st.BadgeResolved.Render("RESOLVED")
	}

	title := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBright)).Bold(true).
		Render(truncate(c.item.Title, width-18))

	meta := st.Hint.Render(truncate(metaLine(c.item), width-4))

	c.rendered = badge + " " + title + "\n  " + meta
	c.height = 2
	return c.rendered
}

func metaLine(item api.Item) string {
	parts := []string{item.Category}
	if item.Location != "" {
		parts = append(parts, item.Location)
	}
	if item.DateOccurred != "" {
		parts = append(parts, item.DateOccurred)
	}
	if len(item.Images) > 0 {
		parts = append(parts, fmt.Sprintf("%d photo(s)", len(item.Images)))
	}
	return strings.Join(parts, " · ")
}

func truncate(s string, max int) string {
	if max < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
