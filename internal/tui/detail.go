package tui

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reunite-ai/reunite/internal/api"
	"github.com/reunite-ai/reunite/internal/logger"
	"github.com/reunite-ai/reunite/internal/mapview"
	"github.com/reunite-ai/reunite/internal/tui/theme"
)

// DetailClient is the slice of the API client the detail view needs.
type DetailClient interface {
	Item(ctx context.Context, id string) (api.Item, bool, error)
	Matches(ctx context.Context, id string) ([]api.Match, error)
	ResolveItem(ctx context.Context, id string) error
	DeleteItem(ctx context.Context, id string) error
	ImageURL(path string) string
}

// confirmAction is a pending owner action awaiting y/n.
type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmResolve
	confirmDelete
)

// Detail shows one item: description, photos, owner, the AI match
// candidates, and a read-only map of its coordinates.
type Detail struct {
	client DetailClient
	id     string

	item    api.Item
	loaded  bool
	isOwner bool

	matches       []api.Match
	matchesLoaded bool

	picker  *mapview.Picker
	confirm confirmAction
	busy    bool
	errText string

	scroll int
	width  int
	height int
}

// NewDetail creates the detail view for the given item ID.
func NewDetail(client DetailClient, id string, engine mapview.Engine) *Detail {
	return &Detail{
		client: client,
		id:     id,
		picker: mapview.New(engine),
	}
}

// Init fetches the item and its match candidates.
func (d *Detail) Init() tea.Cmd {
	return tea.Batch(d.loadItem(), d.loadMatches())
}

// Close releases the map engine instance.
func (d *Detail) Close() {
	d.picker.Close()
}

// SetSize stores the viewport dimensions.
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

func (d *Detail) loadItem() tea.Cmd {
	client := d.client
	id := d.id
	return func() tea.Msg {
		item, isOwner, err := client.Item(context.Background(), id)
		if err != nil {
			return APIErrorMsg{Err: err}
		}
		return ItemLoadedMsg{Item: item, IsOwner: isOwner}
	}
}

func (d *Detail) loadMatches() tea.Cmd {
	client := d.client
	id := d.id
	return func() tea.Msg {
		matches, err := client.Matches(context.Background(), id)
		if err != nil {
			// Matches are supplementary; the item view stays useful without
			// them, so the error only logs.
			logger.Warn("Match lookup failed for %s: %v", id, err)
			return MatchesLoadedMsg{ItemID: id}
		}
		return MatchesLoadedMsg{ItemID: id, Matches: matches}
	}
}

// Update handles detail messages.
func (d *Detail) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ItemLoadedMsg:
		d.item = msg.Item
		d.isOwner = msg.IsOwner
		d.loaded = true
		d.errText = ""
		return d.configureMap()

	case MatchesLoadedMsg:
		if msg.ItemID != d.id {
			return nil
		}
		d.matches = msg.Matches
		d.matchesLoaded = true
		return nil

	case ItemResolvedMsg:
		d.busy = false
		d.item.Status = "resolved"
		return func() tea.Msg {
			return ShowToastMsg{Text: "Item marked as resolved", Variant: ToastSuccess}
		}

	case APIErrorMsg:
		d.busy = false
		d.errText = msg.Err.Error()
		return nil

	case tea.KeyPressMsg:
		return d.handleKey(msg)
	}
	return nil
}

func (d *Detail) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if d.confirm != confirmNone {
		switch msg.String() {
		case "y", "Y", "enter":
			action := d.confirm
			d.confirm = confirmNone
			if action == confirmDelete {
				return d.deleteItem()
			}
			return d.resolveItem()
		default:
			d.confirm = confirmNone
			return nil
		}
	}

	switch msg.String() {
	case "up", "k":
		if d.scroll > 0 {
			d.scroll--
		}
	case "down", "j":
		d.scroll++
	case "esc":
		return func() tea.Msg { return ShowHomeMsg{} }
	case "r":
		if d.isOwner && d.item.Status != "resolved" && !d.busy {
			d.confirm = confirmResolve
		}
	case "d":
		if d.isOwner && !d.busy {
			d.confirm = confirmDelete
		}
	}
	return nil
}

func (d *Detail) resolveItem() tea.Cmd {
	d.busy = true
	client := d.client
	id := d.id
	return func() tea.Msg {
		if err := client.ResolveItem(context.Background(), id); err != nil {
			return APIErrorMsg{Err: err}
		}
		return ItemResolvedMsg{ID: id}
	}
}

func (d *Detail) deleteItem() tea.Cmd {
	d.busy = true
	client := d.client
	id := d.id
	return func() tea.Msg {
		if err := client.DeleteItem(context.Background(), id); err != nil {
			return APIErrorMsg{Err: err}
		}
		return ItemDeletedMsg{ID: id}
	}
}

// configureMap shows the item's coordinates read-only. Items without
// coordinates get the named-location fallback.
func (d *Detail) configureMap() tea.Cmd {
	err := d.picker.Configure(mapview.Options{
		Location:  d.item.Location,
		Latitude:  d.item.Latitude,
		Longitude: d.item.Longitude,
	})
	if err != nil {
		return func() tea.Msg { return APIErrorMsg{Err: err} }
	}
	return nil
}

// View renders the detail screen.
func (d *Detail) View() string {
	st := theme.Current().S()

	if !d.loaded {
		body := st.Hint.Render("Loading item...")
		if d.errText != "" {
			body = st.ErrorText.Render("✗ " + d.errText)
		}
		return lipgloss.NewStyle().Padding(1, 2).Render(body)
	}

	contentWidth := d.width - 6
	if contentWidth < 30 {
		contentWidth = 30
	}
	if contentWidth > 100 {
		contentWidth = 100
	}

	var sections []string
	sections = append(sections, d.renderHeader(), "")
	sections = append(sections, renderMarkdown(d.item.Description, contentWidth))
	sections = append(sections, d.renderMeta(contentWidth), "")
	sections = append(sections, d.picker.View(contentWidth, 10), "")
	sections = append(sections, d.renderMatches(contentWidth))

	if d.errText != "" {
		sections = append(sections, st.ErrorText.Render("✗ "+d.errText))
	}
	if d.busy {
		sections = append(sections, st.Hint.Render("Working..."))
	}

	sections = append(sections, "", d.renderFooter())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	content = d.applyScroll(content)

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// applyScroll drops scrolled-past lines, clamping at the end of content.
func (d *Detail) applyScroll(content string) string {
	if d.scroll == 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	visible := d.height - 2
	if visible < 1 {
		visible = 1
	}
	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if d.scroll > maxScroll {
		d.scroll = maxScroll
	}
	return strings.Join(lines[d.scroll:], "\n")
}

func (d *Detail) renderHeader() string {
	t := theme.Current()
	st := t.S()

	badge := st.BadgeLost.Render("LOST")
	if d.item.Type == "found" {
		badge = st.BadgeFound.Render("FOUND")
	}
	if d.item.Status == "resolved" {
		badge = st.BadgeResolved.Render("RESOLVED")
	}

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBright)).
		Bold(true).
		Render(d.item.Title)

	views := ""
	if d.item.Views > 0 {
		views = "  " + st.Hint.Render(fmt.Sprintf("%d views", d.item.Views))
	}

	return badge + " " + title + views
}

func (d *Detail) renderMeta(width int) string {
	st := theme.Current().S()

	var lines []string
	lines = append(lines, st.StatLabel.Render("Category  ")+d.item.Category)
	if d.item.Location != "" {
		lines = append(lines, st.StatLabel.Render("Location  ")+d.item.Location)
	}
	if d.item.DateOccurred != "" {
		lines = append(lines, st.StatLabel.Render("When      ")+d.item.DateOccurred)
	}
	if len(d.item.Tags) > 0 {
		lines = append(lines, st.StatLabel.Render("Tags      ")+strings.Join(d.item.Tags, ", "))
	}
	if len(d.item.Images) > 0 {
		var urls []string
		for _, img := range d.item.Images {
			urls = append(urls, d.client.ImageURL(img))
		}
		lines = append(lines, st.StatLabel.Render("Photos    ")+wrapText(strings.Join(urls, "\n"), width-10))
	}
	if d.item.User != nil {
		owner := d.item.User.Name
		if d.item.User.Verified {
			owner += " ✓"
		}
		if d.item.User.Email != "" {
			owner += " <" + d.item.User.Email + ">"
		}
		lines = append(lines, st.StatLabel.Render("Reporter  ")+owner)
	}
	return strings.Join(lines, "\n")
}

// renderMatches lists AI candidates with their blended and component scores.
func (d *Detail) renderMatches(width int) string {
	st := theme.Current().S()

	if !d.matchesLoaded {
		return st.Hint.Render("Looking for matches...")
	}
	if len(d.matches) == 0 {
		return st.Hint.Render("No match candidates yet.")
	}

	var lines []string
	lines = append(lines, st.SectionTitle.Render(fmt.Sprintf("Possible matches (%d)", len(d.matches))))
	for _, m := range d.matches {
		lines = append(lines,
			fmt.Sprintf("%s %s", renderScoreBar(m.Score), truncate(m.Title, width-16)),
			"  "+st.Hint.Render(fmt.Sprintf(
				"image %.0f%% · text %.0f%% · location %.0f%% · %s",
				m.ImageScore*100, m.TextScore*100, m.LocationScore*100, m.User)),
		)
	}
	return strings.Join(lines, "\n")
}

// renderScoreBar draws a ten-cell bar for a 0..1 score.
func renderScoreBar(score float64) string {
	t := theme.Current()

	filled := int(score*10 + 0.5)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}

	color := t.Error
	switch {
	case score >= 0.75:
		color = t.Success
	case score >= 0.5:
		color = t.Warning
	}

	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).
		Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgSurface2)).
			Render(strings.Repeat("░", 10-filled))
	return bar + fmt.Sprintf(" %3.0f%%", score*100)
}

func (d *Detail) renderFooter() string {
	st := theme.Current().S()

	if d.confirm == confirmResolve {
		return st.ErrorText.Render("Mark this item as resolved? ") + RenderHintBar("y", "confirm", "n", "cancel")
	}
	if d.confirm == confirmDelete {
		return st.ErrorText.Render("Delete this item permanently? ") + RenderHintBar("y", "confirm", "n", "cancel")
	}

	pairs := []string{KeyUpDownJK, "scroll", KeyEsc, "back"}
	if d.isOwner {
		if d.item.Status != "resolved" {
			pairs = append(pairs, "r", "resolve")
		}
		pairs = append(pairs, "d", "delete")
	}
	return RenderHintBar(pairs...)
}
