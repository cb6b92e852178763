// Package tui is the terminal interface for reunite: an auth screen, the
// item feed, the report wizard, item detail, and the profile screen, with a
// toast overlay on top.
package tui

import (
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/reunite-ai/reunite/internal/api"
	"github.com/reunite-ai/reunite/internal/auth"
	"github.com/reunite-ai/reunite/internal/config"
	"github.com/reunite-ai/reunite/internal/logger"
	"github.com/reunite-ai/reunite/internal/mapview"
	"github.com/reunite-ai/reunite/internal/tui/theme"
	"github.com/reunite-ai/reunite/internal/tui/wizard"
)

type screen int

const (
	screenAuth screen = iota
	screenHome
	screenWizard
	screenDetail
	screenProfile
)

// App is the root model. It owns the screens and routes navigation
// messages between them.
type App struct {
	cfg    *config.Config
	client *api.Client
	store  auth.TokenStore
	engine mapview.Engine
	center mapview.Coordinate

	active  screen
	auth    *AuthScreen
	home    *Home
	wiz     *wizard.Model
	detail  *Detail
	profile *Profile

	toast    *Toast
	quitting bool
	width    int
	height   int
}

// NewApp wires the root model. The starting screen depends on whether a
// token is already stored.
func NewApp(cfg *config.Config, client *api.Client, store auth.TokenStore, engine mapview.Engine) *App {
	a := &App{
		cfg:    cfg,
		client: client,
		store:  store,
		engine: engine,
		center: mapview.Coordinate{Latitude: cfg.DefaultLat, Longitude: cfg.DefaultLng},
		toast:  NewToast(),
	}

	if tok, err := store.Token(); err == nil && tok != "" {
		a.active = screenHome
		a.home = NewHome(client)
	} else {
		a.active = screenAuth
		a.auth = NewAuthScreen(client, store)
	}
	return a
}

// Run starts the full-screen interface. Blocks until quit.
func Run(cfg *config.Config) error {
	store := auth.NewFileStore()
	client := api.New(cfg.APIBaseURL, time.Duration(cfg.RequestTimeout)*time.Second, store)
	engine := mapview.NewTileEngine(cfg.TileURL, cfg.TileAPIKey)

	app := NewApp(cfg, client, store, engine)
	p := tea.NewProgram(app)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}

// Init initializes the starting screen.
func (a *App) Init() tea.Cmd {
	if a.active == screenHome {
		return a.home.Init()
	}
	return a.auth.Init()
}

// Update routes messages: app-level concerns first, then the active screen.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.propagateSize()
		if a.wiz != nil {
			return a.forwardToWizard(msg)
		}
		return a, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" && a.active != screenWizard {
			a.quitting = true
			return a, tea.Quit
		}

	case ShowToastMsg:
		return a, a.toast.Show(msg.Text, msg.Variant)

	case ToastDismissMsg:
		return a, a.toast.Update(msg)

	case LoggedInMsg:
		a.active = screenHome
		a.home = NewHome(a.client)
		a.home.SetSize(a.width, a.contentHeight())
		return a, tea.Batch(a.home.Init(), a.toast.Show("Logged in", ToastSuccess))

	case LoggedOutMsg:
		return a, tea.Batch(a.showAuth(), a.toast.Show("Logged out", ToastInfo))

	case ShowAuthMsg:
		return a, a.showAuth()

	case ShowHomeMsg:
		return a, a.showHome(true)

	case ShowWizardMsg:
		return a, a.showWizard()

	case ShowDetailMsg:
		return a, a.showDetail(msg.ID)

	case ShowProfileMsg:
		a.closeDetail()
		a.active = screenProfile
		a.profile = NewProfile(a.client, a.store)
		a.profile.SetSize(a.width, a.contentHeight())
		return a, a.profile.Init()

	case ItemDeletedMsg:
		a.closeDetail()
		return a, tea.Batch(a.showHome(true), a.toast.Show("Item deleted", ToastSuccess))

	case APIErrorMsg:
		// A stale or missing credential drops the user back to the auth
		// screen instead of surfacing a raw error.
		if errors.Is(msg.Err, api.ErrUnauthenticated) {
			return a, tea.Batch(a.showAuth(), a.toast.Show("Please log in", ToastError))
		}

	case wizard.CancelledMsg:
		a.closeWizard()
		return a, tea.Batch(a.showHome(false), a.toast.Show("Report discarded", ToastInfo))

	case wizard.SubmittedMsg:
		// Let the wizard observe the message first so its in-flight flag
		// clears, then jump to the created item.
		_, cmd := a.forwardToWizard(msg)
		a.closeWizard()
		return a, tea.Batch(cmd,
			a.showDetail(msg.ID),
			a.toast.Show("Report submitted", ToastSuccess))

	case wizard.SubmitFailedMsg:
		_, cmd := a.forwardToWizard(msg)
		return a, tea.Batch(cmd, a.toast.Show("Submission failed: "+msg.Err.Error(), ToastError))

	case wizard.AuthRequiredMsg:
		logger.Info("Submission needs a credential, returning to login")
		a.closeWizard()
		return a, tea.Batch(a.showAuth(), a.toast.Show("Please log in to submit a report", ToastError))

	case wizard.CoordinateSelectedMsg:
		_, cmd := a.forwardToWizard(msg)
		return a, tea.Batch(cmd, a.toast.Show(
			fmt.Sprintf("Location set: %.4f, %.4f", msg.Latitude, msg.Longitude), ToastInfo))
	}

	// Everything else belongs to the active screen.
	switch a.active {
	case screenAuth:
		return a, a.auth.Update(msg)
	case screenHome:
		return a, a.home.Update(msg)
	case screenWizard:
		return a.forwardToWizard(msg)
	case screenDetail:
		if a.detail != nil {
			return a, a.detail.Update(msg)
		}
	case screenProfile:
		if a.profile != nil {
			return a, a.profile.Update(msg)
		}
	}
	return a, nil
}

func (a *App) forwardToWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.wiz == nil {
		return a, nil
	}
	m, cmd := a.wiz.Update(msg)
	if wm, ok := m.(*wizard.Model); ok {
		a.wiz = wm
	}
	return a, cmd
}

func (a *App) showAuth() tea.Cmd {
	a.closeWizard()
	a.closeDetail()
	a.active = screenAuth
	a.auth = NewAuthScreen(a.client, a.store)
	a.auth.SetSize(a.width, a.contentHeight())
	return a.auth.Init()
}

func (a *App) showHome(refresh bool) tea.Cmd {
	a.closeDetail()
	a.active = screenHome
	if a.home == nil {
		a.home = NewHome(a.client)
		a.home.SetSize(a.width, a.contentHeight())
		return a.home.Init()
	}
	if refresh {
		return a.home.Refresh()
	}
	return nil
}

func (a *App) showWizard() tea.Cmd {
	a.active = screenWizard
	a.wiz = wizard.New(a.client, a.store, a.engine, a.center)
	cmd := a.wiz.Init()
	_, sizeCmd := a.forwardToWizard(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	return tea.Batch(cmd, sizeCmd)
}

func (a *App) showDetail(id string) tea.Cmd {
	a.closeDetail()
	a.active = screenDetail
	a.detail = NewDetail(a.client, id, a.engine)
	a.detail.SetSize(a.width, a.contentHeight())
	return a.detail.Init()
}

func (a *App) closeWizard() {
	if a.wiz != nil {
		a.wiz.Close()
		a.wiz = nil
	}
}

func (a *App) closeDetail() {
	if a.detail != nil {
		a.detail.Close()
		a.detail = nil
	}
}

// contentHeight is the screen area above the status bar.
func (a *App) contentHeight() int {
	h := a.height - 1
	if h < 0 {
		h = 0
	}
	return h
}

func (a *App) propagateSize() {
	if a.auth != nil {
		a.auth.SetSize(a.width, a.contentHeight())
	}
	if a.home != nil {
		a.home.SetSize(a.width, a.contentHeight())
	}
	if a.detail != nil {
		a.detail.SetSize(a.width, a.contentHeight())
	}
	if a.profile != nil {
		a.profile.SetSize(a.width, a.contentHeight())
	}
}

// statusLine names the active screen and the backend in the bottom bar.
func (a *App) statusLine() string {
	name := "login"
	switch a.active {
	case screenHome:
		name = "browse"
	case screenWizard:
		name = "report"
	case screenDetail:
		name = "item"
	case screenProfile:
		name = "profile"
	}
	return fmt.Sprintf("reunite · %s · %s", name, a.cfg.APIBaseURL)
}

// View renders the active screen to a full-screen canvas with the toast
// drawn on top.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if a.quitting || a.width == 0 || a.height == 0 {
		view.AltScreen = false
		view.Content = lipgloss.NewLayer("")
		return view
	}

	var content string
	switch a.active {
	case screenAuth:
		content = a.auth.View()
	case screenHome:
		content = a.home.View()
	case screenWizard:
		if a.wiz != nil {
			content = lipgloss.Place(a.width, a.height,
				lipgloss.Center, lipgloss.Center, a.wiz.ViewContent())
		}
	case screenDetail:
		if a.detail != nil {
			content = a.detail.View()
		}
	case screenProfile:
		if a.profile != nil {
			content = a.profile.View()
		}
	}

	canvas := uv.NewScreenBuffer(a.width, a.height)
	area := canvas.Bounds()

	contentArea := uv.Rectangle{
		Min: area.Min,
		Max: uv.Position{X: area.Max.X, Y: area.Max.Y - 1},
	}
	DrawText(canvas, contentArea, content)

	statusArea := uv.Rectangle{
		Min: uv.Position{X: area.Min.X, Y: area.Max.Y - 1},
		Max: area.Max,
	}
	DrawStyled(canvas, statusArea, styleStatusBar, a.statusLine())

	// Toast draws last so it sits on top of everything.
	if a.toast.IsVisible() {
		toastContent := a.toast.View(area.Dx(), area.Dy())
		if toastContent != "" {
			uv.NewStyledString(toastContent).Draw(canvas, area)
		}
	}

	view.Content = lipgloss.NewLayer(canvas.Render())
	view.BackgroundColor = lipgloss.Color(theme.Current().BgBase)
	return view
}
