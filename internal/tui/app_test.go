package tui

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reunite-ai/reunite/internal/api"
	"github.com/reunite-ai/reunite/internal/auth"
	"github.com/reunite-ai/reunite/internal/config"
	"github.com/reunite-ai/reunite/internal/tui/wizard"
)

func newTestApp(t *testing.T, token string) *App {
	t.Helper()
	cfg := &config.Config{
		APIBaseURL:     "http://localhost:5000",
		RequestTimeout: 5,
		DefaultLat:     17.375685,
		DefaultLng:     78.474661,
	}
	store := auth.NewFileStoreAt(t.TempDir() + "/token")
	if token != "" {
		require.NoError(t, store.Save(token))
	}
	client := api.New(cfg.APIBaseURL, time.Duration(cfg.RequestTimeout)*time.Second, store)
	app := NewApp(cfg, client, store, stubDetailEngine{})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return app
}

func TestAppStartsOnAuthWithoutToken(t *testing.T) {
	app := newTestApp(t, "")
	assert.Equal(t, screenAuth, app.active)
	require.NotNil(t, app.auth)
}

func TestAppStartsOnHomeWithToken(t *testing.T) {
	app := newTestApp(t, "tok")
	assert.Equal(t, screenHome, app.active)
	require.NotNil(t, app.home)
}

func TestAppLoggedInSwitchesToHome(t *testing.T) {
	app := newTestApp(t, "")
	_, cmd := app.Update(LoggedInMsg{})
	assert.Equal(t, screenHome, app.active)
	require.NotNil(t, app.home)
	require.NotNil(t, cmd)
}

func TestAppWizardLifecycle(t *testing.T) {
	app := newTestApp(t, "tok")

	app.Update(ShowWizardMsg{})
	assert.Equal(t, screenWizard, app.active)
	require.NotNil(t, app.wiz)

	app.Update(wizard.CancelledMsg{})
	assert.Equal(t, screenHome, app.active)
	assert.Nil(t, app.wiz)
}

func TestAppAuthRequiredDropsToLogin(t *testing.T) {
	app := newTestApp(t, "tok")
	app.Update(ShowWizardMsg{})

	app.Update(wizard.AuthRequiredMsg{})
	assert.Equal(t, screenAuth, app.active)
	assert.Nil(t, app.wiz, "abandoned wizard is released")
}

func TestAppSubmittedOpensCreatedItem(t *testing.T) {
	app := newTestApp(t, "tok")
	app.Update(ShowWizardMsg{})

	app.Update(wizard.SubmittedMsg{ID: "abc123"})
	assert.Equal(t, screenDetail, app.active)
	require.NotNil(t, app.detail)
	assert.Equal(t, "abc123", app.detail.id)
	assert.Nil(t, app.wiz)
	assert.True(t, app.toast.IsVisible())
}

func TestAppCoordinateToastFourDecimals(t *testing.T) {
	app := newTestApp(t, "tok")
	app.Update(ShowWizardMsg{})

	app.Update(wizard.CoordinateSelectedMsg{Latitude: 17.375685, Longitude: 78.474661})
	assert.True(t, app.toast.IsVisible())
	assert.Contains(t, app.toast.View(100, 30), "17.3757, 78.4747")
}

func TestAppProfileNavigation(t *testing.T) {
	app := newTestApp(t, "tok")
	app.Update(ShowProfileMsg{})
	assert.Equal(t, screenProfile, app.active)
	require.NotNil(t, app.profile)

	app.Update(ShowHomeMsg{})
	assert.Equal(t, screenHome, app.active)
}

func TestAppItemDeletedReturnsHome(t *testing.T) {
	app := newTestApp(t, "tok")
	app.Update(ShowDetailMsg{ID: "x"})
	require.NotNil(t, app.detail)

	app.Update(ItemDeletedMsg{ID: "x"})
	assert.Equal(t, screenHome, app.active)
	assert.Nil(t, app.detail)
}

func TestAppStatusLineNamesScreen(t *testing.T) {
	app := newTestApp(t, "tok")
	assert.Contains(t, app.statusLine(), "browse")

	app.Update(ShowProfileMsg{})
	assert.Contains(t, app.statusLine(), "profile")
}

func TestAppCtrlCQuits(t *testing.T) {
	app := newTestApp(t, "tok")
	_, cmd := app.Update(tea.KeyPressMsg{Text: "ctrl+c"})
	require.NotNil(t, cmd)
	assert.True(t, app.quitting)
}
