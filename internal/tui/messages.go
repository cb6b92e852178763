package tui

import (
	"github.com/reunite-ai/reunite/internal/api"
)

// Navigation messages switch the active screen.

// ShowAuthMsg switches to the login/signup screen.
type ShowAuthMsg struct{}

// ShowHomeMsg switches to the home feed, refreshing it.
type ShowHomeMsg struct{}

// ShowWizardMsg opens the item report wizard.
type ShowWizardMsg struct{}

// ShowDetailMsg opens the detail view for an item.
type ShowDetailMsg struct {
	ID string
}

// ShowProfileMsg switches to the profile screen.
type ShowProfileMsg struct{}

// LoggedInMsg is sent after a credential was obtained and stored.
type LoggedInMsg struct{}

// LoggedOutMsg is sent after the stored credential was cleared.
type LoggedOutMsg struct{}

// API result messages carry fetched data to the screens.

// StatsLoadedMsg carries the platform-wide counters.
type StatsLoadedMsg struct {
	Stats api.Stats
}

// ItemsLoadedMsg carries a page of the item feed.
type ItemsLoadedMsg struct {
	List   api.ItemList
	Append bool // true when this page extends the current list
}

// ItemLoadedMsg carries a single item for the detail view.
type ItemLoadedMsg struct {
	Item    api.Item
	IsOwner bool
}

// MatchesLoadedMsg carries AI match candidates for the detail view.
type MatchesLoadedMsg struct {
	ItemID  string
	Matches []api.Match
}

// ProfileLoadedMsg carries the authenticated user's profile.
type ProfileLoadedMsg struct {
	User api.User
}

// MyItemsLoadedMsg carries the authenticated user's own reports.
type MyItemsLoadedMsg struct {
	List api.ItemList
}

// ItemResolvedMsg is sent after an item was marked resolved.
type ItemResolvedMsg struct {
	ID string
}

// ItemDeletedMsg is sent after an item was deleted.
type ItemDeletedMsg struct {
	ID string
}

// APIErrorMsg carries a failed request's error to the active screen.
type APIErrorMsg struct {
	Err error
}
