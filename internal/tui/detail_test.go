package tui

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reunite-ai/reunite/internal/api"
	"github.com/reunite-ai/reunite/internal/mapview"
)

type fakeDetailClient struct {
	item     api.Item
	isOwner  bool
	matches  []api.Match
	resolves int
	deletes  int
	err      error
}

func (f *fakeDetailClient) Item(ctx context.Context, id string) (api.Item, bool, error) {
	return f.item, f.isOwner, f.err
}

func (f *fakeDetailClient) Matches(ctx context.Context, id string) ([]api.Match, error) {
	return f.matches, nil
}

func (f *fakeDetailClient) ResolveItem(ctx context.Context, id string) error {
	f.resolves++
	return f.err
}

func (f *fakeDetailClient) DeleteItem(ctx context.Context, id string) error {
	f.deletes++
	return f.err
}

func (f *fakeDetailClient) ImageURL(path string) string {
	return "http://backend" + path
}

type stubDetailEngine struct{}

func (stubDetailEngine) Acquire(cfg mapview.Config) (mapview.Handle, error) {
	return stubDetailHandle{marker: cfg.Center}, nil
}

type stubDetailHandle struct{ marker mapview.Coordinate }

func (h stubDetailHandle) Marker() mapview.Coordinate       { return h.marker }
func (h stubDetailHandle) MoveMarker(c mapview.Coordinate)  {}
func (h stubDetailHandle) Render(width, height int) string  { return "map" }
func (h stubDetailHandle) Release()                         {}

func newTestDetail(client *fakeDetailClient) *Detail {
	d := NewDetail(client, "item-1", stubDetailEngine{})
	d.SetSize(100, 30)
	return d
}

func loadedItem() api.Item {
	lat, lng := 17.4, 78.5
	return api.Item{
		ID:          "item-1",
		Type:        "lost",
		Title:       "Black wallet",
		Description: "Leather, has initials.",
		Category:    "Accessories",
		Location:    "Central Library",
		Latitude:    &lat,
		Longitude:   &lng,
	}
}

func TestDetailLoadShowsItem(t *testing.T) {
	d := newTestDetail(&fakeDetailClient{})
	defer d.Close()

	d.Update(ItemLoadedMsg{Item: loadedItem()})
	require.True(t, d.loaded)

	view := d.View()
	assert.Contains(t, view, "Black wallet")
	assert.Contains(t, view, "Central Library")
}

func TestDetailOwnerConfirmResolve(t *testing.T) {
	client := &fakeDetailClient{}
	d := newTestDetail(client)
	defer d.Close()
	d.Update(ItemLoadedMsg{Item: loadedItem(), IsOwner: true})

	d.Update(key("r"))
	require.Equal(t, confirmResolve, d.confirm)

	cmd := d.Update(key("y"))
	require.NotNil(t, cmd)
	msg := cmd()
	resolved, ok := msg.(ItemResolvedMsg)
	require.True(t, ok)
	assert.Equal(t, "item-1", resolved.ID)
	assert.Equal(t, 1, client.resolves)

	d.Update(resolved)
	assert.Equal(t, "resolved", d.item.Status)
}

func TestDetailConfirmDeclined(t *testing.T) {
	client := &fakeDetailClient{}
	d := newTestDetail(client)
	defer d.Close()
	d.Update(ItemLoadedMsg{Item: loadedItem(), IsOwner: true})

	d.Update(key("d"))
	require.Equal(t, confirmDelete, d.confirm)

	cmd := d.Update(key("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, confirmNone, d.confirm)
	assert.Zero(t, client.deletes)
}

func TestDetailNonOwnerIgnoresOwnerKeys(t *testing.T) {
	client := &fakeDetailClient{}
	d := newTestDetail(client)
	defer d.Close()
	d.Update(ItemLoadedMsg{Item: loadedItem()})

	d.Update(key("r"))
	d.Update(key("d"))
	assert.Equal(t, confirmNone, d.confirm)
}

func TestDetailDeleteEmitsDeletedMsg(t *testing.T) {
	client := &fakeDetailClient{}
	d := newTestDetail(client)
	defer d.Close()
	d.Update(ItemLoadedMsg{Item: loadedItem(), IsOwner: true})

	d.Update(key("d"))
	cmd := d.Update(key("y"))
	require.NotNil(t, cmd)

	deleted, ok := cmd().(ItemDeletedMsg)
	require.True(t, ok)
	assert.Equal(t, "item-1", deleted.ID)
	assert.Equal(t, 1, client.deletes)
}

func TestDetailEscGoesHome(t *testing.T) {
	d := newTestDetail(&fakeDetailClient{})
	defer d.Close()
	d.Update(ItemLoadedMsg{Item: loadedItem()})

	cmd := d.Update(key("esc"))
	require.NotNil(t, cmd)
	_, ok := cmd().(ShowHomeMsg)
	assert.True(t, ok)
}

func TestDetailMatchesRendered(t *testing.T) {
	d := newTestDetail(&fakeDetailClient{})
	defer d.Close()
	d.Update(ItemLoadedMsg{Item: loadedItem()})
	d.Update(MatchesLoadedMsg{ItemID: "item-1", Matches: []api.Match{
		{ID: "m1", Title: "Found wallet near library", Score: 0.82, ImageScore: 0.9, TextScore: 0.8, LocationScore: 0.7, User: "Priya"},
	}})

	view := d.View()
	assert.Contains(t, view, "Possible matches (1)")
	assert.Contains(t, view, "Found wallet near library")
	assert.Contains(t, view, "82%")
}

func TestDetailStaleMatchesIgnored(t *testing.T) {
	d := newTestDetail(&fakeDetailClient{})
	defer d.Close()

	d.Update(MatchesLoadedMsg{ItemID: "other", Matches: []api.Match{{ID: "m1"}}})
	assert.False(t, d.matchesLoaded)
}

func TestDetailScrollClamps(t *testing.T) {
	d := newTestDetail(&fakeDetailClient{})
	defer d.Close()
	d.Update(ItemLoadedMsg{Item: loadedItem()})

	d.Update(key("up"))
	assert.Zero(t, d.scroll)

	for i := 0; i < 500; i++ {
		d.Update(key("down"))
	}
	d.View()
	assert.Less(t, d.scroll, 500)
}

func TestDetailMatchLookupFailureKeepsView(t *testing.T) {
	d := newTestDetail(&fakeDetailClient{})
	defer d.Close()
	d.Update(ItemLoadedMsg{Item: loadedItem()})
	d.Update(MatchesLoadedMsg{ItemID: "item-1"})

	assert.True(t, d.matchesLoaded)
	assert.Contains(t, d.View(), "No match candidates yet.")
}

func TestDetailResolveFailureShowsError(t *testing.T) {
	d := newTestDetail(&fakeDetailClient{})
	defer d.Close()
	d.Update(ItemLoadedMsg{Item: loadedItem(), IsOwner: true})

	d.Update(APIErrorMsg{Err: fmt.Errorf("server exploded")})
	assert.Contains(t, d.View(), "server exploded")
}
