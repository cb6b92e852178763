package tui

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reunite-ai/reunite/internal/api"
	"github.com/reunite-ai/reunite/internal/auth"
)

type fakeProfileClient struct {
	user      api.User
	items     []api.Item
	updates   int
	lastName  string
	lastPhone string
	err       error
}

func (f *fakeProfileClient) Me(ctx context.Context) (api.User, error) {
	return f.user, f.err
}

func (f *fakeProfileClient) UpdateMe(ctx context.Context, name, phone string) (api.User, error) {
	f.updates++
	f.lastName = name
	f.lastPhone = phone
	if f.err != nil {
		return api.User{}, f.err
	}
	updated := f.user
	updated.Name = name
	updated.Phone = phone
	return updated, nil
}

func (f *fakeProfileClient) Items(ctx context.Context, q api.ItemQuery) (api.ItemList, error) {
	return api.ItemList{Items: f.items}, f.err
}

func testUser() api.User {
	return api.User{
		ID:    "u1",
		Name:  "Ravi",
		Email: "ravi@example.com",
		Stats: api.UserStats{TotalItems: 3, LostItems: 2, FoundItems: 1},
	}
}

func newTestProfile(t *testing.T, client *fakeProfileClient) *Profile {
	t.Helper()
	p := NewProfile(client, auth.NewFileStoreAt(t.TempDir()+"/token"))
	p.SetSize(90, 30)
	p.Update(ProfileLoadedMsg{User: client.user})
	return p
}

func TestProfileRendersAccountAndStats(t *testing.T) {
	client := &fakeProfileClient{user: testUser()}
	p := newTestProfile(t, client)

	view := p.View()
	assert.Contains(t, view, "Ravi")
	assert.Contains(t, view, "ravi@example.com")
	assert.Contains(t, view, "reports")
}

func TestProfileEditSavesNameAndPhone(t *testing.T) {
	client := &fakeProfileClient{user: testUser()}
	p := newTestProfile(t, client)

	p.Update(key("e"))
	require.True(t, p.editing)
	assert.Equal(t, "Ravi", p.nameInput.Value())

	p.nameInput.SetValue("Ravi K")
	p.phoneInput.SetValue("9876543210")
	cmd := p.Update(key("enter"))
	require.NotNil(t, cmd)

	msg := cmd()
	loaded, ok := msg.(ProfileLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, 1, client.updates)
	assert.Equal(t, "Ravi K", client.lastName)
	assert.Equal(t, "9876543210", client.lastPhone)

	toastCmd := p.Update(loaded)
	assert.False(t, p.editing)
	assert.Equal(t, "Ravi K", p.user.Name)
	require.NotNil(t, toastCmd)
	_, ok = toastCmd().(ShowToastMsg)
	assert.True(t, ok)
}

func TestProfileEditRejectsEmptyName(t *testing.T) {
	client := &fakeProfileClient{user: testUser()}
	p := newTestProfile(t, client)

	p.Update(key("e"))
	p.nameInput.SetValue("   ")
	cmd := p.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.NotEmpty(t, p.errText)
	assert.Zero(t, client.updates)
}

func TestProfileEditEscCancels(t *testing.T) {
	client := &fakeProfileClient{user: testUser()}
	p := newTestProfile(t, client)

	p.Update(key("e"))
	p.nameInput.SetValue("Changed")
	p.Update(key("esc"))
	assert.False(t, p.editing)
	assert.Equal(t, "Ravi", p.user.Name)
	assert.Zero(t, client.updates)
}

func TestProfileLogoutClearsToken(t *testing.T) {
	client := &fakeProfileClient{user: testUser()}
	store := auth.NewFileStoreAt(t.TempDir() + "/token")
	require.NoError(t, store.Save("tok"))

	p := NewProfile(client, store)
	p.Update(ProfileLoadedMsg{User: client.user})

	cmd := p.Update(key("ctrl+l"))
	require.NotNil(t, cmd)
	_, ok := cmd().(LoggedOutMsg)
	require.True(t, ok)

	tok, err := store.Token()
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestProfileOwnItemsNavigate(t *testing.T) {
	client := &fakeProfileClient{
		user:  testUser(),
		items: []api.Item{{ID: "mine-1", Type: "lost", Title: "Keys", Category: "Keys"}},
	}
	p := newTestProfile(t, client)
	p.Update(MyItemsLoadedMsg{List: api.ItemList{Items: client.items}})

	cmd := p.Update(key("enter"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(ShowDetailMsg)
	require.True(t, ok)
	assert.Equal(t, "mine-1", msg.ID)
}

func TestProfileUpdateFailureKeepsEditing(t *testing.T) {
	client := &fakeProfileClient{user: testUser()}
	p := newTestProfile(t, client)

	p.Update(key("e"))
	p.nameInput.SetValue("New Name")
	client.err = fmt.Errorf("phone already in use")
	cmd := p.Update(key("enter"))
	require.NotNil(t, cmd)

	p.Update(cmd())
	assert.True(t, p.editing)
	assert.Contains(t, p.errText, "phone already in use")
}
