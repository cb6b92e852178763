package api

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/reunite-ai/reunite/internal/auth"
	"github.com/reunite-ai/reunite/internal/draft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func sampleDraft(t *testing.T, withCoords bool) draft.Draft {
	t.Helper()
	dir := t.TempDir()
	d := draft.Draft{
		Type:         draft.TypeLost,
		Title:        "Blue Wallet",
		Description:  "Leather wallet with monogram",
		Category:     "Personal Items",
		Tags:         []string{"leather", "blue"},
		LocationName: "Central Park",
		DateOccurred: "2026-08-01T14:30",
		Images: []string{
			writeImage(t, dir, "IMG 001 Front.jpg", "front-bytes"),
			writeImage(t, dir, "back.png", "back-bytes"),
		},
	}
	if withCoords {
		d.Coordinates = &draft.Coordinates{Latitude: 12.9716, Longitude: 77.5946}
	}
	return d
}

func TestCreateItem(t *testing.T) {
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/items", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(32<<20))

		assert.Equal(t, "lost", r.FormValue("type"))
		assert.Equal(t, "Blue Wallet", r.FormValue("title"))
		assert.Equal(t, "Personal Items", r.FormValue("category"))
		assert.Equal(t, "Central Park", r.FormValue("location"))
		assert.Equal(t, "2026-08-01T14:30", r.FormValue("date_occurred"))

		var tags []string
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("tags")), &tags))
		assert.Equal(t, []string{"leather", "blue"}, tags)

		assert.Equal(t, "12.9716", r.FormValue("latitude"))
		assert.Equal(t, "77.5946", r.FormValue("longitude"))

		files := r.MultipartForm.File["images"]
		require.Len(t, files, 2)
		// Pick order preserved, names slugified with extensions intact
		assert.Equal(t, "img-001-front.jpg", files[0].Filename)
		assert.Equal(t, "back.png", files[1].Filename)

		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		buf := make([]byte, 32)
		n, _ := f.Read(buf)
		assert.Equal(t, "front-bytes", string(buf[:n]))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"abc123","message":"Item created successfully"}`))
	})

	id, err := c.CreateItem(context.Background(), sampleDraft(t, true))
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
}

func TestCreateItem_OmitsCoordinatesWhenUnset(t *testing.T) {
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		_, hasLat := r.MultipartForm.Value["latitude"]
		_, hasLng := r.MultipartForm.Value["longitude"]
		assert.False(t, hasLat, "latitude part must be absent")
		assert.False(t, hasLng, "longitude part must be absent")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"xyz"}`))
	})

	id, err := c.CreateItem(context.Background(), sampleDraft(t, false))
	require.NoError(t, err)
	assert.Equal(t, "xyz", id)
}

func TestCreateItem_EmptyTagsEncodedAsEmptyArray(t *testing.T) {
	d := sampleDraft(t, false)
	d.Tags = nil

	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, "[]", r.FormValue("tags"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"xyz"}`))
	})

	_, err := c.CreateItem(context.Background(), d)
	require.NoError(t, err)
}

func TestCreateItem_BackendRejection(t *testing.T) {
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"bad data"}`))
	})

	_, err := c.CreateItem(context.Background(), sampleDraft(t, false))
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "bad data", apiErr.Message)
}

func TestCreateItem_NoTokenNoRequest(t *testing.T) {
	called := false
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.CreateItem(context.Background(), sampleDraft(t, false))
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.False(t, called)
}

func TestCreateItem_MissingImageFile(t *testing.T) {
	d := sampleDraft(t, false)
	d.Images = append(d.Images, filepath.Join(t.TempDir(), "gone.jpg"))

	c := New("http://unused", time.Second, auth.StaticToken("tok"))
	_, err := c.CreateItem(context.Background(), d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone.jpg")
}

func TestUploadName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/tmp/IMG 001 Front.jpg", "img-001-front.jpg"},
		{"photo.PNG", "photo.png"},
		{"/a/b/Ünïcodé näme.jpeg", "unicode-name.jpeg"},
		{"....jpg", "image.jpg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, uploadName(tt.path), tt.path)
	}
}
