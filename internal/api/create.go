package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"github.com/reunite-ai/reunite/internal/draft"
	"github.com/reunite-ai/reunite/internal/logger"
)

// CreateItem submits a finished draft as multipart form data and returns the
// new item's ID. Scalar fields go as text parts, tags as one JSON-encoded
// part, coordinates as decimal strings only when set, and every image as a
// binary part under the shared "images" field, in pick order.
func (c *Client) CreateItem(ctx context.Context, d draft.Draft) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"type":          string(d.Type),
		"title":         d.Title,
		"description":   d.Description,
		"category":      d.Category,
		"location":      d.LocationName,
		"date_occurred": d.DateOccurred,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return "", fmt.Errorf("writing %s field: %w", name, err)
		}
	}

	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}
	if err := w.WriteField("tags", string(tagsJSON)); err != nil {
		return "", fmt.Errorf("writing tags field: %w", err)
	}

	if d.Coordinates != nil {
		lat := strconv.FormatFloat(d.Coordinates.Latitude, 'f', -1, 64)
		lng := strconv.FormatFloat(d.Coordinates.Longitude, 'f', -1, 64)
		if err := w.WriteField("latitude", lat); err != nil {
			return "", fmt.Errorf("writing latitude field: %w", err)
		}
		if err := w.WriteField("longitude", lng); err != nil {
			return "", fmt.Errorf("writing longitude field: %w", err)
		}
	}

	for _, path := range d.Images {
		if err := appendImage(w, path); err != nil {
			return "", err
		}
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalizing form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/items", nil, &buf, true)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	logger.Info("Submitting item report: type=%s images=%d", d.Type, len(d.Images))
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("submitting item: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", decodeError(resp)
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding create response: %w", err)
	}
	return out.ID, nil
}

// appendImage streams one image file into the form under the shared field
// name. The filename is slugified so arbitrary local names survive the trip
// through the backend's storage layer.
func appendImage(w *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening image %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	part, err := w.CreateFormFile("images", uploadName(path))
	if err != nil {
		return fmt.Errorf("creating image part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copying image %s: %w", path, err)
	}
	return nil
}

// uploadName returns a safe filename: slugified base name with the original
// extension preserved.
func uploadName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := slug.Make(strings.TrimSuffix(base, ext))
	if name == "" {
		name = "image"
	}
	return name + strings.ToLower(ext)
}
