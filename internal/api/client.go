// Package api is the HTTP client for the Lost & Found backend. All requests
// and responses are plain JSON except item creation, which is multipart.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reunite-ai/reunite/internal/auth"
	"github.com/reunite-ai/reunite/internal/logger"
)

// ErrUnauthenticated is returned when an endpoint needs a bearer token and
// none is stored. Callers treat it as "not logged in", not as a failure.
var ErrUnauthenticated = errors.New("not logged in")

// Error is a non-2xx backend response with its extracted message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  auth.TokenSource
}

// New creates a client for the given base URL. The timeout bounds every
// request including the multipart upload; there is no per-call deadline
// beyond it.
func New(baseURL string, timeout time.Duration, tokens auth.TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// BaseURL returns the configured backend URL, used to resolve relative image paths.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ImageURL resolves a backend-relative image path to an absolute URL.
func (c *Client) ImageURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + path
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", nil, body, &out, false); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// Signup registers a new account and returns its access token.
func (c *Client) Signup(ctx context.Context, name, email, password string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", nil, body, &out, false); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// Stats fetches the platform-wide counters shown on the home screen.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var out Stats
	err := c.doJSON(ctx, http.MethodGet, "/api/items/stats", nil, nil, &out, false)
	return out, err
}

// Items fetches the item feed with optional filters.
func (c *Client) Items(ctx context.Context, q ItemQuery) (ItemList, error) {
	values := url.Values{}
	if q.Type != "" {
		values.Set("type", q.Type)
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.UserID != "" {
		values.Set("user_id", q.UserID)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(q.PerPage))
	}

	var out ItemList
	err := c.doJSON(ctx, http.MethodGet, "/api/items", values, nil, &out, true)
	return out, err
}

// Item fetches one item and whether the caller owns it.
func (c *Client) Item(ctx context.Context, id string) (Item, bool, error) {
	var out struct {
		Item    Item `json:"item"`
		IsOwner bool `json:"is_owner"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/api/items/"+id, nil, nil, &out, false)
	return out.Item, out.IsOwner, err
}

// Matches fetches the AI match candidates for an item.
func (c *Client) Matches(ctx context.Context, id string) ([]Match, error) {
	var out struct {
		Matches []Match `json:"matches"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/api/matches/"+id, nil, nil, &out, false)
	return out.Matches, err
}

// Me fetches the authenticated user's profile and stats.
func (c *Client) Me(ctx context.Context) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/api/users/me", nil, nil, &out, true)
	return out.User, err
}

// UpdateMe updates the editable profile fields.
func (c *Client) UpdateMe(ctx context.Context, name, phone string) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	body := map[string]string{"name": name, "phone": phone}
	err := c.doJSON(ctx, http.MethodPut, "/api/users/me", nil, body, &out, true)
	return out.User, err
}

// ResolveItem marks an owned item as resolved.
func (c *Client) ResolveItem(ctx context.Context, id string) error {
	body := map[string]string{"status": "resolved"}
	return c.doJSON(ctx, http.MethodPut, "/api/items/"+id, nil, body, nil, true)
}

// DeleteItem removes an owned item.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/items/"+id, nil, nil, nil, true)
}

// doJSON issues a request with a JSON body (if any) and decodes a JSON
// response into out (if non-nil). authRequired enforces a stored token;
// without it the token is attached opportunistically when present.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any, authRequired bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, reader, authRequired)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// newRequest builds a request with the request ID and bearer header attached.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, authRequired bool) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("reading token: %w", err)
	}
	if token == "" && authRequired {
		return nil, ErrUnauthenticated
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger.Debug("API request: %s %s", method, u)
	return req, nil
}

// decodeError extracts the backend's message field, falling back to a
// generic message when the body isn't usable.
func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil {
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &body) == nil && body.Message != "" {
			apiErr.Message = body.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}

	logger.Warn("API error: status=%d message=%s", apiErr.StatusCode, apiErr.Message)
	return apiErr
}
