// Package auth persists the backend access token between runs.
package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenSource supplies the stored access token.
// An empty token with a nil error means "not logged in".
type TokenSource interface {
	Token() (string, error)
}

// TokenStore extends TokenSource with write access, used by the login and
// logout flows. The wizard and API client only need the read side.
type TokenStore interface {
	TokenSource
	Save(token string) error
	Clear() error
}

// FileStore keeps the token as a single string in the user config directory.
type FileStore struct {
	path string
}

// NewFileStore creates a store at the default XDG location.
// Returns ~/.config/reunite/token or $XDG_CONFIG_HOME/reunite/token.
func NewFileStore() *FileStore {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return &FileStore{path: filepath.Join(xdg, "reunite", "token")}
	}
	home, _ := os.UserHomeDir()
	return &FileStore{path: filepath.Join(home, ".config", "reunite", "token")}
}

// NewFileStoreAt creates a store at an explicit path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Token returns the stored token, or "" if none has been saved.
func (s *FileStore) Token() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token, creating the parent directory if needed.
// The file is user-readable only since it grants account access.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("writing token: %w", err)
	}
	return nil
}

// Clear removes the stored token. Missing file is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token: %w", err)
	}
	return nil
}

// StaticToken is a TokenSource holding a fixed in-memory token. Tests and the
// session cache use it so components don't touch the filesystem.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() (string, error) {
	return string(t), nil
}
