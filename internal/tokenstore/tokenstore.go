// Package tokenstore is the durable key-value persistence for the session:
// access token, refresh token and the cached user snapshot, one file per key
// under the client state dir. Tokens are opaque strings; liveness is never
// inferred locally, only from a 401 response.
package tokenstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/model"
)

// Fixed key names; no versioning or migration.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUserData     = "user_data"
)

// Store persists session state under dir. Writes are immediate, no batching.
type Store struct {
	dir string
}

func New(dir string) *Store { return &Store{dir: dir} }

func (s *Store) path(key string) string { return filepath.Join(s.dir, key) }

// Set persists value under key.
func (s *Store) Set(key, value string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path(key), []byte(value), 0o600)
}

// Get returns the stored value, or false when the key is absent.
func (s *Store) Get(key string) (string, bool) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(string(b))
	if v == "" {
		return "", false
	}
	return v, true
}

// Clear removes all three keys. Removal order matters: the refresh token goes
// first so a failed partial clear can never leave a stale access token
// without its refresh companion.
func (s *Store) Clear() error {
	var firstErr error
	for _, key := range []string{KeyRefreshToken, KeyAccessToken, KeyUserData} {
		if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// SaveTokens persists both tokens of a pair.
func (s *Store) SaveTokens(t model.TokenPair) error {
	if err := s.Set(KeyAccessToken, t.Access); err != nil {
		return err
	}
	return s.Set(KeyRefreshToken, t.Refresh)
}

// SaveUser persists the serialized user snapshot.
func (s *Store) SaveUser(u model.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.Set(KeyUserData, string(b))
}

// LoadUser returns the cached user snapshot, or false when absent or corrupt.
func (s *Store) LoadUser() (model.User, bool) {
	v, ok := s.Get(KeyUserData)
	if !ok {
		return model.User{}, false
	}
	var u model.User
	if err := json.Unmarshal([]byte(v), &u); err != nil {
		return model.User{}, false
	}
	return u, true
}
