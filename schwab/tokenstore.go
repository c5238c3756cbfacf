package schwab

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TokenSet is the persisted shape of a Schwab OAuth token, matching the
// fields Schwab's token endpoint returns (access_token, refresh_token,
// id_token, scope, token_type, plus the expiry computed from
// expires_in at the time the token was received).
type TokenSet struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	IDToken      string    `json:"id_token"`
	TokenType    string    `json:"token_type"`
	Scope        string    `json:"scope"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the access token is expired as of now, with a
// small safety margin so a request built "now" doesn't race expiry.
func (t TokenSet) Expired() bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().Add(30 * time.Second).After(t.ExpiresAt)
}

// Persister is the storage backend a TokenStore writes through to.
// FileTokenStore is the only implementation the library ships, but the
// interface lets tests substitute an in-memory one.
type Persister interface {
	Save(TokenSet) error
	Load() (TokenSet, error)
}

// TokenStore holds the current token set in memory behind a RWMutex and
// persists every change through a Persister. It is the single point
// RestClient and StreamSession read credentials from.
type TokenStore struct {
	mu        sync.RWMutex
	current   TokenSet
	hasToken  bool
	persister Persister
	logger    *log.Logger
}

// NewTokenStore creates a TokenStore backed by persister. If a token set
// already exists at the persister's location it is loaded eagerly. A
// persister reporting the backing file is simply absent (the common
// first-run case) is not an error: the store starts empty. A persister
// reporting the file exists but is malformed surfaces its *ConfigError
// unchanged, per load(path)'s documented contract.
func NewTokenStore(persister Persister, logger *log.Logger) (*TokenStore, error) {
	if logger == nil {
		logger = log.Default()
	}
	ts := &TokenStore{persister: persister, logger: logger}

	loaded, err := persister.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ts, nil
		}
		return nil, err
	}
	ts.current = loaded
	ts.hasToken = true
	return ts, nil
}

// Current returns the in-memory token set. The second return value is
// false if no token has ever been stored.
func (ts *TokenStore) Current() (TokenSet, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.current, ts.hasToken
}

// Replace stores a new token set, persisting it before making it visible
// to readers of Current.
func (ts *TokenStore) Replace(tok TokenSet) error {
	if err := ts.persister.Save(tok); err != nil {
		return &TokenStoreError{Op: "save", Cause: err}
	}

	ts.mu.Lock()
	ts.current = tok
	ts.hasToken = true
	ts.mu.Unlock()

	if claims, err := DecodeIDTokenClaims(tok.IDToken); err == nil {
		ts.logger.Printf("token store: replaced token set, id_token subject=%q exp=%v", claims.Subject, claims.Expiry)
	}
	return nil
}

// FileTokenStore persists a TokenSet to a JSON file, writing through a
// temp file and renaming over the target so a reader never observes a
// partially written file.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a file-backed persister rooted at path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Save writes tok to the backing file atomically.
func (f *FileTokenStore) Save(tok TokenSet) error {
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token set: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".tokens-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp token file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod temp token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp token file: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("failed to rename token file into place: %w", err)
	}
	return nil
}

// Load reads the current token set from the backing file. Both an
// absent file and a malformed one are reported as *ConfigError, per
// load(path)'s documented contract; the underlying cause is still
// reachable via errors.Is/errors.As so callers can distinguish "not yet
// authenticated" (os.ErrNotExist) from a genuinely corrupt file.
func (f *FileTokenStore) Load() (TokenSet, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return TokenSet{}, &ConfigError{Field: "token_file: " + f.path, Cause: err}
	}

	var tok TokenSet
	if err := json.Unmarshal(data, &tok); err != nil {
		return TokenSet{}, &ConfigError{Field: "token_file: " + f.path, Cause: fmt.Errorf("malformed token file: %w", err)}
	}
	return tok, nil
}
