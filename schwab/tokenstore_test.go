package schwab

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	persister := NewFileTokenStore(path)

	want := TokenSet{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Scope:        "readonly",
		ExpiresAt:    time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}

	require.NoError(t, persister.Save(want))

	got, err := persister.Load()
	require.NoError(t, err)
	assert.Equal(t, want.AccessToken, got.AccessToken)
	assert.Equal(t, want.RefreshToken, got.RefreshToken)
	assert.True(t, want.ExpiresAt.Equal(got.ExpiresAt))
}

func TestFileTokenStore_Load_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	_, err := NewFileTokenStore(path).Load()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.True(t, os.IsNotExist(cfgErr.Cause))
}

func TestFileTokenStore_Load_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	_, err := NewFileTokenStore(path).Load()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.False(t, os.IsNotExist(cfgErr.Cause))
}

func TestTokenStore_ReplaceAndCurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store, err := NewTokenStore(NewFileTokenStore(path), nil)
	require.NoError(t, err)

	_, ok := store.Current()
	assert.False(t, ok)

	tok := TokenSet{AccessToken: "a1", RefreshToken: "r1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Replace(tok))

	got, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "a1", got.AccessToken)

	reloaded, err := NewTokenStore(NewFileTokenStore(path), nil)
	require.NoError(t, err)
	got2, ok := reloaded.Current()
	require.True(t, ok)
	assert.Equal(t, "a1", got2.AccessToken)
}

// TestNewTokenStore_MalformedFilePropagatesConfigError verifies that an
// existing but corrupt token file fails store construction outright,
// unlike a simply-absent file (which starts the store empty).
func TestNewTokenStore_MalformedFilePropagatesConfigError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	_, err := NewTokenStore(NewFileTokenStore(path), nil)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestTokenSet_Expired(t *testing.T) {
	expired := TokenSet{ExpiresAt: time.Now().Add(-time.Minute)}
	assert.True(t, expired.Expired())

	valid := TokenSet{ExpiresAt: time.Now().Add(time.Hour)}
	assert.False(t, valid.Expired())
}
