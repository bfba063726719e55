package session

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.Email()
	assert.ErrorIs(t, err, ErrNotSignedIn)

	require.NoError(t, store.Save("u@x.com", "tok"))

	reopened, err := Open(path)
	require.NoError(t, err)
	email, err := reopened.Email()
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", email)
	assert.Equal(t, "tok", reopened.Token())
}

func TestStore_OpenCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := Open(path)
	assert.Error(t, err)
}

type recordingNavigator struct{ paths []string }

func (r *recordingNavigator) NavigateTo(path string) { r.paths = append(r.paths, path) }

func TestGuard_OnUnauthorized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save("u@x.com", "tok"))

	nav := &recordingNavigator{}
	guard := &Guard{Store: store, Navigator: nav, Logger: log.New(io.Discard, "", 0)}
	guard.OnUnauthorized()

	assert.Empty(t, store.Token())
	assert.Equal(t, []string{LoginPath}, nav.paths)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// повторный выход без файла не ломается
	guard.OnUnauthorized()
	assert.Equal(t, []string{LoginPath, LoginPath}, nav.paths)
}
