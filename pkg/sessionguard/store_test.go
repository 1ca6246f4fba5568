package sessionguard

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bini-2002/campuscraft/pkg/campusclient"
)

func TestFileStoreLoadMissingFileMeansLoggedOut(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))

	creds, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestFileStoreSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileStore(path)

	saved := &Credentials{
		Token: "tok-abc",
		User: &campusclient.User{
			ID:       "11111111-2222-3333-4444-555555555555",
			Email:    "amy@uni.example",
			UserType: campusclient.UserTypeStudent,
		},
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved.Token, loaded.Token)
	assert.Equal(t, saved.User.ID, loaded.User.ID)
	assert.Equal(t, saved.User.UserType, loaded.User.UserType)
}

func TestFileStoreSaveRestrictsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save(&Credentials{Token: "tok"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "credentials.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(&Credentials{Token: "tok"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tok", loaded.Token)
}

func TestFileStoreLoadCorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewFileStore(path)
	_, err := store.Load()
	assert.Error(t, err)
}

func TestFileStoreLoadEmptyTokenMeansLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"","user":null}`), 0o600))

	store := NewFileStore(path)
	creds, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestFileStoreClearIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(&Credentials{Token: "tok"}))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	creds, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, creds)
}
