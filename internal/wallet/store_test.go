package wallet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONStoreSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wallets.json")
	store := NewJSONStore(path)

	w := &Wallet{
		Name:      "full",
		Address:   "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		Type:      TypeSigning,
		KeyRef:    "tmbcli.full",
		IsDefault: true,
		CreatedAt: "2024-01-01T00:00:00Z",
	}
	require.NoError(t, store.Save([]*Wallet{w}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, w, loaded[0])
}

func TestJSONStoreLoadNoFile(t *testing.T) {
	wallets, err := NewJSONStore(filepath.Join(t.TempDir(), "missing.json")).Load()
	require.NoError(t, err)
	assert.Nil(t, wallets, "loading a missing file should return nil, nil")
}

func TestJSONStoreSaveRestrictivePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	require.NoError(t, NewJSONStore(path).Save([]*Wallet{{Name: "w", Address: "0x1"}}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if info.Mode().Perm() != 0 { // Unix only
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestJSONStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json")
	require.NoError(t, os.WriteFile(path, []byte("{not valid json"), 0o600))

	_, err := NewJSONStore(path).Load()
	require.Error(t, err)
}

func TestManagerPersistsThroughJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")

	mgr := NewManager(WithStore(NewJSONStore(path)))
	require.NoError(t, mgr.Add("persisted", &Wallet{Address: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"}))

	mgr2 := NewManager(WithStore(NewJSONStore(path)))
	w, err := mgr2.Get("persisted")
	require.NoError(t, err)
	assert.Equal(t, TypeWatchOnly, w.Type)
}
