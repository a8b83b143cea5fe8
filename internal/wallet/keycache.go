package wallet

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// KeyCache is the unlock cache: decrypted keys kept in a 0600 file so
// repeated commands do not prompt for the keychain. "wallet lock" clears it.
type KeyCache struct {
	path string
}

// NewKeyCache returns a cache stored under dir. An empty dir selects the
// per-user OS cache directory.
func NewKeyCache(dir string) *KeyCache {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = os.TempDir()
		}
		dir = filepath.Join(base, keychainService)
	}
	return &KeyCache{path: filepath.Join(dir, "session.json")}
}

// Path returns the cache file location.
func (c *KeyCache) Path() string { return c.path }

// load returns an empty map (never nil) on any error.
func (c *KeyCache) load() map[string]string {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return make(map[string]string)
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return make(map[string]string)
	}
	return m
}

func (c *KeyCache) save(m map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return err
	}
	_ = os.Chmod(c.path, 0o600)
	return nil
}

// Snapshot returns a copy of every cached entry in one read.
func (c *KeyCache) Snapshot() map[string]string {
	return c.load()
}

// Get returns a cached key for ref.
func (c *KeyCache) Get(ref string) (string, bool) {
	v, ok := c.load()[ref]
	return v, ok
}

// Unlocked reports whether the wallet name has a cached key.
func (c *KeyCache) Unlocked(name string) bool {
	_, ok := c.Get(keyRef(name))
	return ok
}

// PutAll merges keys into the cache with a single read and write.
func (c *KeyCache) PutAll(keys map[string]string) error {
	if len(keys) == 0 {
		return nil
	}
	m := c.load()
	for ref, hexKey := range keys {
		m[ref] = hexKey
	}
	return c.save(m)
}

// Remove evicts a single reference.
func (c *KeyCache) Remove(ref string) {
	m := c.load()
	if _, ok := m[ref]; !ok {
		return
	}
	delete(m, ref)
	_ = c.save(m)
}

// Clear removes the cache file.
func (c *KeyCache) Clear() error {
	err := os.Remove(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Active reports whether any key is cached.
func (c *KeyCache) Active() bool {
	return len(c.load()) > 0
}
