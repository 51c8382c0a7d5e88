package storage

import (
	"fmt"
	"strings"

	"github.com/quasilyte/gdata"
)

// DefaultAppName names the per-user data directory of the file backend.
const DefaultAppName = "focustile"

func init() {
	Register("file", func(string) (KV, error) { return OpenFile(DefaultAppName) })
}

// FileStore keeps each key as an item in the per-user application data
// directory. It keeps no session history.
type FileStore struct {
	m *gdata.Manager
}

// OpenFile opens the data directory for appName.
func OpenFile(appName string) (*FileStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open data directory: %w", err)
	}
	return &FileStore{m: m}, nil
}

func (f *FileStore) Get(key string) ([]byte, error) {
	data, err := f.m.LoadItem(itemKey(key))
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read %q: %w", key, err)
	}
	// Cleared items are stored empty
	if len(data) == 0 {
		return nil, ErrNotFound
	}
	return data, nil
}

func (f *FileStore) Put(key string, value []byte) error {
	if err := f.m.SaveItem(itemKey(key), value); err != nil {
		return fmt.Errorf("storage: cannot write %q: %w", key, err)
	}
	return nil
}

func (f *FileStore) Delete(key string) error {
	if err := f.m.SaveItem(itemKey(key), nil); err != nil {
		return fmt.Errorf("storage: cannot delete %q: %w", key, err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }

// itemKey maps a key onto a portable file name.
func itemKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}
