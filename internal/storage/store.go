// Package storage provides the key/value backends the canvas state is
// persisted to, plus the completed-session history kept by SQLite.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"time"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// KV is an opaque blob store addressed by string keys.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// SessionRecord is one completed work session.
type SessionRecord struct {
	ID          string // UUID; generated on insert when empty
	Owner       string
	StartedAt   time.Time
	CompletedAt time.Time
	Reward      int
	Away        bool // Completed while the process was not running
}

// SessionStats aggregates the history of one owner.
type SessionStats struct {
	Sessions      int
	TilesRewarded int
	AwaySessions  int
	LastCompleted time.Time
}

// History records completed sessions. Only the SQLite backend keeps one.
type History interface {
	RecordSession(rec SessionRecord) (string, error)
	RecentSessions(owner string, limit int) ([]SessionRecord, error)
	SessionStats(owner string) (*SessionStats, error)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Opener opens a backend rooted at path.
type Opener func(path string) (KV, error)

var (
	backends = make(map[string]Opener)
	mu       sync.RWMutex
)

// Register adds a backend under name. Called from init functions.
// Panics if the name is already taken.
func Register(name string, o Opener) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := backends[name]; exists {
		panic(fmt.Sprintf("storage: backend %q already registered", name))
	}
	backends[name] = o
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenBackend opens the named backend.
func OpenBackend(name, path string) (KV, error) {
	mu.RLock()
	o, ok := backends[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("storage: unknown backend %q (have %v)", name, Backends())
	}
	return o(path)
}

func init() {
	Register("memory", func(string) (KV, error) { return NewMemoryStore(), nil })
}

// MemoryStore is a process-local KV. Values are copied on the way in and out.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *MemoryStore) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = slices.Clone(value)
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// Namespaced prefixes every key so several users can share one backend.
type Namespaced struct {
	kv     KV
	prefix string
}

// NewNamespaced wraps kv. An empty namespace returns a pass-through wrapper.
func NewNamespaced(kv KV, namespace string) *Namespaced {
	prefix := ""
	if namespace != "" {
		prefix = namespace + ":"
	}
	return &Namespaced{kv: kv, prefix: prefix}
}

func (n *Namespaced) Get(key string) ([]byte, error) { return n.kv.Get(n.prefix + key) }

func (n *Namespaced) Put(key string, value []byte) error { return n.kv.Put(n.prefix+key, value) }

func (n *Namespaced) Delete(key string) error { return n.kv.Delete(n.prefix + key) }

// Close is a no-op: the underlying store is shared and closed by its owner.
func (n *Namespaced) Close() error { return nil }
