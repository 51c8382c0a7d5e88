package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStorePutGet(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Get("focustile-data"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() on empty store: error = %v, expected ErrNotFound", err)
	}

	if err := store.Put("focustile-data", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := store.Put("focustile-data", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("Put() overwrite failed: %v", err)
	}

	got, err := store.Get("focustile-data")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != `{"a":2}` {
		t.Errorf("Get() = %s, expected the overwritten value", got)
	}

	if err := store.Delete("focustile-data"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := store.Get("focustile-data"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete: error = %v, expected ErrNotFound", err)
	}
	if err := store.Delete("focustile-data"); err != nil {
		t.Errorf("Delete() of missing key should succeed, got %v", err)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.Put("focustile-timer", []byte("x"))
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	got, err := store.Get("focustile-timer")
	if err != nil || string(got) != "x" {
		t.Errorf("Get() after reopen = %q, %v", got, err)
	}
}

func TestStoreSessionHistory(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	for i := range 3 {
		start := base.Add(time.Duration(i) * time.Hour)
		_, err := store.RecordSession(SessionRecord{
			Owner:       "alice",
			StartedAt:   start,
			CompletedAt: start.Add(10 * time.Minute),
			Reward:      5,
			Away:        i == 2,
		})
		if err != nil {
			t.Fatalf("RecordSession() failed: %v", err)
		}
	}
	store.RecordSession(SessionRecord{Owner: "bob", StartedAt: base, CompletedAt: base, Reward: 5})

	recent, err := store.RecentSessions("alice", 2)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 sessions with limit, got %d", len(recent))
	}
	if !recent[0].Away || !recent[0].CompletedAt.After(recent[1].CompletedAt) {
		t.Errorf("sessions should be newest first: %+v", recent)
	}
	if recent[0].ID == "" || recent[0].ID == recent[1].ID {
		t.Error("sessions should get distinct generated IDs")
	}
	if !recent[0].StartedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("StartedAt = %v, expected %v", recent[0].StartedAt, base.Add(2*time.Hour))
	}

	stats, err := store.SessionStats("alice")
	if err != nil {
		t.Fatalf("SessionStats() failed: %v", err)
	}
	if stats.Sessions != 3 || stats.TilesRewarded != 15 || stats.AwaySessions != 1 {
		t.Errorf("SessionStats() = %+v", stats)
	}

	empty, err := store.SessionStats("carol")
	if err != nil {
		t.Fatalf("SessionStats() failed: %v", err)
	}
	if empty.Sessions != 0 || !empty.LastCompleted.IsZero() {
		t.Errorf("SessionStats() for unknown owner = %+v", empty)
	}
}

func TestStoreRecordSessionKeepsID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.RecordSession(SessionRecord{ID: "fixed", CompletedAt: time.Now()})
	if err != nil || id != "fixed" {
		t.Fatalf("RecordSession() = %q, %v", id, err)
	}
	if _, err := store.RecordSession(SessionRecord{ID: "fixed", CompletedAt: time.Now()}); err == nil {
		t.Error("duplicate session ID should fail")
	}
}
