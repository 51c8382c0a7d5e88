package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/focustile/internal/canvas"
	"github.com/vovakirdan/focustile/internal/config"
	"github.com/vovakirdan/focustile/internal/grid"
	"github.com/vovakirdan/focustile/internal/snapshot"
	"github.com/vovakirdan/focustile/internal/storage"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func newController(kv storage.KV, clock *fixedClock) *canvas.Controller {
	opts := canvasOptions(config.DefaultConfig(), nil)
	opts.Clock = clock
	ctrl := canvas.New(snapshot.NewRepo(kv), nil, nil, nil, opts)
	ctrl.Load()
	return ctrl
}

func TestExportImportKeepsCanvasAndSession(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)}
	src := newController(storage.NewMemoryStore(), clock)

	if _, err := src.PlaceTile(grid.P(1, 2), "tree"); err != nil {
		t.Fatalf("PlaceTile() failed: %v", err)
	}
	if _, err := src.AddNote("moat next"); err != nil {
		t.Fatalf("AddNote() failed: %v", err)
	}
	if _, err := src.StartSession(); err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := exportCanvas(&buf, src, clock.now); err != nil {
		t.Fatalf("exportCanvas() failed: %v", err)
	}

	dst := storage.NewMemoryStore()
	snap, err := importArchive(newController(dst, clock), &buf)
	if err != nil {
		t.Fatalf("importArchive() failed: %v", err)
	}
	if snap.TilesAvailable != 4 {
		t.Errorf("imported TilesAvailable = %d, expected 4", snap.TilesAvailable)
	}

	// Reopen three minutes later: the session carries on
	clock.now = clock.now.Add(3 * time.Minute)
	restored := newController(dst, clock)
	if tile, ok := restored.Tile(grid.P(1, 2), 0); !ok || tile.Type != "tree" {
		t.Errorf("restored tile = %+v, %v; expected tree", tile, ok)
	}
	if len(restored.Notes()) != 1 {
		t.Errorf("restored %d notes, expected 1", len(restored.Notes()))
	}
	if !restored.Running() || restored.Remaining() != 7*time.Minute {
		t.Errorf("restored session running=%v remaining=%v, expected 7m left",
			restored.Running(), restored.Remaining())
	}
}

func TestImportBrowserExportStopsSession(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)}
	kv := storage.NewMemoryStore()
	ctrl := newController(kv, clock)
	if _, err := ctrl.StartSession(); err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}

	blob := `{"gridData":{"0-0":{"3":{"type":"rocks","rotation":"E","row":0,"col":0,"height":3}}},
		"notes":[],"sessionsCompleted":2,"tilesEarned":15,"tilesUsed":1,"tilesAvailable":14,
		"noteIdCounter":0,"currentHotbarTiles":["rocks"],"currentHeight":3}`

	snap, err := importArchive(ctrl, strings.NewReader(blob))
	if err != nil {
		t.Fatalf("importArchive() failed: %v", err)
	}
	if snap.SessionsCompleted != 2 {
		t.Errorf("SessionsCompleted = %d, expected 2", snap.SessionsCompleted)
	}
	if ctrl.Running() {
		t.Error("import without a timer should stop the running session")
	}
	if got := ctrl.Balance().Available; got != 14 {
		t.Errorf("Available = %d, expected 14", got)
	}
	if tile, ok := ctrl.Tile(grid.P(0, 0), 3); !ok || tile.Type != "rocks" {
		t.Errorf("imported tile = %+v, %v; expected rocks", tile, ok)
	}

	repo := snapshot.NewRepo(kv)
	if rec, err := repo.Timer(); err != nil || rec != nil {
		t.Errorf("Timer() = %+v, %v; expected the old session cleared", rec, err)
	}
	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.Version != snapshot.Version || loaded.TilesAvailable != 14 {
		t.Errorf("stored Version = %d TilesAvailable = %d, expected %d and 14",
			loaded.Version, loaded.TilesAvailable, snapshot.Version)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)}
	kv := storage.NewMemoryStore()
	ctrl := newController(kv, clock)
	if _, err := ctrl.PlaceTile(grid.P(4, 4), "tree"); err != nil {
		t.Fatalf("PlaceTile() failed: %v", err)
	}

	if _, err := importArchive(ctrl, strings.NewReader("not a canvas")); err == nil {
		t.Fatal("importArchive() should reject invalid input")
	}
	if _, ok := ctrl.Tile(grid.P(4, 4), 0); !ok {
		t.Error("a rejected import should leave the canvas alone")
	}
	loaded, err := snapshot.NewRepo(kv).Load()
	if err != nil || loaded.TilesUsed != 1 {
		t.Errorf("stored state = %+v, %v; expected the placed tile kept", loaded, err)
	}
}

func TestApplyFlags(t *testing.T) {
	defer func() { flagStore, flagDBPath, flagLogLevel = "", "", "" }()

	cfg := config.DefaultConfig()
	applyFlags(&cfg)
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("no flags should keep the config backend, got %q", cfg.Storage.Backend)
	}

	flagStore, flagDBPath, flagLogLevel = "memory", "/tmp/x.db", "debug"
	applyFlags(&cfg)
	if cfg.Storage.Backend != "memory" || cfg.Storage.Path != "/tmp/x.db" || cfg.Log.Level != "debug" {
		t.Errorf("flags not applied: %+v %+v", cfg.Storage, cfg.Log)
	}
}
