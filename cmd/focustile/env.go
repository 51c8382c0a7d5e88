package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/focustile/internal/canvas"
	"github.com/vovakirdan/focustile/internal/config"
	"github.com/vovakirdan/focustile/internal/focus"
	"github.com/vovakirdan/focustile/internal/snapshot"
	"github.com/vovakirdan/focustile/internal/storage"
)

// localOwner owns the session history of the local canvas.
const localOwner = "local"

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}
	applyFlags(&cfg)
	return cfg
}

func applyFlags(cfg *config.Config) {
	if flagStore != "" {
		cfg.Storage.Backend = flagStore
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
}

// newLogger creates a logger writing to w at the configured level.
func newLogger(w io.Writer, level, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// openLogFile opens the log file for append, creating its directory.
func openLogFile(path string) (*os.File, error) {
	path, err := storage.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// openStore opens the configured backend. The history is nil for
// backends that keep none.
func openStore(cfg config.Config) (storage.KV, storage.History, error) {
	kv, err := storage.OpenBackend(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}
	history, _ := kv.(storage.History)
	return kv, history, nil
}

// canvasOptions maps the config onto controller options.
func canvasOptions(cfg config.Config, logger *log.Logger) canvas.Options {
	opts := canvas.DefaultOptions()
	opts.Session = focus.Config{
		Duration: cfg.Session.WorkDuration(),
		Reward:   cfg.Session.RewardTiles,
	}
	opts.StarterTiles = cfg.Session.StarterTiles
	opts.HotbarSlots = cfg.Hotbar.MaxSlots
	opts.DefaultHotbar = cfg.Hotbar.Default
	opts.Owner = localOwner
	opts.Logger = logger
	return opts
}

// headless is a canvas opened without a terminal front end, for the
// one-shot commands.
type headless struct {
	ctrl    *canvas.Controller
	kv      storage.KV
	history storage.History
}

// openHeadless loads the local canvas. Controller notifications are
// printed to stdout.
func openHeadless() *headless {
	cfg := loadConfig()
	logger := newLogger(os.Stderr, cfg.Log.Level, "focustile")

	kv, history, err := openStore(cfg)
	if err != nil {
		fatalf("opening store: %v", err)
	}
	notify := canvas.NotifierFunc(func(msg string) { fmt.Println(msg) })

	ctrl := canvas.New(snapshot.NewRepo(kv), history, nil, notify, canvasOptions(cfg, logger))
	ctrl.Load()
	return &headless{ctrl: ctrl, kv: kv, history: history}
}

func (h *headless) Close() {
	if err := h.kv.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing store: %v\n", err)
	}
}
