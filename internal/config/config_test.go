package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded default = %+v\nhardcoded = %+v", cfg, DefaultConfig())
	}
	if cfg.Session.WorkDuration() != 10*time.Minute {
		t.Errorf("WorkDuration() = %v", cfg.Session.WorkDuration())
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	yml := "session:\n  work_minutes: 25\nnotify:\n  dismiss_after: 1500ms\nstorage:\n  backend: memory\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Session.WorkMinutes != 25 {
		t.Errorf("WorkMinutes = %d, expected 25", cfg.Session.WorkMinutes)
	}
	if cfg.Notify.DismissAfter != 1500*time.Millisecond {
		t.Errorf("DismissAfter = %v", cfg.Notify.DismissAfter)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("Backend = %q", cfg.Storage.Backend)
	}
	// Untouched keys keep defaults
	if cfg.Session.RewardTiles != 5 || cfg.Hotbar.MaxSlots != 8 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("session: [1, 2"), 0o644)
	if _, err := Load(bad); err == nil {
		t.Error("malformed custom config should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("session:\n  work_minutes: 0\n"), 0o644)
	_, err := Load(invalid)
	if err == nil || !strings.Contains(err.Error(), "work_minutes") {
		t.Errorf("invalid config error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"negative reward", func(c *Config) { c.Session.RewardTiles = -1 }, "reward_tiles"},
		{"negative starter", func(c *Config) { c.Session.StarterTiles = -1 }, "starter_tiles"},
		{"no slots", func(c *Config) { c.Hotbar.MaxSlots = 0 }, "max_slots"},
		{"no dismiss", func(c *Config) { c.Notify.DismissAfter = 0 }, "dismiss_after"},
		{"no backend", func(c *Config) { c.Storage.Backend = "" }, "backend"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.field) {
				t.Errorf("Validate() = %v, expected error mentioning %s", err, tc.field)
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}
