package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/focustile.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			WorkMinutes:  10,
			RewardTiles:  5,
			StarterTiles: 5,
		},
		Hotbar: HotbarConfig{
			MaxSlots: 8,
			Default:  []string{"grass_center", "building_center", "tree", "water_center", "walls_corner"},
		},
		Notify: NotifyConfig{
			DismissAfter: 3 * time.Second,
		},
		Storage: StorageConfig{
			Backend: "sqlite",
			Path:    "~/.focustile/focustile.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.focustile/focustile.log",
		},
		Serve: ServeConfig{
			Address:     ":23235",
			HostKey:     ".ssh/focustile_ed25519",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
