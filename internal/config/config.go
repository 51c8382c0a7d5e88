// Package config provides YAML-based configuration loading for FocusTile.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the full application configuration.
type Config struct {
	Session SessionConfig `yaml:"session"`
	Hotbar  HotbarConfig  `yaml:"hotbar"`
	Notify  NotifyConfig  `yaml:"notify"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Serve   ServeConfig   `yaml:"serve"`
}

// SessionConfig defines the focus session economy.
type SessionConfig struct {
	WorkMinutes  int `yaml:"work_minutes"`
	RewardTiles  int `yaml:"reward_tiles"`
	StarterTiles int `yaml:"starter_tiles"`
}

// WorkDuration returns the session length.
func (s SessionConfig) WorkDuration() time.Duration {
	return time.Duration(s.WorkMinutes) * time.Minute
}

// HotbarConfig defines the quick-select bar.
type HotbarConfig struct {
	MaxSlots int      `yaml:"max_slots"`
	Default  []string `yaml:"default"`
}

// NotifyConfig defines transient notifications.
type NotifyConfig struct {
	DismissAfter time.Duration `yaml:"dismiss_after"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Used by play; serve logs to stderr
}

// ServeConfig defines the SSH server.
type ServeConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MetricsAddr string        `yaml:"metrics_addr"`
}

// Validate checks that the values are usable.
func (c Config) Validate() error {
	var errs []error
	if c.Session.WorkMinutes <= 0 {
		errs = append(errs, fmt.Errorf("session.work_minutes must be positive, got %d", c.Session.WorkMinutes))
	}
	if c.Session.RewardTiles < 0 {
		errs = append(errs, fmt.Errorf("session.reward_tiles must not be negative, got %d", c.Session.RewardTiles))
	}
	if c.Session.StarterTiles < 0 {
		errs = append(errs, fmt.Errorf("session.starter_tiles must not be negative, got %d", c.Session.StarterTiles))
	}
	if c.Hotbar.MaxSlots <= 0 {
		errs = append(errs, fmt.Errorf("hotbar.max_slots must be positive, got %d", c.Hotbar.MaxSlots))
	}
	if c.Notify.DismissAfter <= 0 {
		errs = append(errs, fmt.Errorf("notify.dismiss_after must be positive, got %s", c.Notify.DismissAfter))
	}
	if c.Storage.Backend == "" {
		errs = append(errs, errors.New("storage.backend is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
