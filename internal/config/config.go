// Package config loads and saves the persistent application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration.
type Config struct {
	API  APIConfig  `json:"api"`
	Feed FeedConfig `json:"feed"`
	UI   UIConfig   `json:"ui"`
}

// APIConfig holds data-source settings.
type APIConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	CacheEnabled   bool   `json:"cache_enabled"` // keep fetched pages on disk for offline replay
}

// FeedConfig holds playback behaviour settings.
type FeedConfig struct {
	// VisibilityThreshold is the fraction of an item that must be inside
	// the viewport before it autoplays.
	VisibilityThreshold float64 `json:"visibility_threshold"`
	// StartMuted starts the feed muted so autoplay is never rejected.
	StartMuted bool `json:"start_muted"`
	// KeepSuppressionOnUnmount keeps a user's pause of an item across
	// unmount/remount instead of clearing it.
	KeepSuppressionOnUnmount bool `json:"keep_suppression_on_unmount"`
}

// UIConfig holds UI preferences.
type UIConfig struct {
	Theme string `json:"theme"`
	// DiscardMarginRows is how far past the viewport an item's card stays
	// mounted before it is discarded.
	DiscardMarginRows int `json:"discard_margin_rows"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "https://tiktok-video-api.onrender.com",
			TimeoutSeconds: 30,
			CacheEnabled:   true,
		},
		Feed: FeedConfig{
			VisibilityThreshold: 0.6,
			StartMuted:          true,
		},
		UI: UIConfig{
			Theme:             "dark",
			DiscardMarginRows: 120,
		},
	}
}

// DataDir returns the application data directory (~/.reel).
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".reel")
}

// Path returns the path to the config file.
func Path() string {
	return filepath.Join(DataDir(), "config.json")
}

// Load reads config from disk, or returns defaults when no file exists.
// The REEL_API_URL environment variable overrides the configured base URL.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	switch {
	case os.IsNotExist(err):
		// Defaults.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if url := os.Getenv("REEL_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}
	if cfg.Feed.VisibilityThreshold <= 0 || cfg.Feed.VisibilityThreshold > 1 {
		cfg.Feed.VisibilityThreshold = 0.6
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 30
	}
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(DataDir(), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(Path(), data, 0o644)
}
