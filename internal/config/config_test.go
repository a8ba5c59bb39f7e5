package config

import (
	"os"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.BaseURL == "" {
		t.Error("default base URL should not be empty")
	}
	if !cfg.Feed.StartMuted {
		t.Error("feed should default to starting muted")
	}
	if cfg.Feed.VisibilityThreshold != 0.6 {
		t.Errorf("default threshold = %v, want 0.6", cfg.Feed.VisibilityThreshold)
	}
	if cfg.Feed.KeepSuppressionOnUnmount {
		t.Error("suppression should default to clearing on unmount")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	os.Setenv("REEL_API_URL", "http://localhost:9999")
	defer os.Unsetenv("REEL_API_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:9999" {
		t.Errorf("BaseURL = %q, want the env override", cfg.API.BaseURL)
	}
}
