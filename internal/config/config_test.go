package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvPollInterval, "")

	cfg, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL() != DefaultBaseURL {
		t.Errorf("base URL = %q, want %q", cfg.BaseURL(), DefaultBaseURL)
	}
	if cfg.PollInterval() != DefaultPollInterval {
		t.Errorf("poll interval = %v, want %v", cfg.PollInterval(), DefaultPollInterval)
	}
	if filepath.Base(cfg.DataDir()) != DefaultDataDir {
		t.Errorf("data dir = %q, want it to end in %q", cfg.DataDir(), DefaultDataDir)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://localhost:8000/api/v1")
	t.Setenv(EnvDataDir, "/tmp/reelcut-test")
	t.Setenv(EnvPollInterval, "10")

	cfg, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL() != "http://localhost:8000/api/v1" {
		t.Errorf("base URL override not applied: %q", cfg.BaseURL())
	}
	if cfg.DataDir() != "/tmp/reelcut-test" {
		t.Errorf("data dir override not applied: %q", cfg.DataDir())
	}
	if cfg.TokenPath() != "/tmp/reelcut-test/token" {
		t.Errorf("token path = %q", cfg.TokenPath())
	}
	if cfg.ReportsDBPath() != "/tmp/reelcut-test/reports.db" {
		t.Errorf("reports db path = %q", cfg.ReportsDBPath())
	}
	if cfg.PollInterval() != 10*time.Second {
		t.Errorf("poll interval = %v, want 10s", cfg.PollInterval())
	}
}

func TestInvalidPollInterval(t *testing.T) {
	for _, v := range []string{"abc", "0", "-3"} {
		t.Setenv(EnvPollInterval, v)
		if _, err := New(); err == nil {
			t.Errorf("poll interval %q should be rejected", v)
		}
	}
}
