// Package config provides client configuration for the reelcut CLI.
// Configuration is loaded from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.reelcut.app/api/v1"

	// DefaultPollInterval is how often project status is re-fetched while
	// a project is queued or processing.
	DefaultPollInterval = 5 * time.Second

	// DefaultDataDir is the per-user directory (under the home directory)
	// holding the token file and the local report archive.
	DefaultDataDir = ".reelcut"

	// Environment variable names.
	EnvBaseURL      = "REELCUT_API_URL"
	EnvDataDir      = "REELCUT_DATA_DIR"
	EnvPollInterval = "REELCUT_POLL_INTERVAL"

	// TokenFilename is the bearer token file inside the data dir.
	TokenFilename = "token"

	// ReportsDBFilename is the report archive database inside the data dir.
	ReportsDBFilename = "reports.db"
)

// Config holds resolved client configuration.
type Config struct {
	baseURL      string
	dataDir      string
	pollInterval time.Duration
}

// New creates a Config with defaults and environment variable overrides.
func New() (*Config, error) {
	cfg := &Config{
		baseURL:      DefaultBaseURL,
		dataDir:      defaultDataDir(),
		pollInterval: DefaultPollInterval,
	}

	if u := os.Getenv(EnvBaseURL); u != "" {
		cfg.baseURL = u
	}
	if d := os.Getenv(EnvDataDir); d != "" {
		cfg.dataDir = d
	}
	if p := os.Getenv(EnvPollInterval); p != "" {
		secs, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPollInterval, err)
		}
		if secs < 1 {
			return nil, fmt.Errorf("invalid %s: must be at least 1 second", EnvPollInterval)
		}
		cfg.pollInterval = time.Duration(secs) * time.Second
	}

	return cfg, nil
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Config) BaseURL() string { return c.baseURL }

// DataDir returns the per-user data directory.
func (c *Config) DataDir() string { return c.dataDir }

// TokenPath returns the full path to the bearer token file.
func (c *Config) TokenPath() string { return filepath.Join(c.dataDir, TokenFilename) }

// ReportsDBPath returns the full path to the report archive database.
func (c *Config) ReportsDBPath() string { return filepath.Join(c.dataDir, ReportsDBFilename) }

// PollInterval returns the project status poll interval.
func (c *Config) PollInterval() time.Duration { return c.pollInterval }

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}
