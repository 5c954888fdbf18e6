package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/nikbrunner/nexus/internal/favicon"
)

// Backend names accepted by Config.Backend.
const (
	BackendAuto   = ""
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds application configuration.
// Values come from the config file, then NEXUS_* environment variables.
type Config struct {
	Backend            string `json:"backend" env:"NEXUS_BACKEND"`
	DataDir            string `json:"dataDir" env:"NEXUS_DATA_DIR"`
	FaviconTemplate    string `json:"faviconTemplate" env:"NEXUS_FAVICON_TEMPLATE"`
	FaviconSize        int    `json:"faviconSize" env:"NEXUS_FAVICON_SIZE"`
	DisableIcons       bool   `json:"disableIcons" env:"NEXUS_DISABLE_ICONS"`
	IconConcurrency    int    `json:"iconConcurrency" env:"NEXUS_ICON_CONCURRENCY"`
	IconTimeoutSeconds int    `json:"iconTimeoutSeconds" env:"NEXUS_ICON_TIMEOUT_SECONDS"`
	DiscardCorrupt     bool   `json:"discardCorrupt" env:"NEXUS_DISCARD_CORRUPT"`
	LogLevel           string `json:"logLevel" env:"NEXUS_LOG_LEVEL"`
	LogFile            string `json:"logFile" env:"NEXUS_LOG_FILE"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Backend:            BackendAuto,
		FaviconTemplate:    favicon.DefaultTemplate,
		FaviconSize:        favicon.DefaultSize,
		IconConcurrency:    8,
		IconTimeoutSeconds: 10,
		LogLevel:           "warn",
	}
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills zero-valued fields from DefaultConfig.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.FaviconTemplate == "" {
		c.FaviconTemplate = defaults.FaviconTemplate
	}
	if c.FaviconSize <= 0 {
		c.FaviconSize = defaults.FaviconSize
	}
	if c.IconConcurrency <= 0 {
		c.IconConcurrency = defaults.IconConcurrency
	}
	if c.IconTimeoutSeconds <= 0 {
		c.IconTimeoutSeconds = defaults.IconTimeoutSeconds
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
}

// ApplyEnv overrides config fields from NEXUS_* environment variables.
// Unset variables leave the current values alone.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	c.applyDefaults()
	return nil
}

// Validate rejects unknown backends.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendJSON, BackendSQLite, BackendMemory:
		return nil
	}
	return fmt.Errorf("unknown backend %q (want json, sqlite or memory)", c.Backend)
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultDir returns the default application directory: ~/.config/nexus
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "nexus"), nil
}

// DefaultConfigFilePath returns the default config path: ~/.config/nexus/config.json
func DefaultConfigFilePath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
