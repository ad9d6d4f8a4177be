// ABOUTME: Fitlog configuration management and storage factory.
// ABOUTME: JSON config under XDG config dir; .env loading for server secrets.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"fitlog/internal/storage"
)

// Config stores fitlog tool configuration.
type Config struct {
	// DataDir is the root directory for data storage; fitlog.db lives
	// here. Supports ~ expansion. Defaults to ~/.local/share/fitlog.
	DataDir string `json:"data_dir,omitempty"`

	// Listen is the HTTP API bind address for `fitlog serve`.
	// Defaults to :8484.
	Listen string `json:"listen,omitempty"`

	// ForecastDays is the default forecast horizon for the series
	// view. Defaults to 30.
	ForecastDays int `json:"forecast_days,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetListen returns the configured HTTP bind address.
func (c *Config) GetListen() string {
	if c.Listen == "" {
		return ":8484"
	}
	return c.Listen
}

// GetForecastDays returns the default forecast horizon in days.
func (c *Config) GetForecastDays() int {
	if c.ForecastDays <= 0 {
		return 30
	}
	return c.ForecastDays
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite store under the configured data directory.
func (c *Config) OpenStorage() (storage.Repository, error) {
	dbPath := filepath.Join(c.GetDataDir(), "fitlog.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitlog", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ServerPassword resolves the HTTP API password: a .env file is loaded
// if present, then the FITLOG_PASSWORD variable is read.
func ServerPassword() (string, error) {
	_ = godotenv.Load()

	password := os.Getenv("FITLOG_PASSWORD")
	if password == "" {
		return "", fmt.Errorf("FITLOG_PASSWORD is not set (export it or add it to .env)")
	}
	return password, nil
}
