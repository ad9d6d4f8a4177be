// ABOUTME: Tests for configuration loading, defaults, and path expansion.
// ABOUTME: Uses XDG env overrides with temp directories.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.GetListen(); got != ":8484" {
		t.Errorf("GetListen() = %s, want :8484", got)
	}
	if got := cfg.GetForecastDays(); got != 30 {
		t.Errorf("GetForecastDays() = %d, want 30", got)
	}
	if cfg.GetDataDir() == "" {
		t.Error("GetDataDir() should never be empty")
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"~", home},
		{"~/data", filepath.Join(home, "data")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoadMissingConfigReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "" || cfg.Listen != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{
		DataDir:      "~/fitlog-data",
		Listen:       "127.0.0.1:9999",
		ForecastDays: 60,
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DataDir != cfg.DataDir {
		t.Errorf("DataDir = %s, want %s", loaded.DataDir, cfg.DataDir)
	}
	if loaded.Listen != cfg.Listen {
		t.Errorf("Listen = %s, want %s", loaded.Listen, cfg.Listen)
	}
	if loaded.GetForecastDays() != 60 {
		t.Errorf("ForecastDays = %d, want 60", loaded.GetForecastDays())
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "fitlog", "config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestServerPassword(t *testing.T) {
	t.Setenv("FITLOG_PASSWORD", "hunter2")
	got, err := ServerPassword()
	if err != nil {
		t.Fatalf("ServerPassword failed: %v", err)
	}
	if got != "hunter2" {
		t.Errorf("ServerPassword() = %s, want hunter2", got)
	}

	t.Setenv("FITLOG_PASSWORD", "")
	if _, err := ServerPassword(); err == nil {
		t.Error("expected error when FITLOG_PASSWORD unset")
	}
}
