package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envKeys = []string{
	"TICK_INTERVAL", "HISTORY_SIZE", "LISTEN_ADDR", "UI_MODE", "LOG_LEVEL", "LOG_FORMAT",
	"SQLITE_PATH", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "HTTPS_PROXY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telemetry.Interval != time.Second {
		t.Errorf("interval = %v, want 1s", cfg.Telemetry.Interval)
	}
	if cfg.Telemetry.Capacity != 5 {
		t.Errorf("capacity = %d, want 5", cfg.Telemetry.Capacity)
	}
	if *cfg.Telemetry.Min != -18 || *cfg.Telemetry.Max != -16 {
		t.Errorf("range = [%v, %v], want [-18, -16]", *cfg.Telemetry.Min, *cfg.Telemetry.Max)
	}
	if cfg.Telemetry.TimestampLayout != "2006-01-02 15:04:05" {
		t.Errorf("layout = %q", cfg.Telemetry.TimestampLayout)
	}
	if cfg.UI.Mode != ModeWeb || cfg.Server.Addr != ":8080" {
		t.Errorf("mode/addr = %q/%q", cfg.UI.Mode, cfg.Server.Addr)
	}
	if cfg.AlertsEnabled() {
		t.Error("alerts should be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
telemetry:
  interval: 3s
  capacity: 8
  min: 0
  max: 2.5
server:
  addr: "127.0.0.1:9000"
archive:
  sqlite_path: /tmp/x.db
  retention: 2h
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telemetry.Interval != 3*time.Second {
		t.Errorf("interval = %v, want 3s", cfg.Telemetry.Interval)
	}
	if cfg.Telemetry.Capacity != 8 {
		t.Errorf("capacity = %d, want 8", cfg.Telemetry.Capacity)
	}
	// An explicit zero bound must survive defaulting.
	if *cfg.Telemetry.Min != 0 || *cfg.Telemetry.Max != 2.5 {
		t.Errorf("range = [%v, %v], want [0, 2.5]", *cfg.Telemetry.Min, *cfg.Telemetry.Max)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Archive.SQLitePath != "/tmp/x.db" || cfg.Archive.Retention != 2*time.Hour {
		t.Errorf("archive = %+v", cfg.Archive)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "telemetry:\n  interval: 3s\n")
	t.Setenv("TICK_INTERVAL", "250ms")
	t.Setenv("HISTORY_SIZE", "12")
	t.Setenv("UI_MODE", "tui")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telemetry.Interval != 250*time.Millisecond {
		t.Errorf("interval = %v, want 250ms", cfg.Telemetry.Interval)
	}
	if cfg.Telemetry.Capacity != 12 {
		t.Errorf("capacity = %d, want 12", cfg.Telemetry.Capacity)
	}
	if cfg.UI.Mode != ModeTUI {
		t.Errorf("mode = %q, want tui", cfg.UI.Mode)
	}
	if !cfg.AlertsEnabled() {
		t.Error("alerts should be enabled")
	}
}

func TestLoad_BadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HISTORY_SIZE", "five")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for non-numeric HISTORY_SIZE")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "telemetry: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero interval", func(c *Config) { c.Telemetry.Interval = 0 }},
		{"negative interval", func(c *Config) { c.Telemetry.Interval = -time.Second }},
		{"zero capacity", func(c *Config) { c.Telemetry.Capacity = 0 }},
		{"inverted range", func(c *Config) { lo := -15.0; c.Telemetry.Min = &lo }},
		{"unknown mode", func(c *Config) { c.UI.Mode = "gui" }},
		{"token without chat", func(c *Config) { c.Alert.BotToken = "x" }},
		{"negative threshold", func(c *Config) { c.Alert.SlopeThreshold = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}
