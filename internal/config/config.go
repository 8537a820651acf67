package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// UI modes.
const (
	ModeWeb = "web"
	ModeTUI = "tui"
)

// Config holds all application configuration.
type Config struct {
	Telemetry struct {
		Interval        time.Duration `yaml:"interval"`
		Capacity        int           `yaml:"capacity"`
		Min             *float64      `yaml:"min"`
		Max             *float64      `yaml:"max"`
		TimestampLayout string        `yaml:"timestamp_layout"`
		Seed            uint64        `yaml:"seed"`
	} `yaml:"telemetry"`
	Server struct {
		Addr  string `yaml:"addr"`
		Title string `yaml:"title"`
	} `yaml:"server"`
	UI struct {
		Mode string `yaml:"mode"`
	} `yaml:"ui"`
	Log struct {
		Format string `yaml:"format"`
		Level  string `yaml:"level"`
	} `yaml:"log"`
	Archive struct {
		SQLitePath string        `yaml:"sqlite_path"`
		Retention  time.Duration `yaml:"retention"`
		PruneCron  string        `yaml:"prune_cron"`
	} `yaml:"archive"`
	Summary struct {
		Cron string `yaml:"cron"`
	} `yaml:"summary"`
	Alert struct {
		BotToken       string        `yaml:"bot_token"`
		ChatID         string        `yaml:"chat_id"`
		SlopeThreshold float64       `yaml:"slope_threshold"`
		Cooldown       time.Duration `yaml:"cooldown"`
	} `yaml:"alert"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides
// and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TICK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse TICK_INTERVAL: %w", err)
		}
		c.Telemetry.Interval = d
	}
	if v := os.Getenv("HISTORY_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse HISTORY_SIZE: %w", err)
		}
		c.Telemetry.Capacity = n
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("UI_MODE"); v != "" {
		c.UI.Mode = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Archive.SQLitePath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Alert.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Alert.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Telemetry.Interval == 0 {
		c.Telemetry.Interval = time.Second
	}
	if c.Telemetry.Capacity == 0 {
		c.Telemetry.Capacity = 5
	}
	if c.Telemetry.Min == nil {
		lo := -18.0
		c.Telemetry.Min = &lo
	}
	if c.Telemetry.Max == nil {
		hi := -16.0
		c.Telemetry.Max = &hi
	}
	if c.Telemetry.TimestampLayout == "" {
		c.Telemetry.TimestampLayout = "2006-01-02 15:04:05"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.Title == "" {
		c.Server.Title = "Live Antarctic Data"
	}
	if c.UI.Mode == "" {
		c.UI.Mode = ModeWeb
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Archive.Retention == 0 {
		c.Archive.Retention = 24 * time.Hour
	}
	if c.Archive.PruneCron == "" {
		c.Archive.PruneCron = "0 */10 * * * *"
	}
	if c.Summary.Cron == "" {
		c.Summary.Cron = "0 * * * * *"
	}
	if c.Alert.SlopeThreshold == 0 {
		c.Alert.SlopeThreshold = 0.2
	}
	if c.Alert.Cooldown == 0 {
		c.Alert.Cooldown = 10 * time.Minute
	}
}

// AlertsEnabled reports whether Telegram alerting is configured.
func (c *Config) AlertsEnabled() bool {
	return c.Alert.BotToken != "" && c.Alert.ChatID != ""
}

// Validate checks the loaded configuration for inconsistent values.
func (c *Config) Validate() error {
	if c.Telemetry.Interval <= 0 {
		return NewFieldError("telemetry.interval", "must be positive")
	}
	if c.Telemetry.Capacity < 1 {
		return NewFieldError("telemetry.capacity", "must be at least 1")
	}
	if c.Telemetry.Min == nil || c.Telemetry.Max == nil {
		return NewFieldError("telemetry.min/max", "must be set")
	}
	if *c.Telemetry.Min > *c.Telemetry.Max {
		return NewFieldError("telemetry.min", "must not exceed telemetry.max")
	}
	if c.UI.Mode != ModeWeb && c.UI.Mode != ModeTUI {
		return NewFieldError("ui.mode", fmt.Sprintf("unknown mode %q", c.UI.Mode))
	}
	if c.Archive.Retention < 0 {
		return NewFieldError("archive.retention", "must not be negative")
	}
	if (c.Alert.BotToken == "") != (c.Alert.ChatID == "") {
		return NewFieldError("alert", "bot_token and chat_id must be set together")
	}
	if c.Alert.SlopeThreshold < 0 {
		return NewFieldError("alert.slope_threshold", "must not be negative")
	}
	return nil
}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// NewFieldError reports an invalid field.
func NewFieldError(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalid, field, reason)
}
