package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nholstein/passphrase"
)

// Config holds the simulator settings. Values are read from an optional
// YAML file and then overridden by PASSPHRASE_SIM_* environment
// variables, which may also come from a .env file.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// StorePath persists the device settings. If empty the settings
	// are held in memory, seeded from Label and Protect.
	StorePath    string `yaml:"store_path"`
	DeviceSecret string `yaml:"device_secret"`

	Label   string `yaml:"label"`
	Protect bool   `yaml:"protect"`

	// Overflow is "reject" or "truncate".
	Overflow string `yaml:"overflow"`
}

func defaultConfig() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Label:     "passphrase-sim",
		Protect:   true,
		Overflow:  passphrase.OverflowReject.String(),
	}
}

// LoadConfig reads the configuration file at path, if any, and applies
// environment overrides.
func LoadConfig(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()
	path = envOr("PASSPHRASE_SIM_CONFIG", path)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.LogLevel = envOr("PASSPHRASE_SIM_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOr("PASSPHRASE_SIM_LOG_FORMAT", cfg.LogFormat)
	cfg.StorePath = envOr("PASSPHRASE_SIM_STORE_PATH", cfg.StorePath)
	cfg.DeviceSecret = envOr("PASSPHRASE_SIM_DEVICE_SECRET", cfg.DeviceSecret)
	cfg.Label = envOr("PASSPHRASE_SIM_LABEL", cfg.Label)
	cfg.Protect = envBool("PASSPHRASE_SIM_PROTECT", cfg.Protect)
	cfg.Overflow = envOr("PASSPHRASE_SIM_OVERFLOW", cfg.Overflow)

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if _, err := c.level(); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	if _, err := c.OverflowPolicy(); err != nil {
		return err
	}
	if c.StorePath != "" && c.DeviceSecret == "" {
		return fmt.Errorf("a device secret is required to persist settings to %s", c.StorePath)
	}
	return nil
}

func (c Config) level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	if err != nil {
		return level, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// OverflowPolicy parses the configured overflow policy.
func (c Config) OverflowPolicy() (passphrase.OverflowPolicy, error) {
	switch c.Overflow {
	case passphrase.OverflowReject.String():
		return passphrase.OverflowReject, nil
	case passphrase.OverflowTruncate.String():
		return passphrase.OverflowTruncate, nil
	}
	return 0, fmt.Errorf("overflow policy must be reject or truncate, got %q", c.Overflow)
}

// NewLogger creates the configured logger writing to w.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := c.level()
	opts := slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, &opts))
	}
	return slog.New(slog.NewTextHandler(w, &opts))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
