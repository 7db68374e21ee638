package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/pooltrader/ledger"
)

// Environment variables that override file settings.
const (
	EnvDatabasePath = "DATABASE_PATH"
	EnvCurrency     = "POOL_CURRENCY"
	EnvHTTPAddr     = "POOL_HTTP_ADDR"
	EnvLogLevel     = "POOL_LOG_LEVEL"
)

// Config is the application configuration
type Config struct {
	Database DatabaseConfig `json:"database" yaml:"database"`
	Display  DisplayConfig  `json:"display" yaml:"display"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// DatabaseConfig locates the SQLite ledger
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// DisplayConfig controls how amounts are shown
type DisplayConfig struct {
	Currency string `json:"currency" yaml:"currency"` // ISO 4217 code
	NoColor  bool   `json:"no_color,omitempty" yaml:"no_color,omitempty"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// LogConfig configures logging
type LogConfig struct {
	Level string `json:"level" yaml:"level"` // debug|info|warn|error
}

// Load reads path when it is not empty, applies a .env file and
// environment overrides, then validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = readFile(path); err != nil {
			return nil, err
		}
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (YAML or JSON) without
// consulting the environment.
func LoadFromFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables looked up with
// getenv. Empty values are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvDatabasePath); v != "" {
		c.Database.Path = v
	}
	if v := getenv(EnvCurrency); v != "" {
		c.Display.Currency = strings.ToUpper(v)
	}
	if v := getenv(EnvHTTPAddr); v != "" {
		c.Server.Addr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Display.Currency == "" {
		return fmt.Errorf("display.currency is required")
	}
	if !ledger.KnownCurrency(c.Display.Currency) {
		return fmt.Errorf("unknown currency: %s", c.Display.Currency)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log.level must be one of debug|info|warn|error, got %q", level)
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./pooltrader.sqlite"},
		Display:  DisplayConfig{Currency: "INR"},
		Server:   ServerConfig{Addr: ":8080"},
		Log:      LogConfig{Level: "info"},
	}
}
