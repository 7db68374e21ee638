package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "INR", cfg.Display.Currency)
	assert.Equal(t, "./pooltrader.sqlite", cfg.Database.Path)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: true,
			errMsg:  "database.path is required",
		},
		{
			name:    "missing currency",
			mutate:  func(c *Config) { c.Display.Currency = "" },
			wantErr: true,
			errMsg:  "display.currency is required",
		},
		{
			name:    "unknown currency",
			mutate:  func(c *Config) { c.Display.Currency = "XYZ" },
			wantErr: true,
			errMsg:  "unknown currency",
		},
		{
			name:    "missing addr",
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantErr: true,
			errMsg:  "server.addr is required",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
			errMsg:  "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pool.yaml")

	cfg := Default()
	cfg.Display.Currency = "USD"
	cfg.Database.Path = "/tmp/ledger.db"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveAndLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pool.json")

	cfg := Default()
	cfg.Log.Level = "debug"
	require.NoError(t, cfg.SaveToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level": "debug"`)

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", loaded.Log.Level)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  path: other.db\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.Database.Path)
	assert.Equal(t, "INR", cfg.Display.Currency)
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("display:\n  currency: XYZ\n"), 0644))
	_, err = LoadFromFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDatabasePath: "/data/pool.db",
		EnvCurrency:     "usd",
		EnvLogLevel:     "warn",
	}

	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "/data/pool.db", cfg.Database.Path)
	assert.Equal(t, "USD", cfg.Display.Currency)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadUsesEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvDatabasePath, "env.db")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Database.Path)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(EnvHTTPAddr, "")
	os.Unsetenv(EnvHTTPAddr)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvHTTPAddr+"=127.0.0.1:9999\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	_, err = ParseLevel("trace")
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir for toolchains older than Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
