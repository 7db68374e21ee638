package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pooltrader/config"
	"github.com/rustyeddy/pooltrader/desk"
	"github.com/rustyeddy/pooltrader/journal"
)

var rootCmd = &cobra.Command{
	Use:   "pooltrader",
	Short: "A shared trading account ledger",
	Long: `Pooltrader keeps the books for a group of people trading from one pool
of capital.

It provides tools for:
  - Managing member accounts and their capital
  - Opening trades and averaging in additional fills
  - Exiting trades and splitting the profit by capital at entry
  - Deleting trades, reversing the profit they distributed
  - Exporting trade history and serving a JSON API`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile  string
	dbPath   string
	logLevel string
	noColor  bool

	cfg *config.Config
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite ledger DB (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// setup loads configuration, applies flag overrides and installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.Database.Path = dbPath
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if noColor {
		c.Display.NoColor = true
	}

	level, err := config.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg = c
	setColor(!c.Display.NoColor)
	return nil
}

// openDesk opens the configured ledger. The returned func closes it.
func openDesk() (*desk.Desk, func(), error) {
	store, err := journal.NewSQLite(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	dk := desk.New(store, slog.Default().With("db", cfg.Database.Path))
	return dk, func() { _ = store.Close() }, nil
}
