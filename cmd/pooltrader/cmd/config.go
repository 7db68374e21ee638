package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pooltrader/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage pooltrader configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file
  show     - Print the effective configuration

Examples:
  pooltrader config init -o pooltrader.yaml
  pooltrader config validate -f pooltrader.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "pooltrader.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	_ = configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.Default().SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s Created default configuration: %s\n", okMark(), configInitOutput)
	fmt.Fprintf(out, "\nRun with:\n  pooltrader --config %s summary\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	c, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s Configuration valid: %s\n", okMark(), configValidatePath)
	printConfig(cmd, c)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	printConfig(cmd, cfg)
	return nil
}

func printConfig(cmd *cobra.Command, c *config.Config) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Database: %s\n", c.Database.Path)
	fmt.Fprintf(out, "  Currency: %s\n", c.Display.Currency)
	fmt.Fprintf(out, "  HTTP:     %s\n", c.Server.Addr)
	fmt.Fprintf(out, "  Log:      %s\n", c.Log.Level)
}
