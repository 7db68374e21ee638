package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show pool capital, profit and trade statistics",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	dk, done, err := openDesk()
	if err != nil {
		return err
	}
	defer done()

	s, err := dk.Summary(cmd.Context())
	if err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	printSummary(cmd.OutOrStdout(), s)
	return nil
}
