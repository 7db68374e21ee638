package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pooltrader/journal"
	"github.com/rustyeddy/pooltrader/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query trade exit history",
	Long: `Query and export the exit history recorded in the ledger.

Subcommands:
  list    - List exits, optionally for one trade or one day
  export  - Write exits to a CSV file
  org     - Print exits as Org-mode entries

Examples:
  pooltrader history list --trade TRD-01H...
  pooltrader history list --day 2024-03-15
  pooltrader history export -o history.csv
  pooltrader history org --day today`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exits",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export exits to CSV",
	Args:  cobra.NoArgs,
	RunE:  runHistoryExport,
}

var historyOrgCmd = &cobra.Command{
	Use:   "org",
	Short: "Print exits as Org-mode entries",
	Args:  cobra.NoArgs,
	RunE:  runHistoryOrg,
}

var (
	historyTrade  string
	historyDay    string
	historyOutput string
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyExportCmd, historyOrgCmd)

	historyCmd.PersistentFlags().StringVar(&historyTrade, "trade", "", "only exits of this trade")
	historyCmd.PersistentFlags().StringVar(&historyDay, "day", "", "only exits on this day (YYYY-MM-DD or today)")
	historyExportCmd.Flags().StringVarP(&historyOutput, "output", "o", "trade_history.csv", "output CSV path")
}

func loadHistory(cmd *cobra.Command) ([]ledger.HistoryRecord, error) {
	dk, done, err := openDesk()
	if err != nil {
		return nil, err
	}
	defer done()

	if historyDay == "" {
		return dk.History(cmd.Context(), historyTrade)
	}

	day := historyDay
	if day == "today" {
		day = time.Now().Format(time.DateOnly)
	}
	start, end, err := dayBounds(time.Local, day)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	recs, err := dk.HistoryBetween(cmd.Context(), start, end)
	if err != nil || historyTrade == "" {
		return recs, err
	}

	var own []ledger.HistoryRecord
	for _, r := range recs {
		if r.TradeID == historyTrade {
			own = append(own, r)
		}
	}
	return own, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	recs, err := loadHistory(cmd)
	if err != nil {
		return fmt.Errorf("query history: %w", err)
	}
	printHistory(cmd.OutOrStdout(), recs)
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	recs, err := loadHistory(cmd)
	if err != nil {
		return fmt.Errorf("query history: %w", err)
	}
	if err := journal.ExportHistoryCSV(historyOutput, recs); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %d exits to %s\n", okMark(), len(recs), historyOutput)
	return nil
}

func runHistoryOrg(cmd *cobra.Command, args []string) error {
	recs, err := loadHistory(cmd)
	if err != nil {
		return fmt.Errorf("query history: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatHistoriesOrg(recs))
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)
	return start, end, nil
}
