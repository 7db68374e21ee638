package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/pooltrader/ledger"
)

var tradeCmd = &cobra.Command{
	Use:     "trade",
	Aliases: []string{"trades"},
	Short:   "Open, average, exit and delete pooled trades",
	Long: `Work with pooled trades.

Subcommands:
  open    - Open a trade for one or more accounts
  fill    - Average another fill into an open trade
  exit    - Exit some or all of a trade and split the profit
  delete  - Delete a trade
  list    - List trades
  show    - Show one trade

Examples:
  pooltrader trade open GOLDPETAL --strategy swing --qty 10 --price 100 --accounts A,B
  pooltrader trade fill TRD-01H... --qty 10 --price 120
  pooltrader trade exit TRD-01H... --qty 20 --price 130 --confirm
  pooltrader trade delete TRD-01H... --cascade --confirm`,
}

var tradeOpenCmd = &cobra.Command{
	Use:   "open <symbol>",
	Short: "Open a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeOpen,
}

var tradeFillCmd = &cobra.Command{
	Use:   "fill <trade-id>",
	Short: "Add a fill to an open trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeFill,
}

var tradeExitCmd = &cobra.Command{
	Use:   "exit <trade-id>",
	Short: "Exit a trade (preview unless --confirm)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeExit,
}

var tradeDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a trade (preview unless --confirm)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeDelete,
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades",
	Args:  cobra.NoArgs,
	RunE:  runTradeList,
}

var tradeShowCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Show a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeShow,
}

var (
	tradeStrategy string
	tradeQty      string
	tradePrice    string
	tradeFee      string
	tradeAccounts []string
	tradeDate     string
	tradeStatus   string
	exitConfirm   bool
	deleteConfirm bool
	tradeCascade  bool
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeOpenCmd, tradeFillCmd, tradeExitCmd, tradeDeleteCmd, tradeListCmd, tradeShowCmd)

	for _, c := range []*cobra.Command{tradeOpenCmd, tradeFillCmd, tradeExitCmd} {
		c.Flags().StringVar(&tradeQty, "qty", "", "quantity (required)")
		c.Flags().StringVar(&tradePrice, "price", "", "price (required)")
		c.Flags().StringVar(&tradeFee, "fee", "0", "fee")
		_ = c.MarkFlagRequired("qty")
		_ = c.MarkFlagRequired("price")
	}

	tradeOpenCmd.Flags().StringVar(&tradeStrategy, "strategy", "", "strategy name (required)")
	tradeOpenCmd.Flags().StringSliceVar(&tradeAccounts, "accounts", nil, "participating user ids (required)")
	tradeOpenCmd.Flags().StringVar(&tradeDate, "date", "", "entry date YYYY-MM-DD (default today)")
	_ = tradeOpenCmd.MarkFlagRequired("strategy")
	_ = tradeOpenCmd.MarkFlagRequired("accounts")

	tradeExitCmd.Flags().BoolVar(&exitConfirm, "confirm", false, "save the exit")
	tradeDeleteCmd.Flags().BoolVar(&deleteConfirm, "confirm", false, "delete the trade")
	tradeDeleteCmd.Flags().BoolVar(&tradeCascade, "cascade", false, "also delete history and reverse its profit")

	tradeListCmd.Flags().StringVar(&tradeStatus, "status", "", "filter by status: open|closed")
}

// fillArgs parses the shared qty, price and fee flags.
func fillArgs() (qty, price, fee decimal.Decimal, err error) {
	if qty, err = parseDecimal("qty", tradeQty); err != nil {
		return
	}
	if price, err = parseDecimal("price", tradePrice); err != nil {
		return
	}
	fee, err = parseDecimal("fee", tradeFee)
	return
}

func runTradeOpen(cmd *cobra.Command, args []string) error {
	qty, price, fee, err := fillArgs()
	if err != nil {
		return err
	}

	var openedAt time.Time
	if tradeDate != "" {
		if openedAt, err = time.ParseInLocation(time.DateOnly, tradeDate, time.Local); err != nil {
			return fmt.Errorf("date: %w", err)
		}
	}

	dk, done, err := openDesk()
	if err != nil {
		return err
	}
	defer done()

	ids := make([]string, 0, len(tradeAccounts))
	for _, id := range tradeAccounts {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	t, err := dk.OpenTrade(cmd.Context(), ledger.OpenRequest{
		Symbol:     args[0],
		Strategy:   tradeStrategy,
		Qty:        qty,
		Price:      price,
		Fee:        fee,
		AccountIDs: ids,
		OpenedAt:   openedAt,
	})
	if err != nil {
		return fmt.Errorf("open trade: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s Opened %s\n", okMark(), t.ID)
	printTrade(out, t)
	return nil
}

func runTradeFill(cmd *cobra.Command, args []string) error {
	qty, price, fee, err := fillArgs()
	if err != nil {
		return err
	}

	dk, done, err := openDesk()
	if err != nil {
		return err
	}
	defer done()

	t, err := dk.AddFill(cmd.Context(), args[0], qty, price, fee)
	if err != nil {
		return fmt.Errorf("add fill: %w", err)
	}
	printTrade(cmd.OutOrStdout(), t)
	return nil
}

func runTradeExit(cmd *cobra.Command, args []string) error {
	qty, price, fee, err := fillArgs()
	if err != nil {
		return err
	}

	dk, done, err := openDesk()
	if err != nil {
		return err
	}
	defer done()

	exit := dk.PreviewExit
	if exitConfirm {
		exit = dk.ExitTrade
	}
	res, err := exit(cmd.Context(), args[0], qty, price, fee)
	if err != nil {
		return fmt.Errorf("exit trade: %w", err)
	}

	out := cmd.OutOrStdout()
	printExit(out, res, !exitConfirm)
	if !exitConfirm {
		fmt.Fprintln(out, paint(mutedStyle, "Run again with --confirm to save this exit."))
	}
	return nil
}

func runTradeDelete(cmd *cobra.Command, args []string) error {
	dk, done, err := openDesk()
	if err != nil {
		return err
	}
	defer done()

	out := cmd.OutOrStdout()
	if !deleteConfirm {
		t, err := dk.Trade(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("delete trade: %w", err)
		}
		history, err := dk.History(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("delete trade: %w", err)
		}
		report, err := ledger.PlanDeletion(t, history, tradeCascade)
		if err != nil {
			return fmt.Errorf("delete trade: %w", err)
		}
		fmt.Fprintf(out, "Would delete %s (%s) with %d history records and %d profit reversals.\n",
			report.TradeID, report.Symbol, len(report.RemovedHistory), len(report.Reversals))
		fmt.Fprintln(out, paint(mutedStyle, "Run again with --confirm to delete."))
		return nil
	}

	report, err := dk.DeleteTrade(cmd.Context(), args[0], tradeCascade)
	if err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	printDeletion(out, report)
	return nil
}

func runTradeList(cmd *cobra.Command, args []string) error {
	var status ledger.Status
	if tradeStatus != "" {
		var err error
		if status, err = ledger.ParseStatus(tradeStatus); err != nil {
			return err
		}
	}

	dk, done, err := openDesk()
	if err != nil {
		return err
	}
	defer done()

	trades, err := dk.Trades(cmd.Context(), status)
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	printTrades(cmd.OutOrStdout(), trades)
	return nil
}

func runTradeShow(cmd *cobra.Command, args []string) error {
	dk, done, err := openDesk()
	if err != nil {
		return err
	}
	defer done()

	t, err := dk.Trade(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("show trade: %w", err)
	}
	printTrade(cmd.OutOrStdout(), t)
	return nil
}
