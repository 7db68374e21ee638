package cmd

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:     "account",
	Aliases: []string{"accounts"},
	Short:   "Manage pool member accounts",
	Long: `Create, list and fund the accounts that share the pool.

Examples:
  pooltrader account add A --name Alice --email alice@example.com --capital 6000
  pooltrader account list
  pooltrader account deposit A 1000
  pooltrader account withdraw A 500
  pooltrader account delete A`,
}

var accountAddCmd = &cobra.Command{
	Use:   "add <user-id>",
	Short: "Add an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountAdd,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE:  runAccountList,
}

var accountDepositCmd = &cobra.Command{
	Use:   "deposit <user-id> <amount>",
	Short: "Add capital to an account",
	Args:  cobra.ExactArgs(2),
	RunE:  runAccountAdjust,
}

var accountWithdrawCmd = &cobra.Command{
	Use:   "withdraw <user-id> <amount>",
	Short: "Remove capital from an account",
	Args:  cobra.ExactArgs(2),
	// RunE is set in init: runAccountAdjust refers to accountWithdrawCmd.
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete an account that is not in an open trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountDelete,
}

var (
	accountName    string
	accountEmail   string
	accountCapital string
)

func init() {
	accountWithdrawCmd.RunE = runAccountAdjust
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountAddCmd, accountListCmd, accountDepositCmd, accountWithdrawCmd, accountDeleteCmd)

	accountAddCmd.Flags().StringVar(&accountName, "name", "", "display name (required)")
	accountAddCmd.Flags().StringVar(&accountEmail, "email", "", "email address (required)")
	accountAddCmd.Flags().StringVar(&accountCapital, "capital", "0", "initial capital")
	_ = accountAddCmd.MarkFlagRequired("name")
	_ = accountAddCmd.MarkFlagRequired("email")
}

func parseDecimal(name, s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %q is not a number", name, s)
	}
	return v, nil
}

func runAccountAdd(cmd *cobra.Command, args []string) error {
	capital, err := parseDecimal("capital", accountCapital)
	if err != nil {
		return err
	}

	dk, done, err := openDesk()
	if err != nil {
		return err
	}
	defer done()

	a, err := dk.CreateAccount(cmd.Context(), args[0], accountName, accountEmail, capital)
	if err != nil {
		return fmt.Errorf("add account: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s (%s) with %s\n", okMark(), a.ID, a.Name, money(a.Capital))
	return nil
}

func runAccountList(cmd *cobra.Command, args []string) error {
	dk, done, err := openDesk()
	if err != nil {
		return err
	}
	defer done()

	accounts, err := dk.Accounts(cmd.Context())
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}
	printAccounts(cmd.OutOrStdout(), accounts)
	return nil
}

func runAccountAdjust(cmd *cobra.Command, args []string) error {
	amount, err := parseDecimal("amount", args[1])
	if err != nil {
		return err
	}

	dk, done, err := openDesk()
	if err != nil {
		return err
	}
	defer done()

	adjust := dk.Deposit
	if cmd == accountWithdrawCmd {
		adjust = dk.Withdraw
	}
	a, err := adjust(cmd.Context(), args[0], amount)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s capital is now %s\n", okMark(), a.ID, money(a.Capital))
	return nil
}

func runAccountDelete(cmd *cobra.Command, args []string) error {
	dk, done, err := openDesk()
	if err != nil {
		return err
	}
	defer done()

	if err := dk.DeleteAccount(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted account %s\n", okMark(), args[0])
	return nil
}
