package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tradeIDPattern = regexp.MustCompile(`TRD-[0-9A-Z]{26}`)

// resetFlags puts every flag in the tree back to its default. cobra keeps
// flag values between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the command tree against db and returns stdout.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--db", db, "--no-color", "--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, db string, args ...string) string {
	t.Helper()
	out, err := run(t, db, args...)
	require.NoError(t, err, out)
	return out
}

func TestCLIPooledTrade(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	mustRun(t, db, "account", "add", "A", "--name", "Alice", "--email", "alice@example.com", "--capital", "6000")
	mustRun(t, db, "account", "add", "B", "--name", "Bob", "--email", "bob@example.com", "--capital", "4000")

	out := mustRun(t, db, "trade", "open", "goldpetal", "--strategy", "swing",
		"--qty", "10", "--price", "100", "--accounts", "A,B", "--date", "2024-03-15")
	assert.Contains(t, out, "GOLDPETAL")
	id := tradeIDPattern.FindString(out)
	require.NotEmpty(t, id, out)

	out = mustRun(t, db, "trade", "fill", id, "--qty", "10", "--price", "120")
	assert.Contains(t, out, "110.00")

	out = mustRun(t, db, "trade", "exit", id, "--qty", "20", "--price", "130")
	assert.Contains(t, out, "not saved")
	assert.Contains(t, out, "400.00")

	out = mustRun(t, db, "account", "list")
	assert.NotContains(t, out, "240.00")

	out = mustRun(t, db, "trade", "exit", id, "--qty", "20", "--price", "130", "--confirm")
	assert.Contains(t, out, "Trade closed")

	out = mustRun(t, db, "account", "list")
	assert.Contains(t, out, "240.00")
	assert.Contains(t, out, "160.00")

	out = mustRun(t, db, "summary")
	assert.Contains(t, out, "0 open, 1 closed")

	out = mustRun(t, db, "history", "list", "--trade", id)
	assert.Contains(t, out, id)

	csvPath := filepath.Join(t.TempDir(), "history.csv")
	mustRun(t, db, "history", "export", "-o", csvPath)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), id)

	_, err = run(t, db, "trade", "delete", id, "--confirm")
	require.Error(t, err)

	out = mustRun(t, db, "trade", "delete", id, "--cascade")
	assert.Contains(t, out, "Would delete")

	out = mustRun(t, db, "trade", "delete", id, "--cascade", "--confirm")
	assert.Contains(t, out, "Deleted trade")

	out = mustRun(t, db, "trade", "list")
	assert.Contains(t, out, "(none)")
}

func TestCLIRejectsBadInput(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := run(t, db, "account", "add", "A", "--name", "Alice", "--email", "alice@example.com", "--capital", "lots")
	assert.Error(t, err)

	mustRun(t, db, "account", "add", "A", "--name", "Alice", "--email", "alice@example.com", "--capital", "100")

	_, err = run(t, db, "account", "withdraw", "A", "500")
	assert.Error(t, err)

	out := mustRun(t, db, "account", "deposit", "A", "50")
	assert.Contains(t, out, "150.00")

	_, err = run(t, db, "trade", "open", "X", "--strategy", "s", "--qty", "1", "--price", "1", "--accounts", "Z")
	assert.Error(t, err)

	_, err = run(t, db, "trade", "list", "--status", "pending")
	assert.Error(t, err)
}

func TestCLIConfigInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pooltrader.yaml")

	mustRun(t, filepath.Join(dir, "cli.db"), "config", "init", "-o", path)
	out := mustRun(t, filepath.Join(dir, "cli.db"), "config", "validate", "-f", path)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "INR")
}

func TestCLIConfirmDoesNotCarryOver(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	mustRun(t, db, "account", "add", "A", "--name", "Alice", "--email", "alice@example.com", "--capital", "6000")
	out := mustRun(t, db, "trade", "open", "GOLDPETAL", "--strategy", "swing",
		"--qty", "10", "--price", "100", "--accounts", "A")
	id := tradeIDPattern.FindString(out)
	require.NotEmpty(t, id, out)

	out = mustRun(t, db, "trade", "exit", id, "--qty", "4", "--price", "110", "--confirm")
	assert.Contains(t, out, "Remaining: 6")

	out = mustRun(t, db, "trade", "exit", id, "--qty", "6", "--price", "110")
	assert.Contains(t, out, "not saved")

	out = mustRun(t, db, "trade", "delete", id, "--cascade")
	assert.Contains(t, out, "Would delete")

	out = mustRun(t, db, "trade", "show", id)
	assert.Contains(t, out, "open")
	assert.Contains(t, out, "Qty:      6 @")
}
