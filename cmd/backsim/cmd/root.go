package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backsim",
	Short: "A deterministic backtester for mean-reversion trading rules",
	Long: `Backsim evaluates trading rules against historical price series by
simulating order execution, cash/commission accounting, and return
measurement, without risking real capital.

It provides tools for:
  - Backtesting Bollinger-band mean-reversion strategies on daily bars
  - Deterministic replay: identical input and configuration always yield
    an identical trade ledger and returns analysis
  - Journaling closed trades and equity curves to CSV or SQLite`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
