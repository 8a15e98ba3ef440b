package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quantmill/backsim/backtest"
	"github.com/quantmill/backsim/config"
	"github.com/quantmill/backsim/feed"
	"github.com/quantmill/backsim/journal"
	"github.com/quantmill/backsim/strategies"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest from a config file",
	Long: `Run a backtest using settings from a configuration file.

The config file selects the strategy and its parameters, the broker's
starting cash and commission rate, the bar dataset, and an optional journal.

Example:
  backsim run --config examples/configs/bollinger.yaml`,
	RunE: runRun,
}

var (
	runConfigPath  string
	runDataPath    string
	runQuiet       bool
	runTimeReturns bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.Flags().StringVarP(&runDataPath, "data", "d", "", "bar dataset (.csv, .csv.xz, or .zip), overrides config")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "suppress per-bar decision/fill log lines")
	runCmd.Flags().BoolVar(&runTimeReturns, "time-returns", false, "print the per-bar time-return mapping")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dataPath := cfg.Data.File
	if runDataPath != "" {
		dataPath = runDataPath
	}
	if dataPath == "" {
		return fmt.Errorf("no dataset: set data.file in the config or pass --data")
	}

	series, err := feed.Load(dataPath)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	strat, err := strategies.ByName(cfg.Strategy.Name, cfg.Strategy.Period, cfg.Strategy.Devfactor)
	if err != nil {
		return err
	}

	jnl, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer jnl.Close()

	opts := []backtest.Option{backtest.WithJournal(jnl)}
	if !runQuiet {
		opts = append(opts, backtest.WithLog(os.Stdout))
	}

	session := backtest.New(series, strat, backtest.Config{
		InitialCash:    cfg.Broker.InitialCash,
		CommissionRate: cfg.Broker.CommissionRate,
		PeriodsPerYear: cfg.Analyzers.TradingPeriodsPerYear,
	}, opts...)

	fmt.Printf("Running %s over %d bars (%s .. %s)\n\n",
		strat.Name(), series.Len(),
		series.First().Time.Format("2006-01-02"),
		series.Last().Time.Format("2006-01-02"))

	result, err := session.Run()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Starting Portfolio Value: %.2f\n", result.InitialCash)
	fmt.Printf("Final Portfolio Value:    %.2f\n", result.FinalValue)
	fmt.Printf("Trades: %d (wins: %d, losses: %d)\n", len(result.Trades), result.Wins, result.Losses)
	fmt.Println()
	fmt.Printf("Returns Analysis:\n")
	fmt.Printf("  rtot:     %.6f\n", result.Returns.RTot)
	fmt.Printf("  ravg:     %.6f\n", result.Returns.RAvg)
	fmt.Printf("  rnorm:    %.6f\n", result.Returns.RNorm)
	fmt.Printf("  rnorm100: %.2f%%\n", result.Returns.RNorm100)

	if len(result.Trades) > 0 {
		fmt.Println()
		fmt.Println("Trade Ledger:")
		for _, tr := range result.Trades {
			fmt.Printf("  %s  %s -> %s  size %d  entry %.2f  exit %.2f  gross %.2f  net %.2f\n",
				tr.ID,
				tr.EntryTime.Format("2006-01-02"), tr.ExitTime.Format("2006-01-02"),
				tr.Size, tr.EntryPrice, tr.ExitPrice, tr.GrossPnL, tr.NetPnL)
		}
	}

	if runTimeReturns {
		fmt.Println()
		fmt.Println("Time Returns:")
		for _, p := range result.TimeReturns {
			fmt.Printf("  %s  %+.6f\n", p.Time.Format("2006-01-02"), p.Return)
		}
	}

	return nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch strings.ToLower(jc.Type) {
	case "", "none":
		return journal.Discard{}, nil
	case "csv":
		return journal.NewCSV(jc.TradesFile, jc.EquityFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	}
	return nil, fmt.Errorf("unknown journal type %q", jc.Type)
}
