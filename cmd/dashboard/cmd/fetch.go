package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethvourc/stockPriceDashboard/history"
	"github.com/bethvourc/stockPriceDashboard/yahoo"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch SYMBOL",
	Short: "Download bars for a symbol into the local history archive",
	Long: `Fetch downloads raw OHLCV bars for one symbol and stores them in the
SQLite history archive so later analyses can run offline.

Example:
  dashboard fetch AAPL --period 1y`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

var fetchPeriod string

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVarP(&fetchPeriod, "period", "p", "", "time period: 1d, 1wk, 1mo, 1y, max (default from config)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger()
	symbol := args[0]

	period := fetchPeriod
	if period == "" {
		period = cfg.Dashboard.Period
	}
	interval := yahoo.IntervalFor(period)

	client := yahoo.NewClient(logger)
	bars, err := client.Fetch(cmd.Context(), symbol, period, interval)
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveFetch(cmd.Context(), symbol, period, interval, bars)
	if err != nil {
		return fmt.Errorf("save fetch: %w", err)
	}

	fmt.Printf("Stored %d bars for %s (fetch %s)\n", len(bars), symbol, id)
	return nil
}
