package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bethvourc/stockPriceDashboard/indicators"
)

var watchCmd = &cobra.Command{
	Use:   "watch [SYMBOL...]",
	Short: "Print latest price, session change, and RSI for a watchlist",
	Long: `Watch fetches the current session's 1-minute bars for each symbol
(the configured watchlist when no symbols are given) and prints the
latest price, the move since the session open, and a streaming RSI.

Symbols are fetched concurrently; a symbol that fails is reported
inline without failing the others.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger()
	runner, err := newRunner(cfg, logger)
	if err != nil {
		return err
	}

	symbols := args
	if len(symbols) == 0 {
		symbols = cfg.Watchlist
	}
	if len(symbols) == 0 {
		return fmt.Errorf("no symbols given and the config watchlist is empty")
	}

	entries := runner.Watch(cmd.Context(), symbols)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Symbol\tLast\tChange\t%\tRSI")
	for _, e := range entries {
		if e.Err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\t\n", e.Symbol, e.Err)
			continue
		}
		rsi := "-"
		if indicators.Defined(e.RSI) {
			rsi = fmt.Sprintf("%.1f", e.RSI)
		}
		fmt.Fprintf(w, "%s\t%.2f\t%+.2f\t%+.2f%%\t%s\n", e.Symbol, e.LastPrice, e.Change, e.PctChange, rsi)
	}
	return w.Flush()
}
