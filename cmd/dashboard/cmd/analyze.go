package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bethvourc/stockPriceDashboard/dashboard"
	"github.com/bethvourc/stockPriceDashboard/history"
	"github.com/bethvourc/stockPriceDashboard/indicators"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL",
	Short: "Fetch a symbol and print summary metrics plus indicator values",
	Long: `Analyze fetches bars for one symbol, runs the indicator pipeline, and
prints the summary metrics followed by the most recent indicator rows.

Example:
  dashboard analyze ADBE --period 1mo --rows 10`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzePeriod   string
	analyzeInterval string
	analyzeRows     int
	analyzeOffline  bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzePeriod, "period", "p", "", "time period: 1d, 1wk, 1mo, 1y, max (default from config)")
	analyzeCmd.Flags().StringVarP(&analyzeInterval, "interval", "i", "", "sampling interval (default derived from period)")
	analyzeCmd.Flags().IntVar(&analyzeRows, "rows", 10, "number of trailing indicator rows to print")
	analyzeCmd.Flags().BoolVar(&analyzeOffline, "offline", false, "use bars from the history archive instead of fetching")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger()
	runner, err := newRunner(cfg, logger)
	if err != nil {
		return err
	}

	if analyzeOffline {
		store, err := history.Open(cfg.History.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		runner.Fetcher = history.Fetcher{Store: store}
	}

	period := analyzePeriod
	if period == "" {
		period = cfg.Dashboard.Period
	}

	snap, err := runner.Run(cmd.Context(), dashboard.Request{
		Symbol:    args[0],
		Period:    period,
		Interval:  analyzeInterval,
		ChartType: cfg.Dashboard.ChartType,
	})
	if err != nil {
		return err
	}

	printSummary(snap)
	printIndicators(snap, runner.Params, analyzeRows)
	return nil
}

func printSummary(snap *dashboard.Snapshot) {
	m := snap.Metrics
	fmt.Printf("%s (%s, %d bars)\n", snap.Request.Symbol, snap.Request.Period, snap.Series.Len())
	fmt.Printf("  Last Close:   %.2f\n", m.LastClose)
	if math.IsNaN(m.PctChange) {
		fmt.Printf("  Change:       %+.2f (n/a)\n", m.Change)
	} else {
		fmt.Printf("  Change:       %+.2f (%+.2f%%)\n", m.Change, m.PctChange)
	}
	fmt.Printf("  Range:        %.2f - %.2f\n", m.Low, m.High)
	fmt.Printf("  Volume:       %.0f (avg %.0f)\n", m.TotalVolume, m.AvgVolume)
	fmt.Println()
}

func printIndicators(snap *dashboard.Snapshot, p indicators.Params, rows int) {
	n := snap.Series.Len()
	if rows > n {
		rows = n
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprint(w, "Time")
	names := p.Names()
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)

	for i := n - rows; i < n; i++ {
		fmt.Fprint(w, snap.Series.Bars[i].Time.Format("2006-01-02 15:04"))
		for _, name := range names {
			v := snap.Indicators[name][i]
			if indicators.Defined(v) {
				fmt.Fprintf(w, "\t%.2f", v)
			} else {
				fmt.Fprint(w, "\t-")
			}
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}
