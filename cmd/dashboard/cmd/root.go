package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bethvourc/stockPriceDashboard/config"
	"github.com/bethvourc/stockPriceDashboard/dashboard"
	"github.com/bethvourc/stockPriceDashboard/yahoo"
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Technical-analysis dashboard for stock price series",
	Long: `Dashboard fetches OHLCV price bars, normalizes them into a single
timezone, and computes summary metrics and technical indicators
(SMA, EMA, RSI, MACD, Bollinger Bands) over the close-price series.

It provides commands for:
  - Analyzing a single symbol over a requested period
  - Watching a list of symbols with latest price and momentum
  - Downloading bars into a local SQLite archive
  - Importing bar files (CSV, .csv.xz, .zip) into the archive`,
}

var (
	cfgPath string
	verbose bool
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgPath)
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

func newRunner(cfg *config.Config, logger zerolog.Logger) (*dashboard.Runner, error) {
	source, target, err := cfg.Locations()
	if err != nil {
		return nil, fmt.Errorf("resolve timezones: %w", err)
	}
	return &dashboard.Runner{
		Fetcher: yahoo.NewClient(logger),
		Source:  source,
		Target:  target,
		Params:  cfg.Params(),
		Logger:  logger,
	}, nil
}
