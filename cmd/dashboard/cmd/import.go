package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethvourc/stockPriceDashboard/history"
)

var importCmd = &cobra.Command{
	Use:   "import FILE...",
	Short: "Import bar files into the local history archive",
	Long: `Import reads bar files and stores them in the SQLite history archive.
Supported formats: plain CSV, xz-compressed CSV (.csv.xz), and zip
archives containing CSV files.

Example:
  dashboard import --symbol AAPL aapl-2024.csv.xz`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

var importSymbol string

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importSymbol, "symbol", "s", "", "symbol the imported bars belong to (required)")
	_ = importCmd.MarkFlagRequired("symbol")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := history.Open(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, path := range args {
		bars, err := history.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		id, err := store.SaveFetch(cmd.Context(), importSymbol, "import", "file", bars)
		if err != nil {
			return fmt.Errorf("store %s: %w", path, err)
		}
		fmt.Printf("Imported %d bars from %s (fetch %s)\n", len(bars), path, id)
	}
	return nil
}
