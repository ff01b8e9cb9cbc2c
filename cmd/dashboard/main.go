package main

import (
	"os"

	"github.com/bethvourc/stockPriceDashboard/cmd/dashboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
