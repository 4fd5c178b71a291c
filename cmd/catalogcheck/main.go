package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/latoulicious/boosterbot/internal/config"
	"github.com/latoulicious/boosterbot/tools"
)

func main() {
	path := flag.String("catalog", "", "Catalog file to check (defaults to the configured path)")
	strict := flag.Bool("strict", false, "Fail when a weighted rarity has no card")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *path != "" {
		cfg.Catalog.Path = *path
	}

	weights, err := cfg.WeightTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid weights: %v\n", err)
		os.Exit(1)
	}

	report, err := tools.CheckCatalog(cfg.Catalog.Path, weights, cfg.Assets.PublicURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	report.Print(os.Stdout)

	if *strict && len(report.Missing) > 0 {
		os.Exit(2)
	}
}
