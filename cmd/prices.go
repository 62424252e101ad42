package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/valops/vacct"
)

type pricesCmd struct {
	inception bool
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "fetches daily SOL/USD closes from market data providers" }
func (*pricesCmd) Usage() string {
	return `vacct prices [--inception]

  Fetches daily SOL/USD closing prices and records them in the database.
  CoinGecko is queried first; Binance klines serve as a fallback provider.

  The fetch is incremental from the last recorded price day. The --inception
  flag refetches the whole range from the bootstrap date.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.inception, "inception", false, "Force fetching prices from the bootstrap date.")
}

func (c *pricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := OpenConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	db, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	series, err := db.Prices(cfg.FallbackPrice)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices: %v\n", err)
		return subcommands.ExitFailure
	}

	from := cfg.BootstrapDate
	if !c.inception {
		series.Values(func(day vacct.Date, _ vacct.Money) bool {
			from = day
			return true
		})
	}
	to := vacct.Today()
	if to.Before(from) {
		fmt.Println("Prices are up-to-date. Nothing to fetch.")
		return subcommands.ExitSuccess
	}

	before := series.Len()
	if err := vacct.UpdatePrices(series, from, to); err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching prices: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := db.SavePrices(series); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving prices: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %d new price days.\n", series.Len()-before)
	return subcommands.ExitSuccess
}
