package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/valops/vacct/solrpc"
)

type fetchCmd struct {
	inception bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetches transfer history from the Solana RPC node" }
func (*fetchCmd) Usage() string {
	return `vacct fetch [--inception]

  Fetches the transfer history of the operational accounts (vote account,
  identity, withdraw authority) from the configured RPC node and appends the
  new events to the database.

  The fetch is incremental: it resumes from the last recorded transfer date.
  The --inception flag ignores the recorded history and refetches everything
  from the bootstrap date.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.inception, "inception", false, "Force fetching the full history from the bootstrap date.")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	since := cfg.BootstrapDate
	if !c.inception {
		if last, err := db.LatestTransferDate(); err == nil && !last.IsZero() {
			since = last
		}
	}

	client := solrpc.New(Endpoint())
	addresses := []string{cfg.VoteAccount, cfg.Identity, cfg.WithdrawAuthority}
	events, err := client.Transfers(ctx, addresses, since)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching transfers: %v\n", err)
		return subcommands.ExitFailure
	}

	if len(events) == 0 {
		fmt.Println("No new transfers found.")
		return subcommands.ExitSuccess
	}

	if err := db.SaveTransfers(events); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving transfers: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %d transfers since %s.\n", len(events), since)
	return subcommands.ExitSuccess
}
