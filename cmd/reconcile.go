package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/valops/vacct"
	"github.com/valops/vacct/solrpc"
)

type reconcileCmd struct {
	markToMarket string
}

func (*reconcileCmd) Name() string { return "reconcile" }
func (*reconcileCmd) Synopsis() string {
	return "check the recorded books against live on-chain balances"
}
func (*reconcileCmd) Usage() string {
	return `vacct reconcile [-mtm <sol>]

  Takes an atomic balance snapshot of the operational accounts, replays the
  full recorded history, and compares the expected balance against the
  actual one. A difference within the configured tolerance is OK.

  The -mtm flag adds a mark-to-market adjustment (in SOL) to the expected
  balance, for value accrued on-chain but not yet observed as a transfer.
`
}

func (c *reconcileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.markToMarket, "mtm", "", "Mark-to-market adjustment in SOL.")
}

func (c *reconcileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var mtm vacct.Lamports
	if c.markToMarket != "" {
		if mtm, err = vacct.ParseLamports(c.markToMarket); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -mtm: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	client := solrpc.New(Endpoint())
	snapshot, err := client.Balances(ctx, []string{cfg.VoteAccount, cfg.Identity, cfg.WithdrawAuthority})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching balances: %v\n", err)
		return subcommands.ExitFailure
	}

	rep := newReporter(db, cfg)
	rep.snapshot = &snapshot
	rep.markToMarket = mtm

	report, err := rep.Report(0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	rec := report.Reconciliation
	fmt.Printf("Snapshot slot %d, actual balance %s SOL.\n", rec.Slot, rec.Actual)
	fmt.Printf("Expected from books: %s SOL (mark-to-market %s).\n", rec.Expected, mtm)
	fmt.Printf("Difference %s SOL, tolerance %s SOL: %s.\n", rec.Difference.SignedString(), rec.Tolerance, rec.Status)
	if rec.Status != vacct.StatusOK {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
