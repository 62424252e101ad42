package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
	"github.com/valops/vacct"
	"github.com/valops/vacct/solrpc"
	"github.com/valops/vacct/store"
	"github.com/valops/vacct/web"
)

type serveCmd struct {
	addr    string
	origins string
	refresh string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the ledger over HTTP" }
func (*serveCmd) Usage() string {
	return `vacct serve [-addr <host:port>] [-refresh <cron>]

  Starts an HTTP server exposing the ledger, its CSV export and the latest
  reconciliation under /api. A background schedule keeps the transfer and
  price history current; pass -refresh "" to disable it.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "localhost:5001", "Address to listen on.")
	f.StringVar(&c.origins, "origins", "", "Comma-separated CORS origins allowed to call the API.")
	f.StringVar(&c.refresh, "refresh", "30 3 * * *", "Cron schedule for the background data refresh.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if c.refresh != "" {
		schedule := cron.New()
		if _, err := schedule.AddFunc(c.refresh, func() { c.refreshData(ctx, cfg, db) }); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -refresh schedule: %v\n", err)
			return subcommands.ExitUsageError
		}
		schedule.Start()
		defer schedule.Stop()
	}

	var origins []string
	if c.origins != "" {
		origins = strings.Split(c.origins, ",")
	}
	router := web.NewRouter(newReporter(db, cfg), origins)

	log.Printf("Serving ledger on http://%s", c.addr)
	if err := http.ListenAndServe(c.addr, router); err != nil {
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// refreshData is the scheduled ingestion: new transfers first, then the
// price days needed to value them.
func (c *serveCmd) refreshData(ctx context.Context, cfg vacct.Config, db *store.Store) {
	since := cfg.BootstrapDate
	if last, err := db.LatestTransferDate(); err == nil && !last.IsZero() {
		since = last
	}
	client := solrpc.New(Endpoint())
	events, err := client.Transfers(ctx, []string{cfg.VoteAccount, cfg.Identity, cfg.WithdrawAuthority}, since)
	if err != nil {
		log.Printf("refresh: fetching transfers: %v", err)
	} else if len(events) > 0 {
		if err := db.SaveTransfers(events); err != nil {
			log.Printf("refresh: saving transfers: %v", err)
		} else {
			log.Printf("refresh: recorded %d transfers", len(events))
		}
	}

	series, err := db.Prices(cfg.FallbackPrice)
	if err != nil {
		log.Printf("refresh: loading prices: %v", err)
		return
	}
	from := cfg.BootstrapDate
	series.Values(func(day vacct.Date, _ vacct.Money) bool {
		from = day
		return true
	})
	if err := vacct.UpdatePrices(series, from, vacct.Today()); err != nil {
		log.Printf("refresh: fetching prices: %v", err)
		return
	}
	if err := db.SavePrices(series); err != nil {
		log.Printf("refresh: saving prices: %v", err)
	}
}
