package cmd

import (
	"fmt"

	"github.com/valops/vacct"
	"github.com/valops/vacct/store"
)

// reporter assembles reports from the books persisted in the store. It is
// shared by the report command and the HTTP server.
type reporter struct {
	store *store.Store
	cfg   vacct.Config

	// snapshot, when set, is attached to the report input so the pipeline
	// reconciles against live balances.
	snapshot     *vacct.BalanceSnapshot
	markToMarket vacct.Lamports
}

func newReporter(s *store.Store, cfg vacct.Config) *reporter {
	return &reporter{store: s, cfg: cfg}
}

// Report replays the full transfer history and returns the report for the
// given year (0 means all years).
func (r *reporter) Report(year int) (*vacct.Report, error) {
	events, err := r.store.Transfers()
	if err != nil {
		return nil, fmt.Errorf("cannot load transfers: %w", err)
	}
	prices, err := r.store.Prices(r.cfg.FallbackPrice)
	if err != nil {
		return nil, fmt.Errorf("cannot load prices: %w", err)
	}
	costs, err := r.store.Costs()
	if err != nil {
		return nil, fmt.Errorf("cannot load costs: %w", err)
	}

	in := vacct.ReportInput{
		Events:       events,
		Costs:        costs,
		Prices:       prices,
		Snapshot:     r.snapshot,
		MarkToMarket: r.markToMarket,
		Year:         year,
	}
	return vacct.BuildReport(in, r.cfg)
}
