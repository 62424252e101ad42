package vacct

import "github.com/shopspring/decimal"

var lamportsPerSOL = decimal.New(int64(LamportsPerSOL), 0)

// lamportsAt converts a quote-currency value back to lamports at the
// given unit price. Used only to fold off-chain costs into the integer
// reconciliation; display values never round-trip through this.
func lamportsAt(value, price Money) Lamports {
	if price.IsZero() {
		return 0
	}
	return Lamports(value.Decimal().Div(price.Decimal()).Mul(lamportsPerSOL).IntPart())
}

// ReportInput is everything one report run consumes. The engine treats
// all of it as an immutable snapshot; collaborators that fetched it are
// free to refresh their own copies concurrently.
type ReportInput struct {
	Events       []TransferEvent
	Costs        []CostEntry
	Prices       *PriceSeries
	Snapshot     *BalanceSnapshot // nil skips reconciliation
	MarkToMarket Lamports         // signed valuation delta supplied by the caller
	Year         int              // 0 reports the full history
}

// Report is the assembled output of one run.
type Report struct {
	Year           int                   `json:"year,omitempty"`
	Entries        []LedgerEntry         `json:"entries"`
	Unclassified   []TransferEvent       `json:"unclassified,omitempty"`
	Totals         LedgerTotals          `json:"totals"`
	Reconciliation *ReconciliationResult `json:"reconciliation,omitempty"`
	PriceFallbacks int                   `json:"price_fallbacks,omitempty"`
}

// BuildReport runs the full pipeline: categorize transfers, replay the
// capital pool over the whole history, schedule reimbursements, fold in
// costs, assemble the ordered ledger and reconcile against the snapshot.
//
// The year filter applies to the output entries only. Replay and totals
// always cover the full history, because a seed in one year can be
// consumed by a withdrawal years later.
//
// A reconciliation failure (non-atomic snapshot) is returned as the error
// alongside a complete report; it never suppresses the ledger.
func BuildReport(in ReportInput, c Config) (*Report, error) {
	if in.Prices == nil {
		in.Prices = NewPriceSeries(c.FallbackPrice)
	}
	ct := Categorize(in.Events, c)

	poolEntries := applyCapitalPool(ct.Seeds, ct.Withdrawals, in.Prices, c)
	costEntries := costLedgerEntries(in.Costs, in.Prices, c)
	entries := assemble(poolEntries, costEntries)

	r := &Report{
		Year:         in.Year,
		Entries:      entries,
		Unclassified: ct.Other,
		Totals:       totals(ct, entries, in.Prices, c),
	}
	if in.Year != 0 {
		r.Entries = FilterYear(entries, in.Year)
	}
	r.PriceFallbacks = in.Prices.FallbackCount()

	if in.Snapshot != nil {
		result, err := Reconcile(r.Totals, in.MarkToMarket, *in.Snapshot, c.Tolerance)
		if err != nil {
			return r, err
		}
		r.Reconciliation = &result
	}
	return r, nil
}

// totals aggregates the full-history lamport flows.
//
// Deposits and gross withdrawals come straight from the transfer amounts.
// Income is taxable revenue plus reimbursements. Off-chain costs and
// their reimbursements enter in lamports at the entry-date price when the
// configuration says they were paid from tracked accounts.
func totals(ct CategorizedTransfers, entries []LedgerEntry, prices *PriceSeries, c Config) LedgerTotals {
	var t LedgerTotals
	for _, s := range ct.Seeds {
		t.Deposits += s.Amount
	}
	for _, w := range ct.Withdrawals {
		t.WithdrawalsGross += w.Amount
	}
	for _, e := range entries {
		switch e.Kind {
		case Revenue, Reimbursement:
			t.Income += entryLamports(e, prices, c)
		case Expense:
			t.Expenses += entryLamports(e, prices, c)
		}
	}
	return t
}

// entryLamports returns the entry's flow in lamports, converting
// quote-currency-only entries at the entry date when configured, and zero
// when off-chain flows are excluded from reconciliation.
func entryLamports(e LedgerEntry, prices *PriceSeries, c Config) Lamports {
	if e.SourceAmount != nil {
		return *e.SourceAmount
	}
	if !c.ReconcileOffChainCosts {
		return 0
	}
	price, _ := prices.Resolve(e.Date)
	return lamportsAt(e.Value, price)
}
