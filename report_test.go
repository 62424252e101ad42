package vacct

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
)

// reportFixture is a small but complete operator history: a seed, two
// withdrawals, an internal hop, an unrelated transfer and one reimbursable
// on-chain cost.
func reportFixture() (ReportInput, Config) {
	c := testConfig()
	events := []TransferEvent{
		transferOn(NewDate(2024, 1, 2), sol(20), testPersonal, testIdentity, "seed"),
		transferOn(NewDate(2024, 2, 1), sol(15), testIdentity, testPersonal, "w1"),
		transferOn(NewDate(2024, 3, 1), sol(10), testIdentity, testExchange, "w2"),
		transferOn(NewDate(2024, 2, 15), sol(3), testIdentity, testVote, "hop"),
		transferOn(NewDate(2024, 2, 20), sol(1), testStranger, testStranger2, "noise"),
	}
	costs := []CostEntry{{
		PeriodStart:  NewDate(2024, 2, 1),
		PeriodEnd:    NewDate(2024, 2, 29),
		Category:     "vote fees",
		Description:  "Vote transaction fees",
		Amount:       sol(2),
		Reimbursable: true,
	}}
	return ReportInput{Events: events, Costs: costs, Prices: flatPrices(USD(100))}, c
}

func TestBuildReport_FullHistory(t *testing.T) {
	in, c := reportFixture()
	r, err := BuildReport(in, c)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}

	// withdrawals: w1 fully covered (ROC 15, Rev 0), w2 covered for 5
	// (ROC 5, Rev 5); costs: gross expense plus full reimbursement
	// (February is within three months of acceptance).
	if len(r.Entries) != 6 {
		t.Fatalf("report has %d entries, want 6", len(r.Entries))
	}
	if len(r.Unclassified) != 1 || r.Unclassified[0].TxID != "noise" {
		t.Errorf("unclassified = %v, want the one noise transfer", r.Unclassified)
	}

	want := LedgerTotals{
		Income:           sol(5) + sol(2), // revenue + reimbursement
		Expenses:         sol(2),
		WithdrawalsGross: sol(25),
		Deposits:         sol(20),
	}
	if r.Totals != want {
		t.Errorf("totals = %+v, want %+v", r.Totals, want)
	}
	if r.PriceFallbacks != 0 {
		t.Errorf("price fallbacks = %d, want 0", r.PriceFallbacks)
	}

	// Entries come out date-ordered.
	for i := 1; i < len(r.Entries); i++ {
		if r.Entries[i].Date.Before(r.Entries[i-1].Date) {
			t.Fatalf("entries out of order at %d: %v after %v", i, r.Entries[i].Date, r.Entries[i-1].Date)
		}
	}
}

func TestBuildReport_InputOrderIndependence(t *testing.T) {
	in, c := reportFixture()
	r, err := BuildReport(in, c)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	want, err := json.Marshal(r.Entries)
	if err != nil {
		t.Fatalf("marshal entries: %v", err)
	}

	// The ledger is a function of the history, not of the order events
	// arrive in: every permutation must serialize to the same bytes.
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled, _ := reportFixture()
		rng.Shuffle(len(shuffled.Events), func(a, b int) {
			shuffled.Events[a], shuffled.Events[b] = shuffled.Events[b], shuffled.Events[a]
		})

		r, err := BuildReport(shuffled, c)
		if err != nil {
			t.Fatalf("BuildReport() on permutation %d: %v", i, err)
		}
		got, err := json.Marshal(r.Entries)
		if err != nil {
			t.Fatalf("marshal entries: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("permutation %d changed the ledger:\ngot  %s\nwant %s", i, got, want)
		}
	}
}

func TestBuildReport_YearFilterKeepsTotals(t *testing.T) {
	in, c := reportFixture()
	// Move the seed into the prior year; the pool must still absorb the
	// 2024 withdrawals and the full-history totals must still include it.
	in.Events[0].Date = NewDate(2023, 6, 1)
	in.Year = 2024

	r, err := BuildReport(in, c)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	for _, e := range r.Entries {
		if e.Date.Year() != 2024 {
			t.Errorf("entry dated %v leaked through the year filter", e.Date)
		}
	}
	if r.Totals.Deposits != sol(20) {
		t.Errorf("deposits = %v, want the 2023 seed included", r.Totals.Deposits)
	}
	// The first 2024 withdrawal is still fully covered by the 2023 seed.
	first := r.Entries[0]
	if first.Kind != ReturnOfCapital || *first.SourceAmount != sol(15) {
		t.Errorf("first entry = %v %v, want ReturnOfCapital 15 SOL", first.Kind, first.SourceAmount)
	}
}

func TestBuildReport_Reconciliation(t *testing.T) {
	in, c := reportFixture()
	// expected = income - expenses - withdrawals + deposits = 7-2-25+20 = 0
	snap := snapshotAt(1, AccountBalance{Address: testVote, Balance: 0})
	in.Snapshot = &snap

	r, err := BuildReport(in, c)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	if r.Reconciliation == nil {
		t.Fatal("reconciliation missing from report")
	}
	if r.Reconciliation.Status != StatusOK {
		t.Errorf("status = %v (diff %v), want OK", r.Reconciliation.Status, r.Reconciliation.Difference)
	}
}

func TestBuildReport_BadSnapshotKeepsLedger(t *testing.T) {
	in, c := reportFixture()
	snap := BalanceSnapshot{
		Slot: 5,
		Balances: []AccountBalance{
			{Address: testVote, Slot: 5},
			{Address: testIdentity, Slot: 6},
		},
	}
	in.Snapshot = &snap

	r, err := BuildReport(in, c)
	if !errors.Is(err, ErrInconsistentSnapshot) {
		t.Fatalf("BuildReport() error = %v, want ErrInconsistentSnapshot", err)
	}
	// The ledger itself must survive a reconciliation failure.
	if r == nil || len(r.Entries) == 0 {
		t.Fatal("report dropped on reconciliation failure")
	}
	if r.Reconciliation != nil {
		t.Error("reconciliation result present despite failure")
	}
}

func TestBuildReport_OffChainCostsSwitch(t *testing.T) {
	in, c := reportFixture()
	in.Costs = append(in.Costs, CostEntry{
		PeriodStart: NewDate(2024, 3, 1),
		PeriodEnd:   NewDate(2024, 3, 31),
		Category:    "hosting",
		Description: "Bare metal server",
		USD:         USD(200), // 2 SOL at the flat 100 USD price
	})

	c.ReconcileOffChainCosts = true
	r, err := BuildReport(in, c)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	if got, want := r.Totals.Expenses, sol(2)+sol(2); got != want {
		t.Errorf("expenses with off-chain costs = %v, want %v", got, want)
	}

	c.ReconcileOffChainCosts = false
	r, err = BuildReport(in, c)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	if got, want := r.Totals.Expenses, sol(2); got != want {
		t.Errorf("expenses without off-chain costs = %v, want %v", got, want)
	}
}
