package vacct

import "testing"

func TestCapitalPool_WorkedExample(t *testing.T) {
	// Seed 20 SOL, then withdraw 15 and 10. The first withdrawal is fully
	// covered by the pool; the second is covered for 5 and yields 5 of
	// taxable revenue.
	c := testConfig()
	seeds := []TransferEvent{
		transferOn(NewDate(2024, 1, 1), sol(20), testPersonal, testIdentity, "tx-seed"),
	}
	withdrawals := []TransferEvent{
		transferOn(NewDate(2024, 2, 1), sol(15), testIdentity, testPersonal, "tx-w1"),
		transferOn(NewDate(2024, 3, 1), sol(10), testIdentity, testPersonal, "tx-w2"),
	}

	entries := applyCapitalPool(seeds, withdrawals, flatPrices(USD(100)), c)

	want := []struct {
		kind   EntryKind
		amount Lamports
		tx     string
	}{
		{ReturnOfCapital, sol(15), "tx-w1"},
		{Revenue, 0, "tx-w1"},
		{ReturnOfCapital, sol(5), "tx-w2"},
		{Revenue, sol(5), "tx-w2"},
	}
	if len(entries) != len(want) {
		t.Fatalf("applyCapitalPool() returned %d entries, want %d", len(entries), len(want))
	}
	for i, w := range want {
		e := entries[i]
		if e.Kind != w.kind {
			t.Errorf("entry %d kind = %v, want %v", i, e.Kind, w.kind)
		}
		if e.SourceAmount == nil || *e.SourceAmount != w.amount {
			t.Errorf("entry %d amount = %v, want %v", i, e.SourceAmount, w.amount)
		}
		if e.TxID != w.tx {
			t.Errorf("entry %d tx = %q, want %q", i, e.TxID, w.tx)
		}
	}
}

func TestCapitalPool_Conservation(t *testing.T) {
	// For every withdrawal, return of capital plus revenue must equal the
	// gross amount, and the pool remainder must equal seeds minus total
	// returned, to the lamport.
	c := testConfig()
	seeds := []TransferEvent{
		transferOn(NewDate(2023, 2, 1), 7_000_000_001, testPersonal, testIdentity, "s1"),
		transferOn(NewDate(2023, 5, 1), 3_333_333_333, testPersonal, testVote, "s2"),
	}
	withdrawals := []TransferEvent{
		transferOn(NewDate(2023, 6, 1), 2_000_000_000, testIdentity, testPersonal, "w1"),
		transferOn(NewDate(2023, 7, 1), 6_000_000_007, testIdentity, testExchange, "w2"),
		transferOn(NewDate(2023, 8, 1), 4_999_999_999, testIdentity, testStranger, "w3"),
	}

	entries := applyCapitalPool(seeds, withdrawals, flatPrices(USD(100)), c)

	perTx := make(map[string]Lamports)
	var returned Lamports
	for _, e := range entries {
		perTx[e.TxID] += *e.SourceAmount
		if e.Kind == ReturnOfCapital {
			returned += *e.SourceAmount
		}
	}
	for _, w := range withdrawals {
		if perTx[w.TxID] != w.Amount {
			t.Errorf("withdrawal %s: split sums to %v, want %v", w.TxID, perTx[w.TxID], w.Amount)
		}
	}

	pool := newCapitalPool(seeds)
	for _, w := range withdrawals {
		pool.consume(w.Amount)
	}
	var seeded Lamports
	for _, s := range seeds {
		seeded += s.Amount
	}
	if got, want := pool.Remaining(), seeded-returned; got != want {
		t.Errorf("pool remaining = %v, want %v", got, want)
	}
}

func TestCapitalPool_FIFOAcrossLots(t *testing.T) {
	pool := newCapitalPool([]TransferEvent{
		transferOn(NewDate(2023, 1, 1), 10, testPersonal, testIdentity, "s1"),
		transferOn(NewDate(2023, 2, 1), 10, testPersonal, testIdentity, "s2"),
	})
	if got := pool.consume(15); got != 15 {
		t.Fatalf("consume(15) = %v, want 15", got)
	}
	// The first lot must be exhausted before the second is touched.
	if pool.lots[0].remaining != 0 {
		t.Errorf("first lot remaining = %v, want 0", pool.lots[0].remaining)
	}
	if pool.lots[1].remaining != 5 {
		t.Errorf("second lot remaining = %v, want 5", pool.lots[1].remaining)
	}
}

func TestCapitalPool_CrossPeriodReplay(t *testing.T) {
	// A seed from 2023 must still absorb a 2025 withdrawal: the pool is
	// replayed over full history, the year filter only trims the output.
	c := testConfig()
	seeds := []TransferEvent{
		transferOn(NewDate(2023, 3, 1), sol(10), testPersonal, testIdentity, "s1"),
	}
	withdrawals := []TransferEvent{
		transferOn(NewDate(2025, 3, 1), sol(8), testIdentity, testPersonal, "w1"),
	}

	entries := FilterYear(applyCapitalPool(seeds, withdrawals, flatPrices(USD(100)), c), 2025)

	if len(entries) != 2 {
		t.Fatalf("filtered entries = %d, want 2", len(entries))
	}
	if entries[0].Kind != ReturnOfCapital || *entries[0].SourceAmount != sol(8) {
		t.Errorf("entry 0 = %v %v, want full return of capital", entries[0].Kind, *entries[0].SourceAmount)
	}
	if entries[1].Kind != Revenue || *entries[1].SourceAmount != 0 {
		t.Errorf("entry 1 = %v %v, want zero revenue", entries[1].Kind, *entries[1].SourceAmount)
	}
}

func TestCapitalPool_ZeroRevenueRendering(t *testing.T) {
	// The explicit zero revenue entry must render without a sign artifact.
	c := testConfig()
	entries := applyCapitalPool(
		[]TransferEvent{transferOn(NewDate(2024, 1, 1), sol(5), testPersonal, testIdentity, "s1")},
		[]TransferEvent{transferOn(NewDate(2024, 2, 1), sol(5), testIdentity, testPersonal, "w1")},
		flatPrices(USD(100)), c)

	last := entries[len(entries)-1]
	if last.Kind != Revenue {
		t.Fatalf("last entry kind = %v, want Revenue", last.Kind)
	}
	if got := last.SourceAmount.String(); got != "0.000000000" {
		t.Errorf("zero revenue renders %q, want %q", got, "0.000000000")
	}
	if got := last.Value.String(); got[0] == '-' {
		t.Errorf("zero revenue value renders with a sign: %q", got)
	}
}
