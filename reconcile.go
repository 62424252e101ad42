package vacct

import "errors"

// ErrInconsistentSnapshot is reported when the balances in a snapshot were
// not observed at one consistent slot. Reconciling across slots would
// compare accounts at different moments, so the engine refuses.
var ErrInconsistentSnapshot = errors.New("balance snapshot is not atomic")

// AccountBalance is one account's balance, tagged with the slot it was
// observed at.
type AccountBalance struct {
	Address string   `json:"address"`
	Balance Lamports `json:"lamports"`
	Slot    uint64   `json:"slot"`
}

// BalanceSnapshot is the observed on-chain position of all tracked
// accounts at a single slot.
type BalanceSnapshot struct {
	Slot     uint64           `json:"slot"`
	Balances []AccountBalance `json:"balances"`
}

// Validate checks the snapshot's atomicity: every balance must have been
// observed at the snapshot slot.
func (s BalanceSnapshot) Validate() error {
	for _, b := range s.Balances {
		if b.Slot != s.Slot {
			return ErrInconsistentSnapshot
		}
	}
	return nil
}

// Total sums the balances, counting each address once. Role
// configurations can list the same address under several roles; aliased
// entries must not be double counted.
func (s BalanceSnapshot) Total() Lamports {
	var sum Lamports
	seen := make(map[string]bool, len(s.Balances))
	for _, b := range s.Balances {
		if seen[b.Address] {
			continue
		}
		seen[b.Address] = true
		sum += b.Balance
	}
	return sum
}

// ReconciliationStatus is the outcome of a reconciliation run.
type ReconciliationStatus int

const (
	StatusOK ReconciliationStatus = iota
	StatusVariance
)

func (s ReconciliationStatus) String() string {
	if s == StatusOK {
		return "OK"
	}
	return "VARIANCE"
}

func (s ReconciliationStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// ReconciliationResult compares the ledger's projected position against an
// observed snapshot. All amounts are exact lamport integers; quote-currency
// views of them are derived at presentation time only.
type ReconciliationResult struct {
	Expected   Lamports             `json:"expected"`
	Actual     Lamports             `json:"actual"`
	Difference Lamports             `json:"difference"` // actual - expected
	Tolerance  Lamports             `json:"tolerance"`
	Status     ReconciliationStatus `json:"status"`
	Slot       uint64               `json:"slot"`
}

// Reconcile projects the expected position from the ledger totals and the
// caller-computed mark-to-market adjustment, and compares it against the
// snapshot.
//
// A non-atomic snapshot fails reconciliation; it never affects the ledger
// itself. A difference within tolerance is OK, anything else is VARIANCE,
// which is a reported state for the operator to investigate, not an error.
func Reconcile(totals LedgerTotals, markToMarket Lamports, snap BalanceSnapshot, tolerance Lamports) (ReconciliationResult, error) {
	if err := snap.Validate(); err != nil {
		return ReconciliationResult{}, err
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	expected := totals.NetCashFlow() + markToMarket
	actual := snap.Total()
	r := ReconciliationResult{
		Expected:   expected,
		Actual:     actual,
		Difference: actual - expected,
		Tolerance:  tolerance,
		Status:     StatusVariance,
		Slot:       snap.Slot,
	}
	if r.Difference.Abs() < tolerance {
		r.Status = StatusOK
	}
	return r, nil
}
