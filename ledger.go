package vacct

import (
	"fmt"
	"sort"
)

// EntryKind is the kind of a ledger entry. The declaration order is the
// within-day output order and part of the output-stability contract.
type EntryKind int

const (
	Revenue EntryKind = iota
	ReturnOfCapital
	Reimbursement
	Expense
)

func (k EntryKind) String() string {
	switch k {
	case Revenue:
		return "Revenue"
	case ReturnOfCapital:
		return "Return of Capital"
	case Reimbursement:
		return "Reimbursement"
	case Expense:
		return "Expense"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalJSON encodes the kind as its display form.
func (k EntryKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON decodes the display form of an entry kind.
func (k *EntryKind) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseEntryKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseEntryKind parses the display form of an entry kind.
func ParseEntryKind(s string) (EntryKind, error) {
	for _, k := range []EntryKind{Revenue, ReturnOfCapital, Reimbursement, Expense} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown entry kind: %q", s)
}

// LedgerEntry is one row of the assembled tax ledger.
//
// Value is always present. SourceAmount and UnitPrice are both present (for
// on-chain flows, valued at the price on the entry date) or both absent
// (for costs already denominated in the quote currency).
type LedgerEntry struct {
	Date         Date      `json:"date"`
	Kind         EntryKind `json:"kind"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	SourceAmount *Lamports `json:"sol_amount,omitempty"`
	UnitPrice    *Money    `json:"sol_price,omitempty"`
	Value        Money     `json:"value"`
	Destination  string    `json:"destination,omitempty"`
	TxID         string    `json:"tx_id,omitempty"`
}

// entry builds a priced on-chain ledger entry.
func entry(on Date, kind EntryKind, category, description string, amount Lamports, price Money) LedgerEntry {
	a := amount
	p := price
	return LedgerEntry{
		Date:         on,
		Kind:         kind,
		Category:     category,
		Description:  description,
		SourceAmount: &a,
		UnitPrice:    &p,
		Value:        amount.Value(price),
	}
}

// quoteEntry builds a ledger entry with no on-chain source amount.
func quoteEntry(on Date, kind EntryKind, category, description string, value Money) LedgerEntry {
	return LedgerEntry{
		Date:        on,
		Kind:        kind,
		Category:    category,
		Description: description,
		Value:       value,
	}
}

// assemble merges entry groups into one sequence with the deterministic
// total order: date ascending, then kind in declaration order, then
// insertion order within the same date and kind. This order is a hard
// output-stability contract, relied on by the CSV and report tests.
func assemble(groups ...[]LedgerEntry) []LedgerEntry {
	var all []LedgerEntry
	for _, g := range groups {
		all = append(all, g...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Date != all[j].Date {
			return all[i].Date.Before(all[j].Date)
		}
		return all[i].Kind < all[j].Kind
	})
	return all
}

// FilterYear returns the entries dated within the given year. It is applied
// to assembled output only; replay inputs are never period-filtered.
func FilterYear(entries []LedgerEntry, year int) []LedgerEntry {
	out := make([]LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date.Year() == year {
			out = append(out, e)
		}
	}
	return out
}

// LedgerTotals aggregates smallest-unit flows for reconciliation. All
// fields are exact lamport sums.
type LedgerTotals struct {
	Income           Lamports // revenue + reimbursements
	Expenses         Lamports // on-chain costs, plus converted off-chain costs when configured
	WithdrawalsGross Lamports // full outflow amounts, before the capital split
	Deposits         Lamports // seed inflows
}

// NetCashFlow is income − expenses − withdrawals + deposits.
func (t LedgerTotals) NetCashFlow() Lamports {
	return t.Income - t.Expenses - t.WithdrawalsGross + t.Deposits
}
