package renderer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/valops/vacct"
)

// LedgerCSV writes the entries with the same column set as the markdown
// table, but with full transaction signatures for downstream matching.
func LedgerCSV(w io.Writer, entries []vacct.LedgerEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledgerColumns); err != nil {
		return err
	}
	for _, e := range entries {
		r := row(e)
		r[len(r)-1] = e.TxID
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// scheduleCLine maps a cost category to the Schedule C expense line it is
// reported on. Unknown categories land on line 27a, other expenses.
var scheduleCLines = map[string]string{
	"hosting":   "25",  // Utilities
	"vote fees": "10",  // Commissions and fees
	"hardware":  "22",  // Supplies
	"software":  "27a", // Other expenses
}

// ScheduleC writes a Schedule C oriented summary: gross receipts from
// taxable revenue and reimbursements, and expenses grouped by line.
// Return of capital never appears, it is not income.
func ScheduleC(w io.Writer, r *vacct.Report) error {
	gross := vacct.USD(0)
	byLine := make(map[string]vacct.Money)
	for _, e := range r.Entries {
		switch e.Kind {
		case vacct.Revenue, vacct.Reimbursement:
			gross = gross.Add(e.Value)
		case vacct.Expense:
			line, ok := scheduleCLines[e.Category]
			if !ok {
				line = "27a"
			}
			if cur, ok := byLine[line]; ok {
				byLine[line] = cur.Add(e.Value)
			} else {
				byLine[line] = e.Value
			}
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Line", "Description", "USD"}); err != nil {
		return err
	}
	if err := cw.Write([]string{"1", "Gross receipts", gross.Decimal().StringFixed(2)}); err != nil {
		return err
	}
	// Fixed iteration order keeps the file diffable run to run.
	for _, line := range []string{"10", "22", "25", "27a"} {
		amount, ok := byLine[line]
		if !ok {
			continue
		}
		if err := cw.Write([]string{line, scheduleCLineName(line), amount.Decimal().StringFixed(2)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func scheduleCLineName(line string) string {
	switch line {
	case "10":
		return "Commissions and fees"
	case "22":
		return "Supplies"
	case "25":
		return "Utilities"
	default:
		return "Other expenses"
	}
}

// Summary writes the short console recap the report command prints after
// the ledger table.
func Summary(w io.Writer, r *vacct.Report) {
	if r.Year != 0 {
		fmt.Fprintf(w, "Tax summary %d\n", r.Year)
	} else {
		fmt.Fprintf(w, "Tax summary, full history\n")
	}

	byKind := make(map[vacct.EntryKind]vacct.Money)
	for _, e := range r.Entries {
		if cur, ok := byKind[e.Kind]; ok {
			byKind[e.Kind] = cur.Add(e.Value)
		} else {
			byKind[e.Kind] = e.Value
		}
	}
	for _, k := range []vacct.EntryKind{vacct.Revenue, vacct.Reimbursement, vacct.ReturnOfCapital, vacct.Expense} {
		v, ok := byKind[k]
		if !ok {
			v = vacct.USD(0)
		}
		fmt.Fprintf(w, "  %-18s %12s\n", k, v.Decimal().StringFixed(2))
	}

	taxable := byKind[vacct.Revenue].Add(byKind[vacct.Reimbursement]).Sub(byKind[vacct.Expense])
	fmt.Fprintf(w, "  %-18s %12s\n", "Taxable net", taxable.Decimal().StringFixed(2))

	if rec := r.Reconciliation; rec != nil {
		fmt.Fprintf(w, "Reconciliation: %s (difference %s SOL at slot %d)\n",
			rec.Status, rec.Difference.SignedString(), rec.Slot)
	}
	if r.PriceFallbacks > 0 {
		fmt.Fprintf(w, "Warning: %d valuations without an exact daily quote\n", r.PriceFallbacks)
	}
}
