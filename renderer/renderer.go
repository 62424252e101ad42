// Package renderer turns assembled reports into markdown, console and CSV
// output. It is a pure consumer of the engine's typed outputs; nothing
// here feeds back into the accounting math.
package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/valops/vacct"
)

// ledgerColumns is the fixed column set of the tabular ledger output.
var ledgerColumns = []string{
	"Date", "Type", "Category", "Description",
	"SOL Amount", "SOL Price (USD)", "USD Value", "Destination", "Tx Signature",
}

// row flattens one entry into the tabular column set. Optional cells come
// out empty, never as a zero that could be mistaken for data.
func row(e vacct.LedgerEntry) []string {
	amount, price := "", ""
	if e.SourceAmount != nil {
		amount = e.SourceAmount.String()
	}
	if e.UnitPrice != nil {
		price = e.UnitPrice.Decimal().StringFixed(2)
	}
	return []string{
		e.Date.String(),
		e.Kind.String(),
		e.Category,
		e.Description,
		amount,
		price,
		e.Value.Decimal().StringFixed(2),
		e.Destination,
		shortenTx(e.TxID),
	}
}

// shortenTx abbreviates a transaction signature for tabular display.
func shortenTx(sig string) string {
	if len(sig) > 16 {
		return sig[:8] + "..." + sig[len(sig)-4:]
	}
	return sig
}

func markdownTable(w io.Writer, header []string, rows [][]string) {
	fmt.Fprintf(w, "| %s |\n", strings.Join(header, " | "))
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | "))
	for _, r := range rows {
		fmt.Fprintf(w, "| %s |\n", strings.Join(r, " | "))
	}
}

// LedgerMarkdown renders the full report as a markdown document.
func LedgerMarkdown(r *vacct.Report) string {
	var buf bytes.Buffer

	if r.Year != 0 {
		fmt.Fprintf(&buf, "# Validator Tax Ledger %d\n\n", r.Year)
	} else {
		fmt.Fprintf(&buf, "# Validator Tax Ledger\n\n")
	}

	rows := make([][]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		rows = append(rows, row(e))
	}
	markdownTable(&buf, ledgerColumns, rows)

	buf.WriteString("\n## Totals\n\n")
	markdownTable(&buf, []string{"Flow", "SOL"}, [][]string{
		{"Income", r.Totals.Income.String()},
		{"Expenses", r.Totals.Expenses.String()},
		{"Gross withdrawals", r.Totals.WithdrawalsGross.String()},
		{"Deposits", r.Totals.Deposits.String()},
		{"Net cash flow", r.Totals.NetCashFlow().SignedString()},
	})

	ConditionalBlock(&buf, func(w io.Writer) bool {
		rec := r.Reconciliation
		if rec == nil {
			return false
		}
		fmt.Fprintf(w, "\n## Reconciliation (slot %d)\n\n", rec.Slot)
		markdownTable(w, []string{"", "SOL"}, [][]string{
			{"Expected", rec.Expected.String()},
			{"Actual", rec.Actual.String()},
			{"Difference", rec.Difference.SignedString()},
		})
		fmt.Fprintf(w, "\nStatus: **%s**\n", rec.Status)
		return true
	})

	ConditionalBlock(&buf, func(w io.Writer) bool {
		if len(r.Unclassified) == 0 {
			return false
		}
		fmt.Fprintf(w, "\n## Unclassified transfers\n\n")
		fmt.Fprintf(w, "These transfers touch no operator account and need manual review.\n\n")
		rows := make([][]string, 0, len(r.Unclassified))
		for _, t := range r.Unclassified {
			rows = append(rows, []string{t.Date.String(), t.Amount.String(), t.From, t.To, shortenTx(t.TxID)})
		}
		markdownTable(w, []string{"Date", "SOL", "From", "To", "Tx Signature"}, rows)
		return true
	})

	if r.PriceFallbacks > 0 {
		fmt.Fprintf(&buf, "\n> Warning: %d valuations had no exact daily quote; fetch prices for the missing days.\n", r.PriceFallbacks)
	}

	return buf.String()
}
