package vacct

import "time"

// CostEntry is one gross cost over a billing period, before any
// reimbursement. On-chain costs carry a lamport amount and are valued at
// the period-end price; off-chain costs are already denominated in the
// quote currency.
type CostEntry struct {
	PeriodStart  Date     `json:"period_start"`
	PeriodEnd    Date     `json:"period_end"`
	Category     string   `json:"category"`
	Vendor       string   `json:"vendor,omitempty"`
	Description  string   `json:"description"`
	Amount       Lamports `json:"lamports,omitempty"` // zero for off-chain costs
	USD          Money    `json:"usd,omitempty"`      // zero for on-chain costs
	Reimbursable bool     `json:"reimbursable,omitempty"`
	TxID         string   `json:"tx_id,omitempty"`
}

// OnChain reports whether the cost was paid in lamports.
func (ce CostEntry) OnChain() bool { return ce.Amount != 0 }

// costLedgerEntries converts gross costs into expense entries, plus a
// reimbursement entry for each reimbursable cost whose period still has
// coverage. Gross and reimbursed amounts stay separate rows so they can
// be audited independently.
func costLedgerEntries(costs []CostEntry, prices *PriceSeries, c Config) []LedgerEntry {
	var entries []LedgerEntry
	for _, cost := range costs {
		desc := cost.Description
		if desc == "" {
			desc = cost.Vendor
		}
		coverage := CoverageFraction(c.AcceptanceDate, cost.PeriodEnd)

		if cost.OnChain() {
			price, _ := prices.Resolve(cost.PeriodEnd)
			e := entry(cost.PeriodEnd, Expense, cost.Category, desc, cost.Amount, price)
			e.TxID = cost.TxID
			entries = append(entries, e)
			if cost.Reimbursable && coverage.IsPositive() {
				r := entry(cost.PeriodEnd, Reimbursement, cost.Category,
					"Program reimbursement: "+desc, ReimburseLamports(cost.Amount, coverage), price)
				r.TxID = cost.TxID
				entries = append(entries, r)
			}
			continue
		}

		entries = append(entries, quoteEntry(cost.PeriodEnd, Expense, cost.Category, desc, cost.USD))
		if cost.Reimbursable && coverage.IsPositive() {
			entries = append(entries, quoteEntry(cost.PeriodEnd, Reimbursement, cost.Category,
				"Program reimbursement: "+desc, ReimburseMoney(cost.USD, coverage)))
		}
	}
	return entries
}

// RecurringCost is a cost charged every month on a fixed billing day,
// such as server rent. It expands into one CostEntry per month.
type RecurringCost struct {
	Start        Date   `json:"start"`
	End          Date   `json:"end,omitempty"` // zero means still active
	BillingDay   int    `json:"billing_day"`
	USD          Money  `json:"usd"`
	Category     string `json:"category"`
	Vendor       string `json:"vendor,omitempty"`
	Description  string `json:"description"`
	Reimbursable bool   `json:"reimbursable,omitempty"`
}

// billingDate returns the billing date within the given month, clamping
// the billing day to the month's length.
func (rc RecurringCost) billingDate(year int, month time.Month) Date {
	eom := NewDate(year, month, 1).EndOfMonth()
	day := rc.BillingDay
	if day > eom.Day() {
		day = eom.Day()
	}
	if day < 1 {
		day = 1
	}
	return NewDate(year, month, day)
}

// ExpandRecurring materializes the monthly cost entries up to and
// including 'until'. Each entry covers the calendar month it is billed
// in.
func ExpandRecurring(rc RecurringCost, until Date) []CostEntry {
	var out []CostEntry
	month := NewDate(rc.Start.Year(), rc.Start.Month(), 1)
	for ; ; month = month.AddMonth(1) {
		on := rc.billingDate(month.Year(), month.Month())
		if on.Before(rc.Start) {
			// The billing day falls before the subscription started.
			on = rc.Start
		}
		if on.After(until) {
			break
		}
		if !rc.End.IsZero() && on.After(rc.End) {
			break
		}
		out = append(out, CostEntry{
			PeriodStart:  NewDate(on.Year(), on.Month(), 1),
			PeriodEnd:    on.EndOfMonth(),
			Category:     rc.Category,
			Vendor:       rc.Vendor,
			Description:  rc.Description,
			USD:          rc.USD,
			Reimbursable: rc.Reimbursable,
		})
	}
	return out
}
