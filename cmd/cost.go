package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/valops/vacct"
)

// costCmd holds the flags for the 'cost' subcommand.
type costCmd struct {
	start        string
	end          string
	category     string
	vendor       string
	description  string
	sol          string
	usd          float64
	reimbursable bool
	txID         string

	monthly    bool
	billingDay int
	until      string
}

func (*costCmd) Name() string     { return "cost" }
func (*costCmd) Synopsis() string { return "record a business cost in the ledger database" }
func (*costCmd) Usage() string {
	return `vacct cost -e <period_end> -c <category> [-desc <text>] (-sol <amount> | -usd <amount>)

  Records a gross business cost. On-chain costs are given in SOL (-sol) and
  carry the paying transaction signature (-tx); off-chain costs are given in
  USD (-usd). Reimbursable costs (-r) also produce a reimbursement entry in
  reports, scaled by the program coverage of their period.

  With --monthly the cost is treated as a recurring subscription and
  expanded into one entry per month from -s to -until, billed on -day.

Usage Examples:
# A one-off hardware purchase, reimbursable under the program.
$ vacct cost -e 2024-03-31 -c hardware -vendor "Dell" -desc "NVMe drives" -usd 420 -r

# Monthly hosting, billed on the 1st, expanded through today.
$ vacct cost --monthly -s 2024-01-01 -day 1 -c hosting -vendor "Latitude" -usd 350 -r
`
}

func (c *costCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Period start date (defaults to the period end).")
	f.StringVar(&c.end, "e", "", "Period end date. Required for one-off costs.")
	f.StringVar(&c.category, "c", "", "Cost category (hosting, hardware, software, vote-fees...). Required.")
	f.StringVar(&c.vendor, "vendor", "", "Vendor name.")
	f.StringVar(&c.description, "desc", "", "Free-form description. Defaults to the vendor name.")
	f.StringVar(&c.sol, "sol", "", "On-chain amount in SOL, e.g. 1.5.")
	f.Float64Var(&c.usd, "usd", 0, "Off-chain amount in USD.")
	f.BoolVar(&c.reimbursable, "r", false, "The cost is reimbursable under the program.")
	f.StringVar(&c.txID, "tx", "", "Transaction signature of the on-chain payment.")

	f.BoolVar(&c.monthly, "monthly", false, "Expand as a monthly recurring cost.")
	f.IntVar(&c.billingDay, "day", 1, "Billing day of the month for recurring costs.")
	f.StringVar(&c.until, "until", "", "Last day to expand recurring costs to (defaults to today).")
}

func (c *costCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.category == "" {
		fmt.Fprintln(os.Stderr, "Error: -c category is required.")
		return subcommands.ExitUsageError
	}

	db, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	var costs []vacct.CostEntry
	if c.monthly {
		costs, err = c.expand()
	} else {
		costs, err = c.single()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	for _, cost := range costs {
		if _, err := db.AddCost(cost); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving cost: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	fmt.Printf("Recorded %d cost entries.\n", len(costs))
	return subcommands.ExitSuccess
}

func (c *costCmd) single() ([]vacct.CostEntry, error) {
	if c.end == "" {
		return nil, fmt.Errorf("-e period end is required")
	}
	end, err := vacct.ParseDate(c.end)
	if err != nil {
		return nil, fmt.Errorf("invalid period end: %w", err)
	}
	start := end
	if c.start != "" {
		if start, err = vacct.ParseDate(c.start); err != nil {
			return nil, fmt.Errorf("invalid period start: %w", err)
		}
	}

	cost := vacct.CostEntry{
		PeriodStart:  start,
		PeriodEnd:    end,
		Category:     c.category,
		Vendor:       c.vendor,
		Description:  c.description,
		Reimbursable: c.reimbursable,
		TxID:         c.txID,
	}
	switch {
	case c.sol != "" && c.usd != 0:
		return nil, fmt.Errorf("-sol and -usd are mutually exclusive")
	case c.sol != "":
		if cost.Amount, err = vacct.ParseLamports(c.sol); err != nil {
			return nil, fmt.Errorf("invalid SOL amount: %w", err)
		}
	case c.usd != 0:
		cost.USD = vacct.USD(c.usd)
	default:
		return nil, fmt.Errorf("one of -sol or -usd is required")
	}
	return []vacct.CostEntry{cost}, nil
}

func (c *costCmd) expand() ([]vacct.CostEntry, error) {
	if c.start == "" {
		return nil, fmt.Errorf("-s start date is required for recurring costs")
	}
	if c.usd == 0 {
		return nil, fmt.Errorf("recurring costs are off-chain, -usd is required")
	}
	start, err := vacct.ParseDate(c.start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	until := vacct.Today()
	if c.until != "" {
		if until, err = vacct.ParseDate(c.until); err != nil {
			return nil, fmt.Errorf("invalid until date: %w", err)
		}
	}
	var end vacct.Date
	if c.end != "" {
		if end, err = vacct.ParseDate(c.end); err != nil {
			return nil, fmt.Errorf("invalid end date: %w", err)
		}
	}

	rc := vacct.RecurringCost{
		Start:        start,
		End:          end,
		BillingDay:   c.billingDay,
		USD:          vacct.USD(c.usd),
		Category:     c.category,
		Vendor:       c.vendor,
		Description:  c.description,
		Reimbursable: c.reimbursable,
	}
	costs := vacct.ExpandRecurring(rc, until)
	if len(costs) == 0 {
		return nil, fmt.Errorf("no billing dates between %s and %s", start, until)
	}
	return costs, nil
}
