package vacct

import "github.com/shopspring/decimal"

// Coverage fractions of the reimbursement program. Coverage is keyed to
// full calendar months elapsed since acceptance and steps down each
// quarter, stopping after a year.
var (
	coverageFull = decimal.New(1, 0)
	coverage75   = decimal.New(75, -2)
	coverage50   = decimal.New(5, -1)
	coverage25   = decimal.New(25, -2)
)

// CoverageFraction returns the reimbursement coverage in force for a
// cost-bearing period ending on periodEnd.
//
// The fraction is a step function of the calendar months between the
// acceptance date and the period end. The end date alone decides the
// step, so a period straddling a boundary uses one consistent fraction.
// A zero acceptance date means the operator never enrolled and coverage
// is always zero.
func CoverageFraction(acceptance, periodEnd Date) decimal.Decimal {
	if acceptance.IsZero() {
		return decimal.Zero
	}
	months := MonthsBetween(acceptance, periodEnd)
	switch {
	case months < 0:
		return decimal.Zero
	case months < 3:
		return coverageFull
	case months < 6:
		return coverage75
	case months < 9:
		return coverage50
	case months < 12:
		return coverage25
	default:
		return decimal.Zero
	}
}

// ReimburseLamports applies a coverage fraction to a gross on-chain cost.
// The result is truncated to whole lamports and clamped to [0, gross].
func ReimburseLamports(gross Lamports, coverage decimal.Decimal) Lamports {
	r := Lamports(decimal.New(int64(gross), 0).Mul(coverage).IntPart())
	if r < 0 {
		return 0
	}
	return r.Min(gross)
}

// ReimburseMoney applies a coverage fraction to a gross off-chain cost.
// The result is rounded to cents and clamped to [0, gross].
func ReimburseMoney(gross Money, coverage decimal.Decimal) Money {
	r := gross.Mul(coverage).Round(2)
	zero := M(0, gross.Currency())
	return r.Clamp(zero, gross)
}

// ReimbursementScheduleEntry records the coverage applied to one
// cost-bearing period, so the gross cost and the reimbursed part can be
// audited independently.
type ReimbursementScheduleEntry struct {
	PeriodStart Date            `json:"period_start"`
	PeriodEnd   Date            `json:"period_end"`
	Gross       Money           `json:"gross"`
	Coverage    decimal.Decimal `json:"coverage"`
	Reimbursed  Money           `json:"reimbursed"`
}

// ScheduleReimbursement computes the schedule entry for one period.
func ScheduleReimbursement(acceptance, periodStart, periodEnd Date, gross Money) ReimbursementScheduleEntry {
	coverage := CoverageFraction(acceptance, periodEnd)
	return ReimbursementScheduleEntry{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Gross:       gross,
		Coverage:    coverage,
		Reimbursed:  ReimburseMoney(gross, coverage),
	}
}
