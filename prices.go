package vacct

import (
	"slices"
	"sort"
)

// Provenance records how a price for a given day was obtained.
type Provenance int

const (
	PriceExact    Provenance = iota // a quote exists for the exact day
	PriceNearest                    // the chronologically closest quote was used
	PriceFallback                   // no quotes at all, the configured fallback was used
)

func (p Provenance) String() string {
	switch p {
	case PriceExact:
		return "exact"
	case PriceNearest:
		return "nearest"
	case PriceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// PriceSeries stores a chronological series of daily quotes.
// Dates are unique and the series is always sorted.
type PriceSeries struct {
	days     []Date
	values   []Money
	fallback Money

	fallbacks int
}

// NewPriceSeries returns an empty series that resolves to the given
// fallback price when it holds no quotes.
func NewPriceSeries(fallback Money) *PriceSeries {
	return &PriceSeries{fallback: fallback}
}

// Len returns the number of quotes in the series.
func (s *PriceSeries) Len() int { return len(s.days) }

// FallbackCount returns how many times Resolve answered without an exact
// quote for the requested day, whether with the nearest-day quote or the
// hardcoded fallback. Nonzero counts are surfaced in reports as a
// data-quality warning: approximated valuations are not defensible in an
// audit.
func (s *PriceSeries) FallbackCount() int { return s.fallbacks }

// Append adds a quote to the series.
//
// An existing quote at that date is overwritten.
func (s *PriceSeries) Append(on Date, price Money) *PriceSeries {
	if i := slices.Index(s.days, on); i >= 0 {
		// Replace, so the last data wins.
		s.values[i] = price
		return s
	}
	s.days, s.values = append(s.days, on), append(s.values, price)
	sort.Sort(quoteOrder{s})
	return s
}

// AppendAll adds a batch of quotes and sorts the series once, instead of
// re-sorting per quote like Append. Bulk loads from the store and the
// market-data providers go through here; a full history is thousands of
// days. As in Append, the last quote for a day wins.
func (s *PriceSeries) AppendAll(days []Date, prices []Money) *PriceSeries {
	index := make(map[Date]int, len(s.days)+len(days))
	for i, on := range s.days {
		index[on] = i
	}
	for i, on := range days {
		if j, ok := index[on]; ok {
			s.values[j] = prices[i]
			continue
		}
		index[on] = len(s.days)
		s.days, s.values = append(s.days, on), append(s.values, prices[i])
	}
	sort.Sort(quoteOrder{s})
	return s
}

// quoteOrder is a private implementation to keep the series chronologically sorted.
type quoteOrder struct{ *PriceSeries }

func (q quoteOrder) Len() int           { return len(q.days) }
func (q quoteOrder) Less(i, j int) bool { return q.days[i].Before(q.days[j]) }
func (q quoteOrder) Swap(i, j int) {
	q.days[i], q.days[j] = q.days[j], q.days[i]
	q.values[i], q.values[j] = q.values[j], q.values[i]
}

// Get returns the quote at 'day' and true, or zero and false.
func (s *PriceSeries) Get(day Date) (Money, bool) {
	if i := slices.Index(s.days, day); i >= 0 {
		return s.values[i], true
	}
	return Money{}, false
}

// Resolve returns the best available price for 'day' and how it was
// obtained: the exact quote when one exists, otherwise the quote from the
// chronologically closest day with ties going to the earlier day, and the
// fallback price only when the series is empty.
func (s *PriceSeries) Resolve(day Date) (Money, Provenance) {
	if len(s.days) == 0 {
		s.fallbacks++
		return s.fallback, PriceFallback
	}
	i, found := slices.BinarySearchFunc(s.days, day, func(d, t Date) int {
		if d.Before(t) {
			return -1
		}
		if d.After(t) {
			return 1
		}
		return 0
	})
	if found {
		return s.values[i], PriceExact
	}
	// Every non-exact resolution counts against the audit trail.
	s.fallbacks++
	// i is the insertion point: days[i-1] < day < days[i].
	switch {
	case i == 0:
		return s.values[0], PriceNearest
	case i == len(s.days):
		return s.values[len(s.days)-1], PriceNearest
	}
	before := DaysBetween(s.days[i-1], day)
	after := DaysBetween(day, s.days[i])
	if before <= after {
		return s.values[i-1], PriceNearest
	}
	return s.values[i], PriceNearest
}

// Values calls fn for each quote in chronological order, stopping early if
// fn returns false.
func (s *PriceSeries) Values(fn func(on Date, price Money) bool) {
	for i, on := range s.days {
		if !fn(on, s.values[i]) {
			return
		}
	}
}
