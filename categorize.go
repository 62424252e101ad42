package vacct

import "fmt"

// Category is the economic role of a transfer. It is a closed set: adding a
// new category must be reflected in every switch over it.
type Category int

const (
	// Seed is an external-to-internal capital inflow. Seeds feed the
	// return-of-capital pool.
	Seed Category = iota
	// Withdrawal is an internal-to-external outflow, candidate revenue or
	// capital return.
	Withdrawal
	// Internal is a transfer between two operational accounts. Ignored for
	// tax purposes.
	Internal
	// Other is a transfer with no recognizable role on either side. Kept
	// for audit, never dropped.
	Other
)

func (c Category) String() string {
	switch c {
	case Seed:
		return "seed"
	case Withdrawal:
		return "withdrawal"
	case Internal:
		return "internal"
	case Other:
		return "other"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// CategorizedTransfers partitions a set of transfer events. Every input
// event appears in exactly one bucket; each bucket is sorted by
// (date, transaction id).
type CategorizedTransfers struct {
	Seeds       []TransferEvent
	Withdrawals []TransferEvent
	Internal    []TransferEvent
	Other       []TransferEvent
}

// Len returns the total number of partitioned events.
func (ct CategorizedTransfers) Len() int {
	return len(ct.Seeds) + len(ct.Withdrawals) + len(ct.Internal) + len(ct.Other)
}

// CategoryOf classifies a single event against the role configuration.
//
// Classification is a pure function of the source and destination roles; it
// never looks at amount or date. An unlabeled external destination is still
// a Withdrawal — defaulting to Other would silently drop taxable events.
// Other is reserved for events with no operator account on either side.
func CategoryOf(t TransferEvent, c Config) Category {
	fromInternal := c.IsInternal(t.From)
	toInternal := c.IsInternal(t.To)

	switch {
	case fromInternal && toInternal:
		return Internal
	case fromInternal:
		return Withdrawal
	case toInternal:
		return Seed
	default:
		return Other
	}
}

// Categorize partitions events by category. The input slice is not
// modified; each output bucket is independently sorted chronologically.
func Categorize(events []TransferEvent, c Config) CategorizedTransfers {
	var ct CategorizedTransfers
	for _, t := range events {
		switch CategoryOf(t, c) {
		case Seed:
			ct.Seeds = append(ct.Seeds, t)
		case Withdrawal:
			ct.Withdrawals = append(ct.Withdrawals, t)
		case Internal:
			ct.Internal = append(ct.Internal, t)
		case Other:
			ct.Other = append(ct.Other, t)
		}
	}
	SortTransfers(ct.Seeds)
	SortTransfers(ct.Withdrawals)
	SortTransfers(ct.Internal)
	SortTransfers(ct.Other)
	return ct
}
