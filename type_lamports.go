package vacct

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Lamports is an amount of the smallest indivisible unit of SOL.
//
// All conservation and reconciliation arithmetic in this package happens on
// Lamports; SOL and quote-currency values are derived at the display
// boundary only and never fed back into the math.
type Lamports int64

// LamportsPerSOL is the fixed number of lamports in one SOL.
const LamportsPerSOL Lamports = 1_000_000_000

// SOL returns the amount as a decimal number of SOL. Display only.
func (l Lamports) SOL() decimal.Decimal { return decimal.New(int64(l), -9) }

// Abs returns the absolute value.
func (l Lamports) Abs() Lamports {
	if l < 0 {
		return -l
	}
	return l
}

// Min returns the smaller of l and x.
func (l Lamports) Min(x Lamports) Lamports {
	if x < l {
		return x
	}
	return l
}

// String formats the amount as SOL with full lamport precision, e.g.
// "1.500000000". A zero value always renders "0.000000000" with no sign.
func (l Lamports) String() string { return l.SOL().StringFixed(9) }

// SignedString is like String with an explicit sign for positive amounts.
func (l Lamports) SignedString() string {
	if l > 0 {
		return "+" + l.String()
	}
	return l.String()
}

// Value returns the quote-currency value of the amount at the given unit
// price (price per SOL).
func (l Lamports) Value(price Money) Money { return price.Mul(l.SOL()) }

// ParseLamports parses a SOL-denominated decimal string (e.g. "1.5") into
// lamports, rejecting anything finer than lamport precision.
func ParseLamports(s string) (Lamports, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid SOL amount %q: %w", s, err)
	}
	shifted := d.Shift(9)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("SOL amount %q is finer than one lamport", s)
	}
	return Lamports(shifted.IntPart()), nil
}
