package currency

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Bundle maps denominations to coin counts. Zero and negative entries are
// never retained.
type Bundle map[Denomination]int

// NewBundle returns an empty bundle.
func NewBundle() Bundle {
	return Bundle{}
}

// Add adds amount coins of d and prunes the entry if it drops to zero.
func (b Bundle) Add(d Denomination, amount int) {
	b[d] += amount
	if b[d] <= 0 {
		delete(b, d)
	}
}

// Sub removes amount coins of d, never going below zero.
func (b Bundle) Sub(d Denomination, amount int) {
	b.Add(d, -amount)
}

// Merge adds every entry of other into b.
func (b Bundle) Merge(other Bundle) {
	for d, amount := range other {
		b.Add(d, amount)
	}
}

// Prune removes zero and negative entries.
func (b Bundle) Prune() Bundle {
	for d, amount := range b {
		if amount <= 0 {
			delete(b, d)
		}
	}
	return b
}

// Clone returns a pruned copy of b.
func (b Bundle) Clone() Bundle {
	out := make(Bundle, len(b))
	for d, amount := range b {
		if amount > 0 {
			out[d] = amount
		}
	}
	return out
}

// IsEmpty reports whether the bundle holds no coins.
func (b Bundle) IsEmpty() bool {
	for _, amount := range b {
		if amount > 0 {
			return false
		}
	}
	return true
}

// Value returns the total worth of the bundle expressed in denomination d.
func (b Bundle) Value(d Denomination) decimal.Decimal {
	total := decimal.Zero
	for from, amount := range b {
		total = total.Add(Convert(decimal.NewFromInt(int64(amount)), from, d))
	}
	return total
}

// String formats the bundle highest denomination first, e.g. "12gp 3sp".
func (b Bundle) String() string {
	parts := make([]string, 0, len(b))
	for i := len(Denominations) - 1; i >= 0; i-- {
		d := Denominations[i]
		if amount := b[d]; amount > 0 {
			parts = append(parts, strconv.Itoa(amount)+d.String())
		}
	}
	return strings.Join(parts, " ")
}
