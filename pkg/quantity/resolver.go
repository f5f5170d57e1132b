// Package quantity is the single home of the cart quantity-limit rule. Every
// surface that mutates a held quantity (the admin cart drawer, the customer
// cart page, the product stepper) delegates here; none of them re-implement
// the clamp.
package quantity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Limits is the stock metadata snapshot a product or cart line carries.
// StockQuantity and BackorderLimit are nil when the catalog record does not
// declare them.
type Limits struct {
	StockQuantity  *int
	AllowBackorder bool
	BackorderLimit *int
}

// Resolution is the outcome of applying the limit rule to a requested
// quantity. Quantity is the value the cart may actually hold; Remove reports
// that the line must be deleted instead (a decrement below one). Blocked is
// set when the request exceeded the cap, whether or not the held quantity
// changed, and Message carries the notice callers surface to the user.
type Resolution struct {
	Quantity int
	Blocked  bool
	Remove   bool
	Message  string
}

// Max returns the maximum quantity the limits permit. The second result is
// false when the quantity is unbounded.
//
// Precedence is total: a declared backorder limit is a hard ceiling that wins
// over everything else; otherwise backorder-allowed means unbounded; otherwise
// the stock snapshot caps the line. A missing stock snapshot without a
// backorder flag is treated as unbounded.
func Max(l Limits) (int, bool) {
	if l.BackorderLimit != nil {
		return *l.BackorderLimit, true
	}
	if l.AllowBackorder {
		return 0, false
	}
	if l.StockQuantity != nil {
		return *l.StockQuantity, true
	}
	return 0, false
}

// Resolve clamps a requested quantity against the limits.
//
// current is the quantity already held for this line (zero if the line is not
// in the cart yet); requested is the value the caller is trying to set — for
// a stepper increment that is current+1, for a decrement current-1, for a
// direct edit whatever the user entered after Normalize.
func Resolve(current, requested int, l Limits) Resolution {
	if requested < 1 {
		// A decrement from one deletes the line; there is no quantity zero.
		return Resolution{Remove: true}
	}

	max, bounded := Max(l)
	if bounded && requested > max {
		res := Resolution{
			Quantity: max,
			Blocked:  true,
			Message:  fmt.Sprintf("Maximum allowed quantity is %d", max),
		}
		if res.Quantity < 1 {
			// Cap of zero: nothing can be held, an existing line goes away.
			res.Quantity = 0
			res.Remove = current > 0
		}
		return res
	}

	return Resolution{Quantity: requested}
}

// Changed reports whether applying the resolution would mutate a line
// currently holding current units. A blocked increment at the cap resolves to
// the cap itself and must not be written back.
func (r Resolution) Changed(current int) bool {
	if r.Remove {
		return current > 0
	}
	return r.Quantity != current
}

// Normalize coerces raw direct-entry input to a usable quantity. Non-numeric
// and sub-one values become one; fractional input is floored. The result
// still goes through Resolve for clamping.
func Normalize(raw string) int {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) {
		return 1
	}
	n := int(math.Floor(value))
	if n < 1 {
		return 1
	}
	return n
}
