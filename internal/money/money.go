package money

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places money settles to.
const Places int32 = 2

var (
	// Zero is the additive identity for money values.
	Zero = decimal.Zero

	cent = decimal.New(1, -Places)
)

// FromInt converts a whole-unit count (dollars, units sold) to a decimal.
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// RequireFromString parses a literal amount such as "12.50" and panics if it is malformed.
// Use it for constants and fixtures, never for user input.
func RequireFromString(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Parse parses a user supplied amount.
func Parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Percent returns amount * pct / 100 without any rounding.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Shift(-2)
}

// NonNegative clamps d to zero from below.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return Zero
	}
	return d
}

// Round rounds d to cents, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// String renders d with exactly two decimal places.
func String(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// divPrecision is the scale kept by divisions before amounts are rounded to cents.
const divPrecision int32 = 28

// SplitEvenly returns total / n unrounded. Non-positive n yields zero so callers never divide by zero.
func SplitEvenly(total decimal.Decimal, n int) decimal.Decimal {
	return Allot(total, 1, int64(n))
}

// Allot returns total * part / whole, multiplying before dividing so a pool split by weight keeps
// its precision. Non-positive whole yields zero.
func Allot(total decimal.Decimal, part, whole int64) decimal.Decimal {
	if whole <= 0 {
		return Zero
	}
	return total.Mul(FromInt(part)).DivRound(FromInt(whole), divPrecision)
}

// Apportion rounds a set of non-negative amounts to cents so that the rounded values add up to
// the cent-rounded sum of the inputs. See ApportionTo.
func Apportion(values []decimal.Decimal) []decimal.Decimal {
	clamped := make([]decimal.Decimal, len(values))
	for i, v := range values {
		clamped[i] = NonNegative(v)
	}
	return ApportionTo(values, Round(Sum(clamped...)))
}

// ApportionTo rounds a set of non-negative amounts to cents so that the rounded values add up to
// target (largest remainder method).
//
// Every value is first truncated to cents. Missing cents are then handed out one at a time to the
// values with the largest truncated remainder; ties go to the lower index. Surplus cents are taken
// back from the values with the smallest remainder that still hold at least a cent. Negative inputs
// are treated as zero.
func ApportionTo(values []decimal.Decimal, target decimal.Decimal) []decimal.Decimal {
	if len(values) == 0 {
		return []decimal.Decimal{}
	}

	clamped := make([]decimal.Decimal, len(values))
	floors := make([]decimal.Decimal, len(values))
	for i, v := range values {
		clamped[i] = NonNegative(v)
		floors[i] = clamped[i].Truncate(Places)
	}

	leftover := Round(NonNegative(target)).Sub(Sum(floors...)).Div(cent).IntPart()

	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra := clamped[order[a]].Sub(floors[order[a]])
		rb := clamped[order[b]].Sub(floors[order[b]])
		return ra.GreaterThan(rb)
	})

	for leftover > 0 {
		for _, idx := range order {
			if leftover == 0 {
				break
			}
			floors[idx] = floors[idx].Add(cent)
			leftover--
		}
	}
	for leftover < 0 {
		taken := false
		for i := len(order) - 1; i >= 0 && leftover < 0; i-- {
			idx := order[i]
			if floors[idx].LessThan(cent) {
				continue
			}
			floors[idx] = floors[idx].Sub(cent)
			leftover++
			taken = true
		}
		if !taken {
			break
		}
	}

	return floors
}
