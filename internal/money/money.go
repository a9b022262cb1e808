// Package money wraps exact-decimal arithmetic for currency and percentage
// values. Every amount entering a calculation is converted to decimal.Decimal
// first; binary floats only appear at flag and config boundaries. Intermediate
// results keep full precision — rounding happens at the result boundary only.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// FromFloat converts a boundary float (flag or config value) into a decimal.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// FromInt converts an integer count into a decimal.
func FromInt(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

// Percent computes value/base*100 rounded to two decimal places.
// A zero or negative base yields exactly 0, never NaN or Inf.
func Percent(value, base decimal.Decimal) decimal.Decimal {
	if base.Sign() <= 0 {
		return decimal.Zero
	}
	return Round2(value.Div(base).Mul(hundred))
}

// PercentOfCounts is Percent over raw integer counts.
func PercentOfCounts(value, base int64) decimal.Decimal {
	return Percent(FromInt(value), FromInt(base))
}

// Round2 rounds to two decimal places (the percentage contract).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Whole rounds to zero decimal places (the whole-currency contract).
func Whole(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
