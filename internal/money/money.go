// Package money implements fixed-point monetary amounts.
//
// An amount is stored as an integer number of minor units (cents for a
// currency with two decimal places). Decimal values only exist at the
// boundary: when parsing user input, reading persisted snapshots and
// formatting output. All arithmetic in between is integer arithmetic, so
// splitting and summing never drift.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultDecimals is the number of decimal places used when a currency
// does not specify its own.
const DefaultDecimals int32 = 2

// MaxDecimals is the largest number of decimal places a currency may use.
const MaxDecimals int32 = 4

var (
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	minMinorUnits = decimal.NewFromInt(math.MinInt64)
)

// ClampPlaces bounds places to the supported range [0, MaxDecimals].
func ClampPlaces(places int32) int32 {
	return min(max(places, 0), MaxDecimals)
}

// Money is a signed amount expressed in minor units of some currency.
type Money int64

// ToMinorUnits converts a decimal amount to minor units, rounding half away
// from zero. Amounts outside the int64 range saturate.
func ToMinorUnits(amount decimal.Decimal, places int32) Money {
	units := amount.Shift(ClampPlaces(places)).Round(0)
	switch {
	case units.GreaterThan(maxMinorUnits):
		return math.MaxInt64
	case units.LessThan(minMinorUnits):
		return math.MinInt64
	}
	return Money(units.IntPart())
}

// FromMinorUnits converts minor units back to a decimal amount.
func FromMinorUnits(m Money, places int32) decimal.Decimal {
	return decimal.New(int64(m), -ClampPlaces(places))
}

// Rescale converts m from minor units with from decimal places to minor
// units with to decimal places, keeping the decimal amount.
func Rescale(m Money, from, to int32) Money {
	if ClampPlaces(from) == ClampPlaces(to) {
		return m
	}
	return ToMinorUnits(FromMinorUnits(m, from), to)
}

// FromFloat converts a float amount, such as a JSON number, to minor units.
// NaN and infinities convert to zero.
func FromFloat(f float64, places int32) Money {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return ToMinorUnits(decimal.NewFromFloat(f), places)
}

// Decimal returns m as a decimal amount.
func (m Money) Decimal(places int32) decimal.Decimal {
	return FromMinorUnits(m, places)
}

// Float64 returns m as a float amount. It is only meant for the persisted
// record format, which stores prices as JSON numbers.
func (m Money) Float64(places int32) float64 {
	return FromMinorUnits(m, places).InexactFloat64()
}

// Abs returns the absolute value of m.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// FormatDecimal renders m with exactly places decimal digits, e.g. "10.00".
func FormatDecimal(m Money, places int32) string {
	return FromMinorUnits(m, places).StringFixed(ClampPlaces(places))
}

// Format renders m with the currency symbol, e.g. "$10.00" or "-$3.33".
func Format(m Money, c Currency) string {
	places := c.Places()
	if m < 0 {
		return "-" + c.Symbol + FormatDecimal(-m, places)
	}
	return c.Symbol + FormatDecimal(m, places)
}
