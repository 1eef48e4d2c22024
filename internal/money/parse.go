package money

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// nonNumeric matches everything ParseUserAmount discards: currency
	// symbols, spaces, thousands separators and so on.
	nonNumeric = regexp.MustCompile(`[^\d.\-]`)

	// leadingNumber matches the longest decimal number at the start of the
	// cleaned input. Anything after it ("1.2.3", "12-3") is ignored.
	leadingNumber = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)

	wholeTolerance = decimal.New(1, -2)
)

// ParseUserAmount parses a user-entered amount such as "₹1,250.50" or
// "$ 9.99". Input that does not start with a number parses as zero.
// The result is normalized to at most places decimal digits.
func ParseUserAmount(raw string, places int32) decimal.Decimal {
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	match := leadingNumber.FindString(cleaned)
	if match == "" {
		return decimal.Zero
	}

	match = strings.TrimSuffix(match, ".")
	if strings.HasPrefix(match, "-.") {
		match = "-0" + match[1:]
	} else if strings.HasPrefix(match, ".") {
		match = "0" + match
	}

	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return normalize(d, places)
}

// NormalizeAmount applies the ParseUserAmount normalization to a numeric
// amount, typically a price read back from a persisted snapshot.
func NormalizeAmount(f float64, places int32) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return normalize(decimal.NewFromFloat(f), places)
}

// ParseMoney parses a user-entered amount straight to minor units.
func ParseMoney(raw string, places int32) Money {
	return ToMinorUnits(ParseUserAmount(raw, places), places)
}

// normalize rounds d to places digits by going through minor units, then
// snaps it to the nearest whole number when it is strictly within 0.01.
func normalize(d decimal.Decimal, places int32) decimal.Decimal {
	result := FromMinorUnits(ToMinorUnits(d, places), places)

	whole := result.Round(0)
	if result.Sub(whole).Abs().LessThan(wholeTolerance) {
		result = whole
	}
	return result
}
