package money

import (
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount string
		places int32
		want   Money
	}{
		{"10.00", 2, 1000},
		{"10.99", 2, 1099},
		{"1.005", 2, 101},
		{"1.004", 2, 100},
		{"-1.005", 2, -101},
		{"0.5", 0, 1},
		{"-0.5", 0, -1},
		{"12.3456", 3, 12346},
		{"0", 2, 0},
		{"10", 19, 100000},
		{"10", -3, 10},
		{"100000000000000000000", 2, math.MaxInt64},
		{"-100000000000000000000", 2, math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.amount, tt.places), func(t *testing.T) {
			got := ToMinorUnits(decimal.RequireFromString(tt.amount), tt.places)
			if got != tt.want {
				t.Errorf("ToMinorUnits(%s, %d) = %d, want %d", tt.amount, tt.places, got, tt.want)
			}
		})
	}
}

func TestFromMinorUnits(t *testing.T) {
	if got := FromMinorUnits(334, 2); !got.Equal(decimal.RequireFromString("3.34")) {
		t.Errorf("FromMinorUnits(334, 2) = %s, want 3.34", got)
	}
	if got := FromMinorUnits(-249, 2); !got.Equal(decimal.RequireFromString("-2.49")) {
		t.Errorf("FromMinorUnits(-249, 2) = %s, want -2.49", got)
	}
	if got := FromMinorUnits(1500, 0); !got.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("FromMinorUnits(1500, 0) = %s, want 1500", got)
	}
}

func TestFromFloat(t *testing.T) {
	tests := []struct {
		name string
		f    float64
		want Money
	}{
		{"whole", 10, 1000},
		{"cents", 9.99, 999},
		{"binary artifact", 0.1 + 0.2, 30},
		{"negative", -2.49, -249},
		{"NaN", math.NaN(), 0},
		{"infinity", math.Inf(1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromFloat(tt.f, 2); got != tt.want {
				t.Errorf("FromFloat(%v) = %d, want %d", tt.f, got, tt.want)
			}
		})
	}
}

func TestParseUserAmount(t *testing.T) {
	tests := []struct {
		raw    string
		places int32
		want   string
	}{
		{"10", 2, "10.00"},
		{"9.99", 2, "9.99"},
		{"$9.99", 2, "9.99"},
		{"₹1,250.50", 2, "1250.50"},
		{"  42.125 ", 2, "42.13"},
		{"1.2.3", 2, "1.20"},
		{"12-3", 2, "12.00"},
		{".5", 2, "0.50"},
		{"-.25", 2, "-0.25"},
		{"-3", 2, "-3.00"},
		{"7.", 2, "7.00"},
		{"4.9951", 2, "5.00"},
		{"4.995", 3, "5.000"},
		{"4.989", 3, "4.989"},
		{"abc", 2, "0.00"},
		{"", 2, "0.00"},
		{"-", 2, "0.00"},
		{"..", 2, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseUserAmount(tt.raw, tt.places).StringFixed(tt.places)
			if got != tt.want {
				t.Errorf("ParseUserAmount(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseUserAmountRoundTrip(t *testing.T) {
	inputs := []string{"10", "9.99", "0.015", "1234.5678", "$3.33", "-7.126", "100.001", "abc", ".999"}
	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			first := ParseUserAmount(raw, DefaultDecimals)
			formatted := FormatDecimal(ToMinorUnits(first, DefaultDecimals), DefaultDecimals)
			second := ParseUserAmount(formatted, DefaultDecimals)
			if !first.Equal(second) {
				t.Errorf("round trip of %q: %s then %s", raw, first, second)
			}
		})
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name string
		f    float64
		want string
	}{
		{"clean", 12.5, "12.50"},
		{"float artifact", 33.300000000000004, "33.30"},
		{"near whole", 19.999999999, "20.00"},
		{"NaN", math.NaN(), "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAmount(tt.f, 2).StringFixed(2); got != tt.want {
				t.Errorf("NormalizeAmount(%v) = %s, want %s", tt.f, got, tt.want)
			}
		})
	}
}

func TestParseMoney(t *testing.T) {
	if got := ParseMoney("$10.00", 2); got != 1000 {
		t.Errorf("ParseMoney($10.00) = %d, want 1000", got)
	}
	if got := ParseMoney("not a price", 2); got != 0 {
		t.Errorf("ParseMoney(not a price) = %d, want 0", got)
	}
	if got := ParseMoney("10", 19); got != 100000 {
		t.Errorf("ParseMoney(10, 19) = %d, want 100000", got)
	}
}

func TestFormat(t *testing.T) {
	usd, _ := LookupCurrency("USD")
	tests := []struct {
		m    Money
		want string
	}{
		{1000, "$10.00"},
		{334, "$3.34"},
		{-333, "-$3.33"},
		{0, "$0.00"},
		{5, "$0.05"},
	}
	for _, tt := range tests {
		if got := Format(tt.m, usd); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.m, got, tt.want)
		}
	}
}

func TestLookupCurrency(t *testing.T) {
	c, ok := LookupCurrency("EUR")
	if !ok {
		t.Fatal("expected EUR in catalog")
	}
	if c.Symbol != "€" || c.Decimals != 2 {
		t.Errorf("unexpected EUR currency: %+v", c)
	}

	if _, ok := LookupCurrency("XXX"); ok {
		t.Error("expected XXX to be unknown")
	}

	if got := DefaultCurrency().Code; got != DefaultCurrencyCode {
		t.Errorf("DefaultCurrency().Code = %s, want %s", got, DefaultCurrencyCode)
	}
}

func TestRescale(t *testing.T) {
	tests := []struct {
		m        Money
		from, to int32
		want     Money
	}{
		{1000, 2, 2, 1000},
		{1000, 2, 3, 10000},
		{10000, 3, 2, 1000},
		{12345, 3, 2, 1235},
		{-1000, 2, 4, -100000},
		{1000, 2, 19, 100000},
	}
	for _, tt := range tests {
		if got := Rescale(tt.m, tt.from, tt.to); got != tt.want {
			t.Errorf("Rescale(%d, %d, %d) = %d, want %d", tt.m, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCurrencyPlaces(t *testing.T) {
	tests := []struct {
		decimals int32
		want     int32
	}{
		{-1, DefaultDecimals},
		{0, DefaultDecimals},
		{3, 3},
		{MaxDecimals, MaxDecimals},
		{19, MaxDecimals},
	}
	for _, tt := range tests {
		if got := (Currency{Decimals: tt.decimals}).Places(); got != tt.want {
			t.Errorf("Places() with decimals %d = %d, want %d", tt.decimals, got, tt.want)
		}
	}
}
