package money

// Currency describes how amounts of one currency are parsed and displayed.
// A bill uses a single currency; amounts are never converted between
// currencies.
type Currency struct {
	Code     string
	Symbol   string
	Name     string
	Decimals int32
}

// Places returns the number of decimal places of the minor unit.
// Zero or negative decimals mean DefaultDecimals; larger values are capped
// at MaxDecimals.
func (c Currency) Places() int32 {
	if c.Decimals <= 0 {
		return DefaultDecimals
	}
	return min(c.Decimals, MaxDecimals)
}

// DefaultCurrencyCode is the currency new bills start with.
const DefaultCurrencyCode = "INR"

// Currencies is the catalog of selectable currencies.
var Currencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CHF", Symbol: "CHF", Name: "Swiss Franc"},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
	{Code: "HKD", Symbol: "HK$", Name: "Hong Kong Dollar"},
	{Code: "KRW", Symbol: "₩", Name: "South Korean Won"},
	{Code: "SEK", Symbol: "kr", Name: "Swedish Krona"},
	{Code: "NOK", Symbol: "kr", Name: "Norwegian Krone"},
	{Code: "DKK", Symbol: "kr", Name: "Danish Krone"},
	{Code: "PLN", Symbol: "zł", Name: "Polish Złoty"},
	{Code: "CZK", Symbol: "Kč", Name: "Czech Koruna"},
	{Code: "HUF", Symbol: "Ft", Name: "Hungarian Forint"},
	{Code: "RUB", Symbol: "₽", Name: "Russian Ruble"},
	{Code: "BRL", Symbol: "R$", Name: "Brazilian Real"},
	{Code: "MXN", Symbol: "$", Name: "Mexican Peso"},
	{Code: "AED", Symbol: "د.إ", Name: "UAE Dirham"},
	{Code: "SAR", Symbol: "﷼", Name: "Saudi Riyal"},
	{Code: "ZAR", Symbol: "R", Name: "South African Rand"},
	{Code: "TRY", Symbol: "₺", Name: "Turkish Lira"},
	{Code: "THB", Symbol: "฿", Name: "Thai Baht"},
	{Code: "MYR", Symbol: "RM", Name: "Malaysian Ringgit"},
	{Code: "IDR", Symbol: "Rp", Name: "Indonesian Rupiah"},
	{Code: "PHP", Symbol: "₱", Name: "Philippine Peso"},
	{Code: "VND", Symbol: "₫", Name: "Vietnamese Dong"},
}

// LookupCurrency finds a catalog currency by its ISO code.
func LookupCurrency(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			c.Decimals = c.Places()
			return c, true
		}
	}
	return Currency{}, false
}

// DefaultCurrency returns the currency new bills start with.
func DefaultCurrency() Currency {
	c, _ := LookupCurrency(DefaultCurrencyCode)
	return c
}
