package domain

// Currency represents a supported currency in the domain.
// The registry is closed: codes outside it are rejected at the edges.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int    `json:"precision"`    // display decimal places
	IsSynthetic  bool   `json:"isSynthetic"`  // stable-asset codes, not ISO
}

// supportedCurrencies is the closed registry of currencies the engine
// understands, including synthetic stable-asset codes.
var supportedCurrencies = map[string]Currency{
	"USD":  {CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2},
	"EUR":  {CurrencyCode: "EUR", Symbol: "€", Name: "Euro", Precision: 2},
	"GBP":  {CurrencyCode: "GBP", Symbol: "£", Name: "Pound Sterling", Precision: 2},
	"INR":  {CurrencyCode: "INR", Symbol: "₹", Name: "Indian Rupee", Precision: 2},
	"NGN":  {CurrencyCode: "NGN", Symbol: "₦", Name: "Nigerian Naira", Precision: 2},
	"JPY":  {CurrencyCode: "JPY", Symbol: "¥", Name: "Japanese Yen", Precision: 0},
	"USDT": {CurrencyCode: "USDT", Symbol: "₮", Name: "Tether USD", Precision: 2, IsSynthetic: true},
	"USDC": {CurrencyCode: "USDC", Symbol: "$", Name: "USD Coin", Precision: 2, IsSynthetic: true},
}

// CurrencyByCode looks up a currency in the registry.
func CurrencyByCode(code string) (Currency, bool) {
	c, ok := supportedCurrencies[code]
	return c, ok
}

// IsSupportedCurrency reports whether the code is part of the closed registry.
func IsSupportedCurrency(code string) bool {
	_, ok := supportedCurrencies[code]
	return ok
}

// ListSupportedCurrencies returns all registry entries.
func ListSupportedCurrencies() []Currency {
	out := make([]Currency, 0, len(supportedCurrencies))
	for _, c := range supportedCurrencies {
		out = append(out, c)
	}
	return out
}
