// Package masterdata holds the immutable lookup tables shared across the
// application: payment methods, currencies, TDS sections and GST rate slabs.
package masterdata

// PaymentMethod identifies how a transaction was settled.
type PaymentMethod struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Currency carries the stored exchange rate against the base currency (INR).
type Currency struct {
	Code         string  `json:"code"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	ExchangeRate float64 `json:"exchangeRate"`
}

// TDSSection is a tax-deducted-at-source section with its statutory rate.
type TDSSection struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Rate        float64 `json:"rate"`
}

// PaymentMethods lists the supported settlement methods.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{Code: "CASH", Name: "Cash"},
		{Code: "CHEQUE", Name: "Cheque"},
		{Code: "BANK_TRANSFER", Name: "Bank Transfer"},
		{Code: "UPI", Name: "UPI"},
		{Code: "CARD", Name: "Credit/Debit Card"},
		{Code: "LC", Name: "Letter of Credit"},
	}
}

// Currencies lists the supported currencies with their stored rates. Rates are
// simple stored values; there is no live conversion.
func Currencies() []Currency {
	return []Currency{
		{Code: "INR", Symbol: "₹", Name: "Indian Rupee", ExchangeRate: 1},
		{Code: "USD", Symbol: "$", Name: "US Dollar", ExchangeRate: 83.2},
		{Code: "EUR", Symbol: "€", Name: "Euro", ExchangeRate: 90.4},
		{Code: "GBP", Symbol: "£", Name: "British Pound", ExchangeRate: 105.6},
		{Code: "AED", Symbol: "د.إ", Name: "UAE Dirham", ExchangeRate: 22.7},
		{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar", ExchangeRate: 61.9},
	}
}

// TDSSections lists the sections applicable to vendor payments.
func TDSSections() []TDSSection {
	return []TDSSection{
		{Code: "194C", Description: "Payment to contractors", Rate: 2},
		{Code: "194I", Description: "Rent", Rate: 10},
		{Code: "194J", Description: "Professional or technical services", Rate: 10},
		{Code: "194H", Description: "Commission or brokerage", Rate: 5},
		{Code: "194Q", Description: "Purchase of goods", Rate: 0.1},
	}
}

// GSTRateSlabs lists the statutory GST rate percentages.
func GSTRateSlabs() []float64 {
	return []float64{0, 5, 12, 18, 28}
}
