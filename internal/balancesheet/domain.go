// Package balancesheet aggregates chart-of-accounts balances into an
// Assets = Liabilities + Equity statement.
package balancesheet

import "time"

// Account is a chart-of-accounts row with its live stored balances. The
// generator reads balances as posted; it never recomputes them from the
// transaction ledger, so callers must post closing entries first.
type Account struct {
	ID      string
	Code    string
	Name    string
	Balance float64
	Debit   float64
	Credit  float64
}

// Line is one report row derived from an account.
type Line struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// AssetSection groups asset accounts by liquidity.
type AssetSection struct {
	Current      []Line  `json:"current"`
	Fixed        []Line  `json:"fixed"`
	Other        []Line  `json:"other"`
	TotalCurrent float64 `json:"totalCurrent"`
	TotalFixed   float64 `json:"totalFixed"`
	TotalOther   float64 `json:"totalOther"`
	Total        float64 `json:"total"`
}

// LiabilitySection groups liability accounts by term.
type LiabilitySection struct {
	Current      []Line  `json:"current"`
	LongTerm     []Line  `json:"longTerm"`
	TotalCurrent float64 `json:"totalCurrent"`
	TotalLong    float64 `json:"totalLongTerm"`
	Total        float64 `json:"total"`
}

// EquitySection carries owner capital, retained earnings and the live-derived
// current year profit.
type EquitySection struct {
	Capital           []Line  `json:"capital"`
	RetainedEarnings  []Line  `json:"retainedEarnings"`
	CurrentYearProfit float64 `json:"currentYearProfit"`
	Total             float64 `json:"total"`
}

// Report is the generated balance sheet. An out-of-balance sheet is reported
// through Balanced and Difference, never through an error.
type Report struct {
	AsOf        time.Time        `json:"asOf"`
	Assets      AssetSection     `json:"assets"`
	Liabilities LiabilitySection `json:"liabilities"`
	Equity      EquitySection    `json:"equity"`
	Balanced    bool             `json:"balanced"`
	Difference  float64          `json:"difference"`
}
