package balancesheet

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrGenerate is the uniform error callers see when generation fails,
// whatever the underlying storage failure was. The GST generators deliberately
// do the opposite and let repository errors through unchanged.
var ErrGenerate = errors.New("balancesheet: failed to generate balance sheet")

// balanceTolerance is the absolute rounding slack allowed on the accounting
// equation before a sheet counts as out of balance.
const balanceTolerance = 0.01

// Repository provides read access to the chart of accounts.
type Repository interface {
	Accounts(ctx context.Context) ([]Account, error)
}

// Service builds balance sheet reports.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs the service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Generate reads the full chart of accounts and folds every account into its
// section. Zero-balance asset and liability accounts are dropped from the
// listings rather than shown as zero rows.
func (s *Service) Generate(ctx context.Context, asOf time.Time) (Report, error) {
	accounts, err := s.repo.Accounts(ctx)
	if err != nil {
		s.logger.Error("load chart of accounts", slog.Any("error", err))
		return Report{}, ErrGenerate
	}

	report := Report{AsOf: asOf}
	var revenue, expense float64

	for _, acc := range accounts {
		switch classify(acc.Code) {
		case classAsset:
			s.foldAsset(&report.Assets, acc)
		case classLiability:
			s.foldLiability(&report.Liabilities, acc)
		case classEquity:
			s.foldEquity(&report.Equity, acc)
		case classRevenue:
			revenue += acc.Credit - acc.Debit
		case classExpense:
			expense += acc.Debit - acc.Credit
		}
	}

	// Current year profit is always derived live from revenue and expense
	// accounts, never read from a stored equity account. A mid-period run
	// therefore reflects the running P&L.
	report.Equity.CurrentYearProfit = revenue - expense
	report.Equity.Total += report.Equity.CurrentYearProfit

	report.Difference = report.Assets.Total - (report.Liabilities.Total + report.Equity.Total)
	report.Balanced = math.Abs(report.Difference) < balanceTolerance
	return report, nil
}

func (s *Service) foldAsset(section *AssetSection, acc Account) {
	amount := acc.Debit - acc.Credit
	if amount == 0 {
		return
	}
	line := Line{Code: acc.Code, Name: acc.Name, Amount: amount}
	switch {
	case isCurrentAsset(acc):
		section.Current = append(section.Current, line)
		section.TotalCurrent += amount
	case isFixedAsset(acc):
		section.Fixed = append(section.Fixed, line)
		section.TotalFixed += amount
	default:
		section.Other = append(section.Other, line)
		section.TotalOther += amount
	}
	section.Total += amount
}

func (s *Service) foldLiability(section *LiabilitySection, acc Account) {
	amount := acc.Credit - acc.Debit
	if amount == 0 {
		return
	}
	line := Line{Code: acc.Code, Name: acc.Name, Amount: amount}
	if isCurrentLiability(acc) {
		section.Current = append(section.Current, line)
		section.TotalCurrent += amount
	} else {
		section.LongTerm = append(section.LongTerm, line)
		section.TotalLong += amount
	}
	section.Total += amount
}

// foldEquity lists only accounts matched by name; unmatched code-3 accounts
// contribute nothing to equity.
func (s *Service) foldEquity(section *EquitySection, acc Account) {
	amount := acc.Credit - acc.Debit
	line := Line{Code: acc.Code, Name: acc.Name, Amount: amount}
	switch {
	case isRetainedEarnings(acc):
		section.RetainedEarnings = append(section.RetainedEarnings, line)
		section.Total += amount
	case isCapitalAccount(acc):
		section.Capital = append(section.Capital, line)
		section.Total += amount
	}
}

// ValidateAccountingEquation describes the balance state of an already
// generated report. It never mutates or re-derives the report.
func ValidateAccountingEquation(report Report) string {
	printer := message.NewPrinter(language.English)
	if report.Balanced {
		return "balance sheet is balanced: assets equal liabilities plus equity"
	}
	if report.Difference > 0 {
		return printer.Sprintf("balance sheet is out of balance: assets exceed liabilities plus equity by %.2f", report.Difference)
	}
	return printer.Sprintf("balance sheet is out of balance: assets fall short of liabilities plus equity by %.2f", -report.Difference)
}
