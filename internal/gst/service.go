package gst

import (
	"context"
	"sort"
	"time"
)

// Repository provides read access to posted transactions. Implementations must
// apply the window filter inclusively on both bounds.
type Repository interface {
	TransactionsInWindow(ctx context.Context, txType TransactionType, statuses []TransactionStatus, from, to time.Time) ([]Transaction, error)
}

// Service generates GST returns over a transaction window. Each call builds
// fresh accumulators; no state crosses invocations.
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService constructs the report service.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// GenerateGSTR1 builds the outward-supplies return for the window. Repository
// errors propagate unchanged; an empty window is a valid all-zero report.
func (s *Service) GenerateGSTR1(ctx context.Context, from, to time.Time, gstin, legalName string) (GSTR1, error) {
	var report GSTR1
	key, err := s.cache.BuildKey(ctx, keyGSTR1(from, to, gstin, legalName)...)
	if err != nil {
		return GSTR1{}, err
	}
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
		return s.buildGSTR1(ctx, from, to, gstin, legalName)
	})
	return report, err
}

// GenerateGSTR2 builds the inward-supplies return for the window.
func (s *Service) GenerateGSTR2(ctx context.Context, from, to time.Time) (GSTR2, error) {
	var report GSTR2
	key, err := s.cache.BuildKey(ctx, keyGSTR2(from, to)...)
	if err != nil {
		return GSTR2{}, err
	}
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
		return s.buildGSTR2(ctx, from, to)
	})
	return report, err
}

// GenerateGSTR3B composes GSTR-1 and GSTR-2 sequentially and derives the
// input-tax-credit netting. ITC reversal and late-payment interest stay zero
// until their business rules are modelled.
func (s *Service) GenerateGSTR3B(ctx context.Context, from, to time.Time, gstin, legalName string) (GSTR3B, error) {
	var report GSTR3B
	key, err := s.cache.BuildKey(ctx, keyGSTR3B(from, to, gstin, legalName)...)
	if err != nil {
		return GSTR3B{}, err
	}
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
		gstr1, err := s.GenerateGSTR1(ctx, from, to, gstin, legalName)
		if err != nil {
			return nil, err
		}
		gstr2, err := s.GenerateGSTR2(ctx, from, to)
		if err != nil {
			return nil, err
		}

		itcAvailable := gstr2.Total
		itcReversed := NewSummary()
		interest := NewSummary()
		netITC := itcAvailable.Minus(itcReversed)

		return GSTR3B{
			Period:              gstr1.Period,
			GSTIN:               gstin,
			LegalName:           legalName,
			OutwardSupplies:     gstr1.Total,
			InwardSupplies:      gstr2.Total,
			ITCAvailable:        itcAvailable,
			ITCReversed:         itcReversed,
			NetITC:              netITC,
			InterestLatePayment: interest,
			GSTPayable:          gstr1.Total.Minus(netITC).Plus(interest),
		}, nil
	})
	return report, err
}

func (s *Service) buildGSTR1(ctx context.Context, from, to time.Time, gstin, legalName string) (GSTR1, error) {
	txs, err := s.repo.TransactionsInWindow(ctx, TypeCustomerInvoice, ReportableStatuses, from, to)
	if err != nil {
		return GSTR1{}, err
	}

	report := GSTR1{
		Period:    periodFromStart(from),
		GSTIN:     gstin,
		LegalName: legalName,
		B2B:       Bucket{Invoices: make([]InvoiceRow, 0)},
		B2C:       Bucket{Invoices: make([]InvoiceRow, 0)},
	}
	hsn := make(map[string]*HSNEntry)

	for _, tx := range txs {
		row := rowFromTransaction(tx)
		if tx.IsB2B() {
			report.B2B.Invoices = append(report.B2B.Invoices, row)
			report.B2B.Summary.Fold(tx.Subtotal, row.CGST, row.SGST, row.IGST)
		} else {
			report.B2C.Invoices = append(report.B2C.Invoices, row)
			report.B2C.Summary.Fold(tx.Subtotal, row.CGST, row.SGST, row.IGST)
		}
		foldHSN(hsn, tx)
	}

	report.HSN = sortedHSN(hsn)
	report.Total = report.B2B.Summary.Plus(report.B2C.Summary)
	return report, nil
}

func (s *Service) buildGSTR2(ctx context.Context, from, to time.Time) (GSTR2, error) {
	txs, err := s.repo.TransactionsInWindow(ctx, TypeVendorBill, ReportableStatuses, from, to)
	if err != nil {
		return GSTR2{}, err
	}

	report := GSTR2{
		Period:        periodFromStart(from),
		Purchases:     Bucket{Invoices: make([]InvoiceRow, 0)},
		ReverseCharge: Bucket{Invoices: make([]InvoiceRow, 0)},
	}
	hsn := make(map[string]*HSNEntry)

	for _, tx := range txs {
		row := rowFromTransaction(tx)
		if ReverseChargeApplies {
			report.ReverseCharge.Invoices = append(report.ReverseCharge.Invoices, row)
			report.ReverseCharge.Summary.Fold(tx.Subtotal, row.CGST, row.SGST, row.IGST)
		} else {
			report.Purchases.Invoices = append(report.Purchases.Invoices, row)
			report.Purchases.Summary.Fold(tx.Subtotal, row.CGST, row.SGST, row.IGST)
		}
		foldHSN(hsn, tx)
	}

	report.HSN = sortedHSN(hsn)
	report.Total = report.Purchases.Summary.Plus(report.ReverseCharge.Summary)
	return report, nil
}

// periodFromStart labels the report from the window's start bound only; the
// end bound is never validated against it.
func periodFromStart(from time.Time) Period {
	return Period{Month: int(from.Month()), Year: from.Year()}
}

func rowFromTransaction(tx Transaction) InvoiceRow {
	cgst, sgst, igst := SplitFromDetails(tx.GST)
	return InvoiceRow{
		TransactionID: tx.ID,
		Number:        tx.Number,
		Date:          tx.Date,
		EntityName:    tx.EntityName,
		GSTIN:         tx.CounterpartyGSTIN,
		TaxableValue:  tx.Subtotal,
		CGST:          cgst,
		SGST:          sgst,
		IGST:          igst,
		InvoiceValue:  tx.TotalAmount,
	}
}

// foldHSN folds every line item of a transaction into the HSN map. A new code
// is seeded with the parent transaction's split; an existing code accumulates
// the item's own amount*rate tax, halved across CGST/SGST for intra-state
// parents or taken wholly as IGST for inter-state ones.
func foldHSN(entries map[string]*HSNEntry, tx Transaction) {
	cgst, sgst, igst := SplitFromDetails(tx.GST)
	intraState := tx.GST != nil && tx.GST.Type == GSTTypeCGSTSGST

	for _, item := range tx.LineItems {
		code := item.HSNCode
		if code == "" {
			code = HSNUnclassified
		}
		entry, ok := entries[code]
		if !ok {
			entries[code] = &HSNEntry{
				HSNCode:       code,
				Description:   item.Description,
				TotalQuantity: item.Quantity,
				TotalValue:    item.Amount,
				TaxableValue:  item.Amount,
				CGST:          cgst,
				SGST:          sgst,
				IGST:          igst,
			}
			continue
		}
		entry.TotalQuantity += item.Quantity
		entry.TotalValue += item.Amount
		entry.TaxableValue += item.Amount
		tax := item.Amount * item.GSTRate / 100
		if intraState {
			entry.CGST += tax / 2
			entry.SGST += tax / 2
		} else {
			entry.IGST += tax
		}
	}
}

func sortedHSN(entries map[string]*HSNEntry) []HSNEntry {
	list := make([]HSNEntry, 0, len(entries))
	for _, entry := range entries {
		list = append(list, *entry)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].HSNCode < list[j].HSNCode })
	return list
}
