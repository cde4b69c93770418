package gst

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type mockRepo struct {
	txs   map[TransactionType][]Transaction
	err   error
	calls int
}

func (m *mockRepo) TransactionsInWindow(ctx context.Context, txType TransactionType, statuses []TransactionStatus, from, to time.Time) ([]Transaction, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var out []Transaction
	for _, tx := range m.txs[txType] {
		if tx.Date.Before(from) || tx.Date.After(to) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func newTestService(t *testing.T, repo Repository) (*Service, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, time.Minute)
	svc := NewService(repo, cache)
	return svc, func() {
		_ = client.Close()
		mr.Close()
	}
}

func window() (time.Time, time.Time) {
	return time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
}

func intraInvoice(id string, day int, gstin string, subtotal, cgst, sgst float64) Transaction {
	return Transaction{
		ID:                id,
		Type:              TypeCustomerInvoice,
		Status:            StatusPosted,
		Date:              time.Date(2025, 4, day, 0, 0, 0, 0, time.UTC),
		Number:            "INV-" + id,
		EntityName:        "Acme Industries",
		CounterpartyGSTIN: gstin,
		TotalAmount:       subtotal + cgst + sgst,
		Subtotal:          subtotal,
		GST:               &GSTDetails{Type: GSTTypeCGSTSGST, CGSTAmount: cgst, SGSTAmount: sgst},
	}
}

func TestGenerateGSTR1Classification(t *testing.T) {
	b2b := intraInvoice("1", 5, "27AABCU9603R1ZM", 10000, 900, 900)
	b2c := intraInvoice("2", 9, "", 5000, 450, 450)
	repo := &mockRepo{txs: map[TransactionType][]Transaction{TypeCustomerInvoice: {b2b, b2c}}}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	from, to := window()
	report, err := svc.GenerateGSTR1(context.Background(), from, to, "27TESTGSTIN01Z5", "Vapour Toolbox Pvt Ltd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.B2B.Invoices) != 1 || len(report.B2C.Invoices) != 1 {
		t.Fatalf("expected 1 b2b and 1 b2c invoice, got %d/%d", len(report.B2B.Invoices), len(report.B2C.Invoices))
	}
	if report.B2B.Invoices[0].GSTIN != "27AABCU9603R1ZM" {
		t.Fatalf("b2b row lost its gstin: %+v", report.B2B.Invoices[0])
	}
	if report.B2B.Summary.CGST != 900 || report.B2B.Summary.SGST != 900 {
		t.Fatalf("unexpected b2b summary: %+v", report.B2B.Summary)
	}
	if report.Period.Month != 4 || report.Period.Year != 2025 {
		t.Fatalf("period must derive from the window start, got %+v", report.Period)
	}

	// Every transaction lands in exactly one bucket and the grand total is
	// the sum of both bucket summaries.
	want := report.B2B.Summary.Plus(report.B2C.Summary)
	if report.Total != want {
		t.Fatalf("total %+v does not match bucket sum %+v", report.Total, want)
	}
	if report.Total.TransactionCount != 2 {
		t.Fatalf("expected 2 classified transactions, got %d", report.Total.TransactionCount)
	}
}

func TestGenerateGSTR1EmptyWindow(t *testing.T) {
	repo := &mockRepo{}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	from, to := window()
	report, err := svc.GenerateGSTR1(context.Background(), from, to, "", "")
	if err != nil {
		t.Fatalf("empty window must be a valid report, got %v", err)
	}
	if len(report.B2B.Invoices) != 0 || len(report.B2C.Invoices) != 0 || len(report.HSN) != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
	if report.Total != NewSummary() {
		t.Fatalf("expected all-zero total, got %+v", report.Total)
	}
}

func TestGenerateGSTR1RepoErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &mockRepo{err: boom}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	from, to := window()
	if _, err := svc.GenerateGSTR1(context.Background(), from, to, "", ""); !errors.Is(err, boom) {
		t.Fatalf("repository error must propagate unchanged, got %v", err)
	}
}

func TestGenerateGSTR1Caches(t *testing.T) {
	repo := &mockRepo{txs: map[TransactionType][]Transaction{
		TypeCustomerInvoice: {intraInvoice("1", 5, "27AABCU9603R1ZM", 10000, 900, 900)},
	}}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	ctx := context.Background()
	from, to := window()
	if _, err := svc.GenerateGSTR1(ctx, from, to, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected 1 repo call, got %d", repo.calls)
	}

	// Second call should hit cache.
	if _, err := svc.GenerateGSTR1(ctx, from, to, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected cached result, repo called %d times", repo.calls)
	}

	// Bumping the cache should trigger reload.
	if err := svc.cache.Bump(ctx); err != nil {
		t.Fatalf("bump failed: %v", err)
	}
	if _, err := svc.GenerateGSTR1(ctx, from, to, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.calls != 2 {
		t.Fatalf("expected repo to refresh, calls %d", repo.calls)
	}
}

func TestGenerateGSTR1CacheKeyedByFilerIdentity(t *testing.T) {
	repo := &mockRepo{txs: map[TransactionType][]Transaction{
		TypeCustomerInvoice: {intraInvoice("1", 5, "27AABCU9603R1ZM", 10000, 900, 900)},
	}}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	ctx := context.Background()
	from, to := window()
	first, err := svc.GenerateGSTR1(ctx, from, to, "27TESTGSTIN01Z5", "Alpha Traders Pvt Ltd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.GenerateGSTR1(ctx, from, to, "27TESTGSTIN01Z5", "Beta Traders Pvt Ltd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.LegalName != "Alpha Traders Pvt Ltd" {
		t.Fatalf("unexpected first legal name %q", first.LegalName)
	}
	// The legal name is part of the filer identity: a window cached for one
	// filer must never be served to another.
	if second.LegalName != "Beta Traders Pvt Ltd" {
		t.Fatalf("cache leaked the previous filer name, got %q", second.LegalName)
	}

	gstr3bAlpha, err := svc.GenerateGSTR3B(ctx, from, to, "27TESTGSTIN01Z5", "Alpha Traders Pvt Ltd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gstr3bBeta, err := svc.GenerateGSTR3B(ctx, from, to, "27TESTGSTIN01Z5", "Beta Traders Pvt Ltd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gstr3bAlpha.LegalName != "Alpha Traders Pvt Ltd" || gstr3bBeta.LegalName != "Beta Traders Pvt Ltd" {
		t.Fatalf("gstr3b cache leaked across filer names: %q then %q", gstr3bAlpha.LegalName, gstr3bBeta.LegalName)
	}
}

func TestGenerateGSTR1AdditiveAcrossWindows(t *testing.T) {
	txs := []Transaction{
		intraInvoice("1", 3, "27AABCU9603R1ZM", 10000, 900, 900),
		intraInvoice("2", 20, "", 5000, 450, 450),
	}
	repo := &mockRepo{txs: map[TransactionType][]Transaction{TypeCustomerInvoice: txs}}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	ctx := context.Background()
	full, err := svc.GenerateGSTR1(ctx, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, err := svc.GenerateGSTR1(ctx, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.GenerateGSTR1(ctx, time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := first.Total.Plus(second.Total); got != full.Total {
		t.Fatalf("split windows must sum to the full window: %+v vs %+v", got, full.Total)
	}
}

func TestGenerateGSTR2ReverseChargeStaysEmpty(t *testing.T) {
	bill := Transaction{
		ID:                "b1",
		Type:              TypeVendorBill,
		Status:            StatusApproved,
		Date:              time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC),
		Number:            "BILL-1",
		EntityName:        "Supplies Co",
		CounterpartyGSTIN: "29AAACS1234F1Z2",
		TotalAmount:       5900,
		Subtotal:          5000,
		GST:               &GSTDetails{Type: GSTTypeCGSTSGST, CGSTAmount: 450, SGSTAmount: 450},
	}
	repo := &mockRepo{txs: map[TransactionType][]Transaction{TypeVendorBill: {bill}}}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	from, to := window()
	report, err := svc.GenerateGSTR2(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.ReverseCharge.Invoices) != 0 {
		t.Fatalf("reverse charge bucket must stay empty, got %d rows", len(report.ReverseCharge.Invoices))
	}
	if len(report.Purchases.Invoices) != 1 {
		t.Fatalf("expected 1 purchase row, got %d", len(report.Purchases.Invoices))
	}
	if report.Total.CGST != 450 || report.Total.SGST != 450 {
		t.Fatalf("unexpected total: %+v", report.Total)
	}
}

func TestGenerateGSTR3BNetting(t *testing.T) {
	sale := intraInvoice("s1", 5, "27AABCU9603R1ZM", 10000, 900, 900)
	purchase := Transaction{
		ID:       "p1",
		Type:     TypeVendorBill,
		Status:   StatusPosted,
		Date:     time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		Number:   "BILL-1",
		Subtotal: 5000,
		GST:      &GSTDetails{Type: GSTTypeCGSTSGST, CGSTAmount: 450, SGSTAmount: 450},
	}
	repo := &mockRepo{txs: map[TransactionType][]Transaction{
		TypeCustomerInvoice: {sale},
		TypeVendorBill:      {purchase},
	}}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	from, to := window()
	report, err := svc.GenerateGSTR3B(context.Background(), from, to, "27TESTGSTIN01Z5", "Vapour Toolbox Pvt Ltd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.ITCAvailable.CGST != 450 || report.ITCAvailable.SGST != 450 {
		t.Fatalf("unexpected ITC available: %+v", report.ITCAvailable)
	}
	if report.ITCReversed != NewSummary() || report.InterestLatePayment != NewSummary() {
		t.Fatalf("reversal and interest must stay zero placeholders")
	}
	if report.NetITC.CGST != 450 || report.NetITC.SGST != 450 {
		t.Fatalf("unexpected net ITC: %+v", report.NetITC)
	}
	if report.GSTPayable.CGST != 450 || report.GSTPayable.SGST != 450 {
		t.Fatalf("payable must net each head independently: %+v", report.GSTPayable)
	}
	if report.Period.Month != 4 || report.Period.Year != 2025 {
		t.Fatalf("unexpected period: %+v", report.Period)
	}
}

func TestFoldHSNUnclassifiedFallback(t *testing.T) {
	tx := intraInvoice("1", 5, "", 10000, 900, 900)
	tx.LineItems = []LineItem{
		{HSNCode: "", Description: "loose items", Quantity: 2, Amount: 4000, GSTRate: 18},
		{HSNCode: "8471", Description: "computing units", Quantity: 1, Amount: 6000, GSTRate: 18},
	}
	repo := &mockRepo{txs: map[TransactionType][]Transaction{TypeCustomerInvoice: {tx}}}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	from, to := window()
	report, err := svc.GenerateGSTR1(context.Background(), from, to, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.HSN) != 2 {
		t.Fatalf("expected 2 hsn entries, got %d", len(report.HSN))
	}
	// Sorted by code: 8471 before UNCLASSIFIED.
	if report.HSN[0].HSNCode != "8471" || report.HSN[1].HSNCode != HSNUnclassified {
		t.Fatalf("unexpected hsn ordering: %+v", report.HSN)
	}
}

func TestFoldHSNAggregation(t *testing.T) {
	first := intraInvoice("1", 3, "", 4000, 360, 360)
	first.LineItems = []LineItem{{HSNCode: "8471", Quantity: 2, Amount: 4000, GSTRate: 18}}
	second := intraInvoice("2", 7, "", 2000, 180, 180)
	second.LineItems = []LineItem{{HSNCode: "8471", Quantity: 1, Amount: 2000, GSTRate: 18}}

	repo := &mockRepo{txs: map[TransactionType][]Transaction{TypeCustomerInvoice: {first, second}}}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	from, to := window()
	report, err := svc.GenerateGSTR1(context.Background(), from, to, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.HSN) != 1 {
		t.Fatalf("expected one aggregated entry, got %d", len(report.HSN))
	}
	entry := report.HSN[0]
	if entry.TotalQuantity != 3 || entry.TaxableValue != 6000 {
		t.Fatalf("unexpected aggregation: %+v", entry)
	}
	// First invoice seeds with its parent split (360/360); the second adds
	// its line tax 2000*18% halved across cgst and sgst.
	if entry.CGST != 540 || entry.SGST != 540 {
		t.Fatalf("unexpected tax accumulation: cgst %.2f sgst %.2f", entry.CGST, entry.SGST)
	}
}

func TestGenerateGSTR1Idempotent(t *testing.T) {
	repo := &mockRepo{txs: map[TransactionType][]Transaction{
		TypeCustomerInvoice: {
			intraInvoice("1", 5, "27AABCU9603R1ZM", 10000, 900, 900),
			intraInvoice("2", 9, "", 5000, 450, 450),
		},
	}}
	// Bypass the cache so both runs rebuild from the repository.
	svc := NewService(repo, nil)

	ctx := context.Background()
	from, to := window()
	first, err := svc.GenerateGSTR1(ctx, from, to, "27TESTGSTIN01Z5", "Vapour Toolbox Pvt Ltd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.GenerateGSTR1(ctx, from, to, "27TESTGSTIN01Z5", "Vapour Toolbox Pvt Ltd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Total != second.Total || len(first.HSN) != len(second.HSN) {
		t.Fatalf("reports over unchanged data must be identical")
	}
	for i := range first.HSN {
		if first.HSN[i] != second.HSN[i] {
			t.Fatalf("hsn ordering must be deterministic: %+v vs %+v", first.HSN[i], second.HSN[i])
		}
	}
}
