package gst

import "time"

// TransactionType enumerates the posted transaction kinds the report engine reads.
type TransactionType string

const (
	TypeCustomerInvoice TransactionType = "CUSTOMER_INVOICE"
	TypeVendorBill      TransactionType = "VENDOR_BILL"
)

// TransactionStatus enumerates transaction workflow states.
type TransactionStatus string

const (
	StatusDraft    TransactionStatus = "DRAFT"
	StatusPosted   TransactionStatus = "POSTED"
	StatusApproved TransactionStatus = "APPROVED"
	StatusVoid     TransactionStatus = "VOID"
)

// ReportableStatuses are the statuses included in GST returns.
var ReportableStatuses = []TransactionStatus{StatusPosted, StatusApproved}

// GSTType tags the tax-split regime of a transaction. The two branches are
// mutually exclusive: intra-state supplies carry CGST+SGST, inter-state IGST.
type GSTType string

const (
	GSTTypeCGSTSGST GSTType = "CGST_SGST"
	GSTTypeIGST     GSTType = "IGST"
)

// GSTDetails is the tagged tax breakdown stored on a transaction. Only the
// amounts belonging to the tagged branch are meaningful.
type GSTDetails struct {
	Type       GSTType
	CGSTAmount float64
	SGSTAmount float64
	IGSTAmount float64
}

// LineItem is one line of a customer invoice or vendor bill.
type LineItem struct {
	HSNCode     string
	Description string
	Quantity    float64
	Amount      float64
	GSTRate     float64
}

// Transaction is an immutable snapshot of a posted accounting transaction as
// read from storage. Created and mutated entirely outside this package.
type Transaction struct {
	ID                string
	Type              TransactionType
	Status            TransactionStatus
	Date              time.Time
	Number            string
	EntityName        string
	CounterpartyGSTIN string
	TotalAmount       float64
	Subtotal          float64
	GST               *GSTDetails
	LineItems         []LineItem
}

// IsB2B reports whether the counterparty carries a registered GSTIN.
func (t Transaction) IsB2B() bool {
	return t.CounterpartyGSTIN != ""
}

// Summary is a strictly additive accumulator over a set of transactions.
type Summary struct {
	TaxableValue     float64 `json:"taxableValue"`
	CGST             float64 `json:"cgst"`
	SGST             float64 `json:"sgst"`
	IGST             float64 `json:"igst"`
	Cess             float64 `json:"cess"`
	Total            float64 `json:"total"`
	TransactionCount int     `json:"transactionCount"`
}

// InvoiceRow is a denormalised per-transaction report row carrying the
// classification outcome and GST split of its source transaction.
type InvoiceRow struct {
	TransactionID string    `json:"transactionId"`
	Number        string    `json:"number"`
	Date          time.Time `json:"date"`
	EntityName    string    `json:"entityName"`
	GSTIN         string    `json:"gstin,omitempty"`
	TaxableValue  float64   `json:"taxableValue"`
	CGST          float64   `json:"cgst"`
	SGST          float64   `json:"sgst"`
	IGST          float64   `json:"igst"`
	InvoiceValue  float64   `json:"invoiceValue"`
}

// Bucket groups classified rows with their running summary.
type Bucket struct {
	Invoices []InvoiceRow `json:"invoices"`
	Summary  Summary      `json:"summary"`
}

// HSNEntry aggregates line items sharing one HSN code across a whole report
// window. Line items without a code fall back to HSNUnclassified.
type HSNEntry struct {
	HSNCode       string  `json:"hsnCode"`
	Description   string  `json:"description"`
	TotalQuantity float64 `json:"totalQuantity"`
	TotalValue    float64 `json:"totalValue"`
	TaxableValue  float64 `json:"taxableValue"`
	CGST          float64 `json:"cgst"`
	SGST          float64 `json:"sgst"`
	IGST          float64 `json:"igst"`
}

// HSNUnclassified is the fallback bucket for line items with no HSN code.
const HSNUnclassified = "UNCLASSIFIED"

// Period identifies the filing month a report covers.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// GSTR1 is the outward-supplies return: sales classified B2B vs B2C with an
// HSN-wise rollup.
type GSTR1 struct {
	Period    Period     `json:"period"`
	GSTIN     string     `json:"gstin,omitempty"`
	LegalName string     `json:"legalName,omitempty"`
	B2B       Bucket     `json:"b2b"`
	B2C       Bucket     `json:"b2c"`
	HSN       []HSNEntry `json:"hsn"`
	Total     Summary    `json:"total"`
}

// GSTR2 is the inward-supplies return over vendor bills. The reverse-charge
// bucket is a hook only: nothing populates it until the transaction schema
// records reverse-charge applicability (see ReverseChargeApplies).
type GSTR2 struct {
	Period        Period     `json:"period"`
	Purchases     Bucket     `json:"purchases"`
	ReverseCharge Bucket     `json:"reverseCharge"`
	HSN           []HSNEntry `json:"hsn"`
	Total         Summary    `json:"total"`
}

// GSTR3B is the monthly summary return derived by composing GSTR-1 and GSTR-2.
type GSTR3B struct {
	Period              Period  `json:"period"`
	GSTIN               string  `json:"gstin,omitempty"`
	LegalName           string  `json:"legalName,omitempty"`
	OutwardSupplies     Summary `json:"outwardSupplies"`
	InwardSupplies      Summary `json:"inwardSupplies"`
	ITCAvailable        Summary `json:"itcAvailable"`
	ITCReversed         Summary `json:"itcReversed"`
	NetITC              Summary `json:"netItc"`
	InterestLatePayment Summary `json:"interestLatePayment"`
	GSTPayable          Summary `json:"gstPayable"`
}

// Placeholders for business rules not yet captured upstream. They are regulatory
// gaps, not shortcuts: reverse-charge detection needs a schema field, ITC
// reversal and late-payment interest need rules that do not exist yet.
const (
	// ReverseChargeApplies gates the GSTR-2 reverse-charge bucket.
	ReverseChargeApplies = false
)
