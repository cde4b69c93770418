package gst

// NewSummary returns a fresh zeroed accumulator. Every call yields an
// independent instance; accumulators are never shared across report runs.
func NewSummary() Summary {
	return Summary{}
}

// SplitFromDetails resolves the per-transaction tax split from the tagged
// breakdown. A nil input yields all zeros. The tag is trusted: amounts on the
// untagged branch are ignored rather than validated.
func SplitFromDetails(d *GSTDetails) (cgst, sgst, igst float64) {
	if d == nil {
		return 0, 0, 0
	}
	switch d.Type {
	case GSTTypeCGSTSGST:
		return d.CGSTAmount, d.SGSTAmount, 0
	case GSTTypeIGST:
		return 0, 0, d.IGSTAmount
	}
	return 0, 0, 0
}

// Fold accumulates one transaction into the summary. Invariant after every
// fold: Total == CGST + SGST + IGST + Cess (Cess is never produced today).
func (s *Summary) Fold(taxable, cgst, sgst, igst float64) {
	s.TaxableValue += taxable
	s.CGST += cgst
	s.SGST += sgst
	s.IGST += igst
	s.Total += cgst + sgst + igst
	s.TransactionCount++
}

// Plus returns the elementwise sum of two summaries.
func (s Summary) Plus(o Summary) Summary {
	return Summary{
		TaxableValue:     s.TaxableValue + o.TaxableValue,
		CGST:             s.CGST + o.CGST,
		SGST:             s.SGST + o.SGST,
		IGST:             s.IGST + o.IGST,
		Cess:             s.Cess + o.Cess,
		Total:            s.Total + o.Total,
		TransactionCount: s.TransactionCount + o.TransactionCount,
	}
}

// Minus nets another summary off this one, component-wise per tax head. Each
// head, cess and the total are computed independently so head-level
// granularity survives the netting.
func (s Summary) Minus(o Summary) Summary {
	return Summary{
		TaxableValue: s.TaxableValue - o.TaxableValue,
		CGST:         s.CGST - o.CGST,
		SGST:         s.SGST - o.SGST,
		IGST:         s.IGST - o.IGST,
		Cess:         s.Cess - o.Cess,
		Total:        s.Total - o.Total,
	}
}
