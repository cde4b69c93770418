package export

import (
	"encoding/json"
	"fmt"

	"github.com/sekkizharvdt/vapourtoolbox/internal/gst"
)

// Stand-ins for data not captured upstream yet. Place of supply and the B2C
// aggregate rate need per-transaction fields before they can be real values.
const (
	PlaceholderPOS      = "27"
	PlaceholderB2CSRate = 18.0
)

// B2CLargeThreshold separates large B2C invoices (reported individually) from
// the aggregated small bucket.
const B2CLargeThreshold = 250000.0

type gstr1Doc struct {
	GSTIN string     `json:"gstin"`
	FP    string     `json:"fp"`
	B2B   []b2bParty `json:"b2b"`
	B2CL  []b2cLarge `json:"b2cl"`
	B2CS  []b2cSmall `json:"b2cs"`
	HSN   hsnSection `json:"hsn"`
}

type b2bParty struct {
	CTIN string       `json:"ctin"`
	Inv  []b2bInvoice `json:"inv"`
}

type b2bInvoice struct {
	Inum string        `json:"inum"`
	Idt  string        `json:"idt"`
	Val  float64       `json:"val"`
	Itms []invoiceItem `json:"itms"`
}

type invoiceItem struct {
	Num    int        `json:"num"`
	ItmDet itemDetail `json:"itm_det"`
}

type itemDetail struct {
	Txval float64 `json:"txval"`
	Camt  float64 `json:"camt"`
	Samt  float64 `json:"samt"`
	Iamt  float64 `json:"iamt"`
	Csamt float64 `json:"csamt"`
}

type b2cLarge struct {
	Num   string  `json:"inum"`
	Idt   string  `json:"idt"`
	Val   float64 `json:"val"`
	Txval float64 `json:"txval"`
	Camt  float64 `json:"camt"`
	Samt  float64 `json:"samt"`
	Iamt  float64 `json:"iamt"`
	Csamt float64 `json:"csamt"`
}

type b2cSmall struct {
	SplyTy string  `json:"sply_ty"`
	Pos    string  `json:"pos"`
	Typ    string  `json:"typ"`
	Rt     float64 `json:"rt"`
	Txval  float64 `json:"txval"`
	Camt   float64 `json:"camt"`
	Samt   float64 `json:"samt"`
	Iamt   float64 `json:"iamt"`
	Csamt  float64 `json:"csamt"`
}

type hsnSection struct {
	Data []hsnRow `json:"data"`
}

type hsnRow struct {
	Num   int     `json:"num"`
	HsnSc string  `json:"hsn_sc"`
	Desc  string  `json:"desc"`
	Qty   float64 `json:"qty"`
	Txval float64 `json:"txval"`
	Camt  float64 `json:"camt"`
	Samt  float64 `json:"samt"`
	Iamt  float64 `json:"iamt"`
	Csamt float64 `json:"csamt"`
}

// GSTR1JSON renders a generated GSTR-1 into the portal filing shape. Known
// simplification: invoices are emitted one per counterparty entry rather than
// batched under a shared ctin; downstream tooling accepts both nestings.
func GSTR1JSON(data gst.GSTR1) (string, error) {
	doc := gstr1Doc{
		GSTIN: data.GSTIN,
		FP:    filingPeriod(data.Period),
		B2B:   make([]b2bParty, 0, len(data.B2B.Invoices)),
		B2CL:  make([]b2cLarge, 0),
		B2CS:  make([]b2cSmall, 0, 1),
		HSN:   hsnSection{Data: make([]hsnRow, 0, len(data.HSN))},
	}

	for _, inv := range data.B2B.Invoices {
		doc.B2B = append(doc.B2B, b2bParty{
			CTIN: inv.GSTIN,
			Inv: []b2bInvoice{{
				Inum: inv.Number,
				Idt:  FormatDate(inv.Date),
				Val:  inv.InvoiceValue,
				Itms: []invoiceItem{{
					Num: 1,
					ItmDet: itemDetail{
						Txval: inv.TaxableValue,
						Camt:  inv.CGST,
						Samt:  inv.SGST,
						Iamt:  inv.IGST,
					},
				}},
			}},
		})
	}

	// Large invoices are reported individually; the aggregate bucket still
	// covers the whole B2C volume, large invoices included.
	var small b2cSmall
	for _, inv := range data.B2C.Invoices {
		if inv.InvoiceValue > B2CLargeThreshold {
			doc.B2CL = append(doc.B2CL, b2cLarge{
				Num:   inv.Number,
				Idt:   FormatDate(inv.Date),
				Val:   inv.InvoiceValue,
				Txval: inv.TaxableValue,
				Camt:  inv.CGST,
				Samt:  inv.SGST,
				Iamt:  inv.IGST,
			})
		}
		small.Txval += inv.TaxableValue
		small.Camt += inv.CGST
		small.Samt += inv.SGST
		small.Iamt += inv.IGST
	}
	if len(data.B2C.Invoices) > 0 {
		small.SplyTy = "INTRA"
		small.Pos = PlaceholderPOS
		small.Typ = "OE"
		small.Rt = PlaceholderB2CSRate
		doc.B2CS = append(doc.B2CS, small)
	}

	for i, entry := range data.HSN {
		doc.HSN.Data = append(doc.HSN.Data, hsnRow{
			Num:   i + 1,
			HsnSc: entry.HSNCode,
			Desc:  entry.Description,
			Qty:   entry.TotalQuantity,
			Txval: entry.TaxableValue,
			Camt:  entry.CGST,
			Samt:  entry.SGST,
			Iamt:  entry.IGST,
		})
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("export: marshal gstr1: %w", err)
	}
	return string(raw), nil
}

func filingPeriod(p gst.Period) string {
	return fmt.Sprintf("%02d%04d", p.Month, p.Year)
}
