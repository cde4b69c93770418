package export

import (
	"encoding/json"
	"fmt"

	"github.com/sekkizharvdt/vapourtoolbox/internal/gst"
)

// Fixed section tags of the external format. Not computed: the portal schema
// names the import-of-goods ITC row IMPG and the rules-based reversal row RUL.
const (
	itcAvailTag   = "IMPG"
	itcReverseTag = "RUL"
)

type gstr3bDoc struct {
	GSTIN      string     `json:"gstin"`
	RetPeriod  string     `json:"ret_period"`
	SupDetails supDetails `json:"sup_details"`
	InterSup   []taxHeads `json:"inter_sup"`
	ITCElg     itcSection `json:"itc_elg"`
	TaxPayable taxHeads   `json:"tx_pybl"`
}

type supDetails struct {
	OsupDet taxDetail `json:"osup_det"`
}

type taxDetail struct {
	Txval float64 `json:"txval"`
	Camt  float64 `json:"camt"`
	Samt  float64 `json:"samt"`
	Iamt  float64 `json:"iamt"`
	Csamt float64 `json:"csamt"`
}

type taxHeads struct {
	Camt  float64 `json:"camt"`
	Samt  float64 `json:"samt"`
	Iamt  float64 `json:"iamt"`
	Csamt float64 `json:"csamt"`
}

type itcSection struct {
	ITCAvl []taggedHeads `json:"itc_avl"`
	ITCRev []taggedHeads `json:"itc_rev"`
	ITCNet taxHeads      `json:"itc_net"`
}

type taggedHeads struct {
	Ty    string  `json:"ty"`
	Camt  float64 `json:"camt"`
	Samt  float64 `json:"samt"`
	Iamt  float64 `json:"iamt"`
	Csamt float64 `json:"csamt"`
}

// GSTR3BJSON renders a generated GSTR-3B into the portal filing shape. The
// inter-state supplies section is always empty and the ITC arrays carry
// exactly one entry each, per the fixed conventions of the format.
func GSTR3BJSON(data gst.GSTR3B) (string, error) {
	doc := gstr3bDoc{
		GSTIN:     data.GSTIN,
		RetPeriod: filingPeriod(data.Period),
		SupDetails: supDetails{
			OsupDet: taxDetail{
				Txval: data.OutwardSupplies.TaxableValue,
				Camt:  data.OutwardSupplies.CGST,
				Samt:  data.OutwardSupplies.SGST,
				Iamt:  data.OutwardSupplies.IGST,
				Csamt: data.OutwardSupplies.Cess,
			},
		},
		InterSup: make([]taxHeads, 0),
		ITCElg: itcSection{
			ITCAvl: []taggedHeads{{
				Ty:    itcAvailTag,
				Camt:  data.ITCAvailable.CGST,
				Samt:  data.ITCAvailable.SGST,
				Iamt:  data.ITCAvailable.IGST,
				Csamt: data.ITCAvailable.Cess,
			}},
			ITCRev: []taggedHeads{{
				Ty:    itcReverseTag,
				Camt:  data.ITCReversed.CGST,
				Samt:  data.ITCReversed.SGST,
				Iamt:  data.ITCReversed.IGST,
				Csamt: data.ITCReversed.Cess,
			}},
			ITCNet: taxHeads{
				Camt:  data.NetITC.CGST,
				Samt:  data.NetITC.SGST,
				Iamt:  data.NetITC.IGST,
				Csamt: data.NetITC.Cess,
			},
		},
		TaxPayable: taxHeads{
			Camt:  data.GSTPayable.CGST,
			Samt:  data.GSTPayable.SGST,
			Iamt:  data.GSTPayable.IGST,
			Csamt: data.GSTPayable.Cess,
		},
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("export: marshal gstr3b: %w", err)
	}
	return string(raw), nil
}
