// Package export transforms generated GST returns into the portal filing JSON
// schema. Transforms are pure; field names follow the portal's abbreviated
// convention (ctin, idt, txval, camt, samt, iamt, csamt).
package export

import "time"

// DateLike is satisfied by timestamp wrappers exposing a ToDate accessor, the
// shape transaction dates arrive in from document-store style backends.
type DateLike interface {
	ToDate() time.Time
}

const portalDateLayout = "2006-01-02"

// FormatDate normalises the three accepted date shapes to YYYY-MM-DD: a
// DateLike wrapper, a time.Time, or an already formatted string. The
// triple-typed tolerance is a contract with callers, not an accident.
func FormatDate(v interface{}) string {
	switch d := v.(type) {
	case DateLike:
		return d.ToDate().Format(portalDateLayout)
	case time.Time:
		return d.Format(portalDateLayout)
	case *time.Time:
		if d == nil {
			return ""
		}
		return d.Format(portalDateLayout)
	case string:
		if parsed, err := time.Parse(portalDateLayout, d); err == nil {
			return parsed.Format(portalDateLayout)
		}
		return d
	}
	return ""
}
