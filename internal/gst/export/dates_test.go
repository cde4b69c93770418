package export

import (
	"testing"
	"time"
)

type wrappedDate struct{ t time.Time }

func (w wrappedDate) ToDate() time.Time { return w.t }

func TestFormatDateAcceptsAllShapes(t *testing.T) {
	day := time.Date(2025, 4, 15, 10, 30, 0, 0, time.UTC)

	shapes := []interface{}{wrappedDate{t: day}, day, &day, "2025-04-15"}
	for _, shape := range shapes {
		if got := FormatDate(shape); got != "2025-04-15" {
			t.Fatalf("shape %T formatted to %q", shape, got)
		}
	}
}

func TestFormatDateEdgeShapes(t *testing.T) {
	if got := FormatDate((*time.Time)(nil)); got != "" {
		t.Fatalf("nil pointer should format empty, got %q", got)
	}
	if got := FormatDate("not-a-date"); got != "not-a-date" {
		t.Fatalf("unparseable string passes through, got %q", got)
	}
	if got := FormatDate(42); got != "" {
		t.Fatalf("unknown shape should format empty, got %q", got)
	}
}
