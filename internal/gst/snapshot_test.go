package gst

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestNewSnapshotPeriodFormat(t *testing.T) {
	report := GSTR1{Period: Period{Month: 4, Year: 2025}}
	snap, err := NewSnapshot("GSTR1", report.Period, report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Period != "04-2025" {
		t.Fatalf("expected MM-YYYY period, got %q", snap.Period)
	}
	if snap.ID.String() == "" || len(snap.Payload) == 0 {
		t.Fatalf("snapshot missing id or payload: %+v", snap)
	}
	if snap.CreatedAt.After(time.Now().UTC()) {
		t.Fatalf("created at in the future: %v", snap.CreatedAt)
	}
}

func TestMapSnapshotSaveError(t *testing.T) {
	if err := mapSnapshotSaveError(nil); err != nil {
		t.Fatalf("nil must pass through, got %v", err)
	}

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "uq_gst_snapshot_period"}
	if err := mapSnapshotSaveError(dup); !errors.Is(err, ErrSnapshotExists) {
		t.Fatalf("period uniqueness violation must map to ErrSnapshotExists, got %v", err)
	}

	// The driver may hand the violation back wrapped.
	wrapped := fmt.Errorf("exec insert: %w", dup)
	if err := mapSnapshotSaveError(wrapped); !errors.Is(err, ErrSnapshotExists) {
		t.Fatalf("wrapped violation must still map, got %v", err)
	}

	other := &pgconn.PgError{Code: "23503", ConstraintName: "fk_snapshot_report"}
	if err := mapSnapshotSaveError(other); errors.Is(err, ErrSnapshotExists) {
		t.Fatalf("unrelated constraint must not map to ErrSnapshotExists")
	}

	plain := errors.New("connection reset")
	if err := mapSnapshotSaveError(plain); !errors.Is(err, plain) {
		t.Fatalf("unrelated errors must pass through, got %v", err)
	}
}
