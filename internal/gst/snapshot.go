package gst

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSnapshotExists indicates a filing snapshot was already stored for the
// report type and period.
var ErrSnapshotExists = errors.New("gst: snapshot already exists for period")

// Snapshot is a persisted copy of a generated return, kept for audit once a
// filing has been prepared from it.
type Snapshot struct {
	ID         uuid.UUID
	ReportType string
	Period     string
	Payload    json.RawMessage
	CreatedAt  time.Time
}

// NewSnapshot wraps a generated report for persistence. Period uses the
// MM-YYYY filing convention.
func NewSnapshot(reportType string, period Period, report interface{}) (Snapshot, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return Snapshot{}, fmt.Errorf("gst: marshal snapshot: %w", err)
	}
	return Snapshot{
		ID:         uuid.New(),
		ReportType: reportType,
		Period:     fmt.Sprintf("%02d-%04d", period.Month, period.Year),
		Payload:    payload,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// SaveSnapshot stores a generated report. At most one snapshot may exist per
// (report type, period); duplicates surface ErrSnapshotExists.
func (r *PgRepository) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO gst_report_snapshots (id, report_type, period, payload, created_at)
VALUES ($1, $2, $3, $4, $5)`, snap.ID, snap.ReportType, snap.Period, snap.Payload, snap.CreatedAt)
	return mapSnapshotSaveError(err)
}

// mapSnapshotSaveError translates the period-uniqueness violation into
// ErrSnapshotExists; every other error passes through unchanged.
func mapSnapshotSaveError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_gst_snapshot_period" {
		return ErrSnapshotExists
	}
	return err
}

// ListSnapshots returns stored snapshots for a report type, newest first.
func (r *PgRepository) ListSnapshots(ctx context.Context, reportType string) ([]Snapshot, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, report_type, period, payload, created_at
FROM gst_report_snapshots WHERE report_type = $1 ORDER BY created_at DESC`, reportType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.ReportType, &snap.Period, &snap.Payload, &snap.CreatedAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snaps, nil
}
