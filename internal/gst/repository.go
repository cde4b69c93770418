package gst

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgRepository provides PostgreSQL backed read access to transactions.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// TransactionsInWindow returns transactions of the given type and statuses
// dated within [from, to] inclusive, with their line items attached.
func (r *PgRepository) TransactionsInWindow(ctx context.Context, txType TransactionType, statuses []TransactionStatus, from, to time.Time) ([]Transaction, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, type, status, date, number,
	COALESCE(entity_name, ''), COALESCE(counterparty_gstin, ''),
	COALESCE(total_amount, 0), COALESCE(subtotal, 0),
	COALESCE(gst_type, ''), COALESCE(cgst_amount, 0), COALESCE(sgst_amount, 0), COALESCE(igst_amount, 0)
FROM transactions
WHERE type = $1 AND status = ANY($2) AND date >= $3 AND date <= $4
ORDER BY date, id`, txType, statusStrings(statuses), from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []Transaction
	ids := make([]string, 0)
	index := make(map[string]int)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		index[tx.ID] = len(txs)
		ids = append(ids, tx.ID)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return txs, nil
	}

	lineRows, err := r.pool.Query(ctx, `SELECT transaction_id, COALESCE(hsn_code, ''),
	COALESCE(description, ''), COALESCE(quantity, 0), COALESCE(amount, 0), COALESCE(gst_rate, 0)
FROM transaction_lines
WHERE transaction_id = ANY($1)
ORDER BY transaction_id, id`, ids)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var txID string
		var item LineItem
		if err := lineRows.Scan(&txID, &item.HSNCode, &item.Description, &item.Quantity, &item.Amount, &item.GSTRate); err != nil {
			return nil, err
		}
		if i, ok := index[txID]; ok {
			txs[i].LineItems = append(txs[i].LineItems, item)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, err
	}
	return txs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTransaction is the single defaulting point for transaction rows: absent
// amounts become zero, absent strings empty, and the GST branch is attached
// only when a recognised tag is stored.
func scanTransaction(row rowScanner) (Transaction, error) {
	var tx Transaction
	var gstType string
	var cgst, sgst, igst float64
	if err := row.Scan(&tx.ID, &tx.Type, &tx.Status, &tx.Date, &tx.Number,
		&tx.EntityName, &tx.CounterpartyGSTIN,
		&tx.TotalAmount, &tx.Subtotal,
		&gstType, &cgst, &sgst, &igst); err != nil {
		return Transaction{}, err
	}
	switch GSTType(gstType) {
	case GSTTypeCGSTSGST:
		tx.GST = &GSTDetails{Type: GSTTypeCGSTSGST, CGSTAmount: cgst, SGSTAmount: sgst}
	case GSTTypeIGST:
		tx.GST = &GSTDetails{Type: GSTTypeIGST, IGSTAmount: igst}
	}
	return tx, nil
}

func statusStrings(statuses []TransactionStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
