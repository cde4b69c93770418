package balancesheet

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgRepository provides PostgreSQL backed access to the chart of accounts.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Accounts returns the full chart of accounts with live balances. No date
// filter: balances are read exactly as currently stored.
func (r *PgRepository) Accounts(ctx context.Context) ([]Account, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, code, COALESCE(name, ''),
	COALESCE(balance, 0), COALESCE(debit, 0), COALESCE(credit, 0)
FROM accounts
ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var acc Account
		if err := rows.Scan(&acc.ID, &acc.Code, &acc.Name, &acc.Balance, &acc.Debit, &acc.Credit); err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}
