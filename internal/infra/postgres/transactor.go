package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// beginner starts transactions. *pgxpool.Pool satisfies it.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxFunc runs inside a transaction.
type TxFunc func(ctx context.Context, tx pgx.Tx) error

// Transactor runs bank updates atomically.
type Transactor struct {
	db beginner
}

func NewTransactor(db beginner) *Transactor {
	return &Transactor{db: db}
}

// WithinTx commits fn's work, or rolls it back when fn fails.
// Errors are prefixed with op.
func (t *Transactor) WithinTx(ctx context.Context, op string, fn TxFunc) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	// No-op after a successful commit.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, tx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: commit tx: %w", op, err)
	}
	return nil
}
