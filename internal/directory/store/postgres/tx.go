package postgres

import (
	"context"
	"database/sql"
	"time"

	"orgdir/internal/directory/store"
	dErrors "orgdir/pkg/domain-errors"
	txcontext "orgdir/pkg/platform/tx"
)

// defaultTxTimeout bounds a transactional block when the caller supplied no
// deadline of its own.
const defaultTxTimeout = 5 * time.Second

// Tx runs aggregate mutations inside one SQL transaction. The callback
// receives stores scoped to that transaction, and the context it receives
// carries the transaction so cross-cutting writes (the audit outbox) join it.
// Any callback error rolls the transaction back before it propagates.
type Tx struct {
	db      *sql.DB
	timeout time.Duration
}

// NewTx builds the production transactional boundary.
func NewTx(db *sql.DB) *Tx {
	return &Tx{db: db}
}

func (t *Tx) RunInTx(ctx context.Context, fn func(ctx context.Context, stores store.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeTransaction, "begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	scoped := store.Stores{
		Persons:    NewPersonStore(tx),
		Contacts:   NewContactStore(tx),
		Principals: NewPrincipalStore(tx),
		Accounts:   NewAccountStore(tx),
	}
	if err := fn(txcontext.WithTx(ctx, tx), scoped); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTransaction, "commit transaction")
	}
	return nil
}
