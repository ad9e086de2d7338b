package memory

import (
	"context"
	"sync"
	"time"

	"orgdir/internal/directory/store"
	dErrors "orgdir/pkg/domain-errors"
)

// defaultTxTimeout bounds how long a transactional block may run.
const defaultTxTimeout = 5 * time.Second

// Tx is the in-memory transactional boundary. It serializes transactions
// with a coarse lock, snapshots all four stores before running the callback,
// and restores the snapshots when the callback errors. That gives unit tests
// the same all-or-nothing semantics a database transaction provides.
type Tx struct {
	mu      sync.Mutex
	timeout time.Duration

	persons    *PersonStore
	contacts   *ContactStore
	principals *PrincipalStore
	accounts   *AccountStore
}

// NewTx builds a transactional boundary over the given stores.
func NewTx(persons *PersonStore, contacts *ContactStore, principals *PrincipalStore, accounts *AccountStore) *Tx {
	return &Tx{
		persons:    persons,
		contacts:   contacts,
		principals: principals,
		accounts:   accounts,
	}
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

	t.mu.Lock()
	defer t.mu.Unlock()

	personSnap := t.persons.snapshot()
	contactSnap := t.contacts.snapshot()
	principalSnap := t.principals.snapshot()
	accountSnap := t.accounts.snapshot()

	err := fn(ctx, store.Stores{
		Persons:    t.persons,
		Contacts:   t.contacts,
		Principals: t.principals,
		Accounts:   t.accounts,
	})
	if err != nil {
		t.persons.restore(personSnap)
		t.contacts.restore(contactSnap)
		t.principals.restore(principalSnap)
		t.accounts.restore(accountSnap)
		return err
	}
	return nil
}
