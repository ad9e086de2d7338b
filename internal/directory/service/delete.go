package service

import (
	"context"
	"errors"
	"time"

	"orgdir/internal/directory/store"
	id "orgdir/pkg/domain"
	dErrors "orgdir/pkg/domain-errors"
	"orgdir/pkg/platform/audit"
	"orgdir/pkg/platform/sentinel"
)

// DeletePerson cascade-deletes the person aggregate inside one transaction,
// in strict dependency order: accounts, then the principal, then contacts,
// then the person row itself.
//
// Existence is checked first: a missing person fails with not-found before
// any delete is attempted. After the check passes the cascade proceeds
// unconditionally; any step failure (including a not-found caused by a
// concurrent delete) rolls the whole transaction back, so no partial delete
// is ever observable.
func (s *Service) DeletePerson(ctx context.Context, personID id.PersonID) error {
	ctx, span := s.startSpan(ctx, "directory.DeletePerson")
	defer span.End()
	start := time.Now()

	if personID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "person ID is required")
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context, stores store.Stores) error {
		exists, err := stores.Persons.Exists(txCtx, personID)
		if err != nil {
			return translateStoreErr(err, "person not found", "person conflict", "failed to check person")
		}
		if !exists {
			return dErrors.New(dErrors.CodeNotFound, "person not found")
		}

		principal, err := stores.Principals.FindByPerson(txCtx, personID)
		switch {
		case err == nil:
			if _, err := stores.Accounts.DeleteByPrincipal(txCtx, principal.ID); err != nil {
				return translateStoreErr(err, "account not found", "account conflict", "failed to delete accounts")
			}
			if err := stores.Principals.Delete(txCtx, principal.ID); err != nil {
				return translateStoreErr(err, "principal not found", "principal conflict", "failed to delete principal")
			}
		case errors.Is(err, sentinel.ErrNotFound):
			// Nothing elevated; fall through to contacts.
		default:
			return translateStoreErr(err, "principal not found", "principal conflict", "failed to look up principal")
		}

		if _, err := stores.Contacts.DeleteByPerson(txCtx, personID); err != nil {
			return translateStoreErr(err, "contact not found", "contact conflict", "failed to delete contacts")
		}
		if err := stores.Persons.Delete(txCtx, personID); err != nil {
			return translateStoreErr(err, "person not found", "person conflict", "failed to delete person")
		}

		return s.emitAudit(txCtx, audit.Event{
			Timestamp: time.Now(),
			PersonID:  personID,
			Action:    audit.ActionPersonDeleted,
		})
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.PersonsDeleted.Inc()
		s.metrics.ObserveDelete(start)
	}
	s.logger.InfoContext(ctx, "person deleted", "person_id", personID.String())
	return nil
}
