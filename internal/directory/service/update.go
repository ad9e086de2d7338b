package service

import (
	"context"
	"time"

	"orgdir/internal/directory/models"
	"orgdir/internal/directory/store"
	dErrors "orgdir/pkg/domain-errors"
	"orgdir/pkg/platform/audit"
)

// UpdatePerson rewrites a person's mutable scalar fields inside one
// transaction, re-validating that the identifier still exists first.
//
// There is no version column: concurrent updates to the same person both
// succeed and the last commit wins. That is the storage layer's accepted
// semantics, not a serialization guarantee.
func (s *Service) UpdatePerson(ctx context.Context, person *models.Person) (*models.Person, error) {
	ctx, span := s.startSpan(ctx, "directory.UpdatePerson")
	defer span.End()

	if person == nil || person.ID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "person ID is required")
	}
	now := time.Now()
	updated, err := models.NewPerson(person.ID, person.Name, now)
	if err != nil {
		return nil, err
	}
	if !person.CreatedAt.IsZero() {
		updated.CreatedAt = person.CreatedAt
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context, stores store.Stores) error {
		exists, err := stores.Persons.Exists(txCtx, updated.ID)
		if err != nil {
			return translateStoreErr(err, "person not found", "person conflict", "failed to check person")
		}
		if !exists {
			return dErrors.New(dErrors.CodeNotFound, "person not found")
		}
		if err := stores.Persons.Update(txCtx, updated); err != nil {
			return translateStoreErr(err, "person not found", "person conflict", "failed to update person")
		}
		return s.emitAudit(txCtx, audit.Event{
			Timestamp: now,
			PersonID:  updated.ID,
			Action:    audit.ActionPersonUpdated,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "person updated", "person_id", updated.ID.String())
	return updated, nil
}
