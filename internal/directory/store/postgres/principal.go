package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"orgdir/internal/directory/models"
	id "orgdir/pkg/domain"
	"orgdir/pkg/platform/sentinel"
)

// PrincipalStore persists principal rows in PostgreSQL. The unique index on
// person_id is the storage backstop for the one-principal-per-person
// invariant the service pre-checks inside the same transaction.
type PrincipalStore struct {
	db DBTX
}

func NewPrincipalStore(db DBTX) *PrincipalStore {
	return &PrincipalStore{db: db}
}

func (s *PrincipalStore) Create(ctx context.Context, principal *models.Principal) error {
	const query = `
		INSERT INTO principals (id, person_id, kind, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(principal.ID), uuid.UUID(principal.PersonID), string(principal.Kind), principal.CreatedAt)
	if err != nil {
		return fmt.Errorf("create principal: %w", mapError(err))
	}
	return nil
}

func (s *PrincipalStore) Delete(ctx context.Context, principalID id.PrincipalID) error {
	const query = `DELETE FROM principals WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, uuid.UUID(principalID))
	if err != nil {
		return fmt.Errorf("delete principal: %w", mapError(err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete principal: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PrincipalStore) FindByID(ctx context.Context, principalID id.PrincipalID) (*models.Principal, error) {
	const query = `
		SELECT id, person_id, kind, created_at FROM principals WHERE id = $1
	`
	return s.findOne(ctx, query, uuid.UUID(principalID))
}

func (s *PrincipalStore) FindByPerson(ctx context.Context, personID id.PersonID) (*models.Principal, error) {
	const query = `
		SELECT id, person_id, kind, created_at FROM principals WHERE person_id = $1
	`
	return s.findOne(ctx, query, uuid.UUID(personID))
}

func (s *PrincipalStore) findOne(ctx context.Context, query string, arg uuid.UUID) (*models.Principal, error) {
	var (
		rowID     uuid.UUID
		personID  uuid.UUID
		kind      string
		principal models.Principal
	)
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&rowID, &personID, &kind, &principal.CreatedAt)
	if err != nil {
		if mapped := mapError(err); mapped == sentinel.ErrNotFound {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find principal: %w", err)
	}
	principal.ID = id.PrincipalID(rowID)
	principal.PersonID = id.PersonID(personID)
	principal.Kind = models.PrincipalKind(kind)
	return &principal, nil
}
