package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"orgdir/internal/directory/models"
	id "orgdir/pkg/domain"
	"orgdir/pkg/platform/sentinel"
)

// PersonStore persists person rows in PostgreSQL.
type PersonStore struct {
	db DBTX
}

// NewPersonStore constructs a person store over a *sql.DB or *sql.Tx.
func NewPersonStore(db DBTX) *PersonStore {
	return &PersonStore{db: db}
}

func (s *PersonStore) Create(ctx context.Context, person *models.Person) error {
	const query = `
		INSERT INTO persons (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(person.ID), person.Name, person.CreatedAt, person.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create person: %w", mapError(err))
	}
	return nil
}

func (s *PersonStore) Update(ctx context.Context, person *models.Person) error {
	const query = `
		UPDATE persons SET name = $2, updated_at = $3 WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		uuid.UUID(person.ID), person.Name, person.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update person: %w", mapError(err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PersonStore) Delete(ctx context.Context, personID id.PersonID) error {
	const query = `DELETE FROM persons WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, uuid.UUID(personID))
	if err != nil {
		return fmt.Errorf("delete person: %w", mapError(err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PersonStore) FindByID(ctx context.Context, personID id.PersonID) (*models.Person, error) {
	const query = `
		SELECT id, name, created_at, updated_at FROM persons WHERE id = $1
	`
	var (
		rowID  uuid.UUID
		person models.Person
	)
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(personID)).
		Scan(&rowID, &person.Name, &person.CreatedAt, &person.UpdatedAt)
	if err != nil {
		if mapped := mapError(err); mapped == sentinel.ErrNotFound {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find person: %w", err)
	}
	person.ID = id.PersonID(rowID)
	return &person, nil
}

func (s *PersonStore) Exists(ctx context.Context, personID id.PersonID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM persons WHERE id = $1)`
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, uuid.UUID(personID)).Scan(&exists); err != nil {
		return false, fmt.Errorf("person exists: %w", err)
	}
	return exists, nil
}

func (s *PersonStore) List(ctx context.Context) ([]*models.Person, error) {
	const query = `
		SELECT id, name, created_at, updated_at FROM persons ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	var persons []*models.Person
	for rows.Next() {
		var (
			rowID  uuid.UUID
			person models.Person
		)
		if err := rows.Scan(&rowID, &person.Name, &person.CreatedAt, &person.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		person.ID = id.PersonID(rowID)
		persons = append(persons, &person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	return persons, nil
}
