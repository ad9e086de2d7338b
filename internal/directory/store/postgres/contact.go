package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"orgdir/internal/directory/models"
	id "orgdir/pkg/domain"
	"orgdir/pkg/platform/sentinel"
)

// ContactStore persists contact address rows in PostgreSQL. The
// contact_owner_exclusive check constraint is the storage backstop for the
// owner-exclusivity invariant the service validates first.
type ContactStore struct {
	db DBTX
}

func NewContactStore(db DBTX) *ContactStore {
	return &ContactStore{db: db}
}

func (s *ContactStore) Create(ctx context.Context, contact *models.ContactAddress) error {
	const query = `
		INSERT INTO contact_addresses (id, kind, value, person_id, facility_id, organization_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(contact.ID),
		string(contact.Kind),
		contact.Value,
		nullablePersonID(contact.PersonID),
		nullableFacilityID(contact.FacilityID),
		nullableOrganizationID(contact.OrganizationID),
		contact.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create contact: %w", mapError(err))
	}
	return nil
}

func (s *ContactStore) Delete(ctx context.Context, contactID id.ContactID) error {
	const query = `DELETE FROM contact_addresses WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, uuid.UUID(contactID))
	if err != nil {
		return fmt.Errorf("delete contact: %w", mapError(err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *ContactStore) DeleteByPerson(ctx context.Context, personID id.PersonID) (int, error) {
	const query = `DELETE FROM contact_addresses WHERE person_id = $1`
	result, err := s.db.ExecContext(ctx, query, uuid.UUID(personID))
	if err != nil {
		return 0, fmt.Errorf("delete contacts by person: %w", mapError(err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete contacts by person: %w", err)
	}
	return int(affected), nil
}

func (s *ContactStore) FindByID(ctx context.Context, contactID id.ContactID) (*models.ContactAddress, error) {
	const query = `
		SELECT id, kind, value, person_id, facility_id, organization_id, created_at
		FROM contact_addresses WHERE id = $1
	`
	row := s.db.QueryRowContext(ctx, query, uuid.UUID(contactID))
	contact, err := scanContact(row.Scan)
	if err != nil {
		if mapped := mapError(err); mapped == sentinel.ErrNotFound {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return contact, nil
}

func (s *ContactStore) ListByPerson(ctx context.Context, personID id.PersonID) ([]*models.ContactAddress, error) {
	const query = `
		SELECT id, kind, value, person_id, facility_id, organization_id, created_at
		FROM contact_addresses WHERE person_id = $1 ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(personID))
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*models.ContactAddress
	for rows.Next() {
		contact, err := scanContact(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func scanContact(scan func(dest ...any) error) (*models.ContactAddress, error) {
	var (
		rowID    uuid.UUID
		kind     string
		contact  models.ContactAddress
		personID sql.Null[uuid.UUID]
		facility sql.Null[uuid.UUID]
		org      sql.Null[uuid.UUID]
	)
	if err := scan(&rowID, &kind, &contact.Value, &personID, &facility, &org, &contact.CreatedAt); err != nil {
		return nil, err
	}
	contact.ID = id.ContactID(rowID)
	contact.Kind = models.ContactKind(kind)
	if personID.Valid {
		owner := id.PersonID(personID.V)
		contact.PersonID = &owner
	}
	if facility.Valid {
		owner := id.FacilityID(facility.V)
		contact.FacilityID = &owner
	}
	if org.Valid {
		owner := id.OrganizationID(org.V)
		contact.OrganizationID = &owner
	}
	return &contact, nil
}

func nullablePersonID(v *id.PersonID) any {
	if v == nil {
		return nil
	}
	return uuid.UUID(*v)
}

func nullableFacilityID(v *id.FacilityID) any {
	if v == nil {
		return nil
	}
	return uuid.UUID(*v)
}

func nullableOrganizationID(v *id.OrganizationID) any {
	if v == nil {
		return nil
	}
	return uuid.UUID(*v)
}
