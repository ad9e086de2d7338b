package service

import (
	"context"
	"errors"
	"time"

	"orgdir/internal/directory/models"
	"orgdir/internal/directory/store"
	id "orgdir/pkg/domain"
	dErrors "orgdir/pkg/domain-errors"
	"orgdir/pkg/platform/audit"
	"orgdir/pkg/platform/sentinel"
)

// CreatePerson creates a person with one contact address in a single
// transaction. Failure at any step persists nothing.
func (s *Service) CreatePerson(ctx context.Context, name string, contact ContactInput) (*models.Person, error) {
	ctx, span := s.startSpan(ctx, "directory.CreatePerson")
	defer span.End()
	start := time.Now()

	var created *models.Person
	err := s.tx.RunInTx(ctx, func(txCtx context.Context, stores store.Stores) error {
		person, err := s.createPersonWithContact(txCtx, stores, name, contact)
		if err != nil {
			return err
		}
		if err := s.emitAudit(txCtx, audit.Event{
			Timestamp: person.CreatedAt,
			PersonID:  person.ID,
			Action:    audit.ActionPersonCreated,
		}); err != nil {
			return err
		}
		created = person
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PersonsCreated.Inc()
		s.metrics.ObserveCreate(start)
	}
	s.logger.InfoContext(ctx, "person created", "person_id", created.ID.String())
	return created, nil
}

// CreateAdminPerson runs the admin elevation flow: person, contact, principal
// and account created in one transaction. A half-created admin (person with
// no usable account) is never observable: all four rows commit or none do.
//
// The account's username defaults to the contact value and the active flag
// defaults to true. The returned person is the minimal created view; callers
// wanting the full graph use Find with an include spec.
func (s *Service) CreateAdminPerson(ctx context.Context, name string, contact ContactInput, kind models.PrincipalKind, admin AdminInput) (*models.Person, error) {
	ctx, span := s.startSpan(ctx, "directory.CreateAdminPerson")
	defer span.End()
	start := time.Now()

	if !kind.Valid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "principal kind must be ADMIN, TEACHER, STUDENT or STAKEHOLDER")
	}

	var created *models.Person
	err := s.tx.RunInTx(ctx, func(txCtx context.Context, stores store.Stores) error {
		person, err := s.createPersonWithContact(txCtx, stores, name, contact)
		if err != nil {
			return err
		}
		now := person.CreatedAt

		// Pre-check inside the tx so a duplicate surfaces as a typed
		// conflict; the unique index on person_id is the backstop.
		if _, err := stores.Principals.FindByPerson(txCtx, person.ID); err == nil {
			return dErrors.New(dErrors.CodeConflict, "person already has a principal")
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return translateStoreErr(err, "person not found", "person already has a principal", "failed to check existing principal")
		}

		principal, err := models.NewPrincipal(id.NewPrincipalID(), person.ID, kind, now)
		if err != nil {
			return err
		}
		if err := stores.Principals.Create(txCtx, principal); err != nil {
			return translateStoreErr(err, "person not found", "person already has a principal", "failed to create principal")
		}

		username := admin.Username
		if username == "" {
			username = contact.Value
		}
		account, err := models.NewAccount(id.NewAccountID(), principal.ID, username, admin.SecretHash, admin.Email, now)
		if err != nil {
			return err
		}
		if err := stores.Accounts.Create(txCtx, account); err != nil {
			return translateStoreErr(err, "principal not found", "username already in use", "failed to create account")
		}

		if err := s.emitAudit(txCtx, audit.Event{
			Timestamp:     now,
			PersonID:      person.ID,
			Action:        audit.ActionAdminPersonCreated,
			PrincipalKind: string(kind),
		}); err != nil {
			return err
		}
		created = person
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.AdminPersonsCreated.Inc()
		s.metrics.ObserveCreate(start)
	}
	s.logger.InfoContext(ctx, "admin person created",
		"person_id", created.ID.String(), "principal_kind", string(kind))
	return created, nil
}

// createPersonWithContact is the shared first half of both create flows:
// validate, create the person row, validate and create its contact.
func (s *Service) createPersonWithContact(ctx context.Context, stores store.Stores, name string, contact ContactInput) (*models.Person, error) {
	now := time.Now()

	person, err := models.NewPerson(id.NewPersonID(), name, now)
	if err != nil {
		return nil, err
	}
	if err := stores.Persons.Create(ctx, person); err != nil {
		return nil, translateStoreErr(err, "person not found", "person already exists", "failed to create person")
	}

	address, err := models.NewContactAddress(id.NewContactID(), person.ID, contact.Kind, contact.Value, now)
	if err != nil {
		return nil, err
	}
	if err := validateContactOwnership(address); err != nil {
		return nil, err
	}
	if err := stores.Contacts.Create(ctx, address); err != nil {
		return nil, translateStoreErr(err, "contact owner not found", "contact value already in use", "failed to create contact")
	}

	person.Contacts = []*models.ContactAddress{address}
	return person, nil
}
