package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"orgdir/internal/directory/models"
	"orgdir/internal/directory/service"
	"orgdir/internal/directory/store"
	"orgdir/internal/directory/store/memory"
	id "orgdir/pkg/domain"
	dErrors "orgdir/pkg/domain-errors"
	"orgdir/pkg/platform/audit"
	auditmemory "orgdir/pkg/platform/audit/store/memory"
)

// fixture wires a service over the in-memory stores, exposing the stores so
// tests can assert directly on persisted state.
type fixture struct {
	persons    *memory.PersonStore
	contacts   *memory.ContactStore
	principals *memory.PrincipalStore
	accounts   *memory.AccountStore
	auditSink  *auditmemory.Store
	tx         store.Tx
	svc        *service.Service
}

// overrideTx lets tests swap the stores handed to the transactional callback,
// e.g. to inject a failing store mid-flow. Rollback still comes from the
// wrapped in-memory transaction.
type overrideTx struct {
	inner  store.Tx
	mutate func(store.Stores) store.Stores
}

func (o overrideTx) RunInTx(ctx context.Context, fn func(ctx context.Context, stores store.Stores) error) error {
	return o.inner.RunInTx(ctx, func(ctx context.Context, stores store.Stores) error {
		return fn(ctx, o.mutate(stores))
	})
}

func newFixture(mutate func(store.Stores) store.Stores) *fixture {
	f := &fixture{
		persons:    memory.NewPersonStore(),
		contacts:   memory.NewContactStore(),
		principals: memory.NewPrincipalStore(),
		accounts:   memory.NewAccountStore(),
		auditSink:  auditmemory.New(),
	}
	f.tx = memory.NewTx(f.persons, f.contacts, f.principals, f.accounts)
	if mutate != nil {
		f.tx = overrideTx{inner: f.tx, mutate: mutate}
	}
	f.svc = service.New(f.tx, service.Queries{
		Persons:    f.persons,
		Contacts:   f.contacts,
		Principals: f.principals,
		Accounts:   f.accounts,
	}, service.WithAudit(f.auditSink))
	return f
}

type OrchestratorSuite struct {
	suite.Suite
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorSuite))
}

func (s *OrchestratorSuite) TestCreatePerson() {
	ctx := context.Background()
	f := newFixture(nil)

	s.Run("creates person with its single contact", func() {
		person, err := f.svc.CreatePerson(ctx, "Test Person", service.ContactInput{
			Kind:  models.ContactKindEmail,
			Value: "test@example.com",
		})
		s.Require().NoError(err)
		s.Equal("Test Person", person.Name)
		s.Require().Len(person.Contacts, 1)
		s.Equal("test@example.com", person.Contacts[0].Value)

		events := f.auditSink.Events()
		s.Require().Len(events, 1)
		s.Equal(audit.ActionPersonCreated, events[0].Action)
		s.Equal(person.ID, events[0].PersonID)
	})

	s.Run("empty name persists nothing", func() {
		before, err := f.persons.List(ctx)
		s.Require().NoError(err)

		_, err = f.svc.CreatePerson(ctx, "  ", service.ContactInput{
			Kind:  models.ContactKindEmail,
			Value: "x@example.com",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		after, err := f.persons.List(ctx)
		s.Require().NoError(err)
		s.Len(after, len(before))
	})

	s.Run("invalid contact kind rolls the person back", func() {
		before, err := f.persons.List(ctx)
		s.Require().NoError(err)

		_, err = f.svc.CreatePerson(ctx, "Ghost", service.ContactInput{
			Kind:  models.ContactKind("SMOKE_SIGNAL"),
			Value: "x",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		after, err := f.persons.List(ctx)
		s.Require().NoError(err)
		s.Len(after, len(before), "failed contact creation must not leave the person behind")
	})
}

func (s *OrchestratorSuite) TestCreateAdminPerson() {
	ctx := context.Background()

	s.Run("persists all four entities cross-referenced", func() {
		f := newFixture(nil)
		person, err := f.svc.CreateAdminPerson(ctx, "Admin", service.ContactInput{
			Kind:  models.ContactKindEmail,
			Value: "admin@x.com",
		}, models.PrincipalKindAdmin, service.AdminInput{SecretHash: "$2a$10$hash"})
		s.Require().NoError(err)

		principal, err := f.principals.FindByPerson(ctx, person.ID)
		s.Require().NoError(err)
		s.Equal(models.PrincipalKindAdmin, principal.Kind)
		s.Equal(person.ID, principal.PersonID)

		account, err := f.accounts.FindByPrincipal(ctx, principal.ID)
		s.Require().NoError(err)
		s.Equal("admin@x.com", account.Username, "username defaults to the contact value")
		s.True(account.Active, "active defaults to true")
		s.Equal(principal.ID, account.PrincipalID)
	})

	s.Run("nothing persists when the account step fails", func() {
		boom := errors.New("unique index corrupted")
		f := newFixture(func(stores store.Stores) store.Stores {
			stores.Accounts = failingAccountStore{AccountStore: stores.Accounts, err: boom}
			return stores
		})

		_, err := f.svc.CreateAdminPerson(ctx, "Half Admin", service.ContactInput{
			Kind:  models.ContactKindEmail,
			Value: "half@x.com",
		}, models.PrincipalKindAdmin, service.AdminInput{SecretHash: "hash"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeTransaction))

		persons, listErr := f.persons.List(ctx)
		s.Require().NoError(listErr)
		s.Empty(persons, "no person row may survive the failed flow")
		s.Empty(f.auditSink.Events())
	})

	s.Run("duplicate username is a typed conflict and persists nothing", func() {
		f := newFixture(nil)
		_, err := f.svc.CreateAdminPerson(ctx, "First", service.ContactInput{
			Kind:  models.ContactKindEmail,
			Value: "shared@x.com",
		}, models.PrincipalKindAdmin, service.AdminInput{SecretHash: "hash"})
		s.Require().NoError(err)

		_, err = f.svc.CreateAdminPerson(ctx, "Second", service.ContactInput{
			Kind:  models.ContactKindEmail,
			Value: "shared@x.com",
		}, models.PrincipalKindTeacher, service.AdminInput{SecretHash: "hash"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		persons, listErr := f.persons.List(ctx)
		s.Require().NoError(listErr)
		s.Len(persons, 1, "the second person must be rolled back")
	})

	s.Run("unknown principal kind is rejected before the transaction", func() {
		f := newFixture(nil)
		_, err := f.svc.CreateAdminPerson(ctx, "Admin", service.ContactInput{
			Kind:  models.ContactKindEmail,
			Value: "a@x.com",
		}, models.PrincipalKind("ROOT"), service.AdminInput{SecretHash: "hash"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *OrchestratorSuite) TestUpdatePerson() {
	ctx := context.Background()
	f := newFixture(nil)

	person, err := f.svc.CreatePerson(ctx, "Original", service.ContactInput{
		Kind:  models.ContactKindEmail,
		Value: "orig@example.com",
	})
	s.Require().NoError(err)

	s.Run("rewrites the name", func() {
		person.Name = "Renamed"
		updated, err := f.svc.UpdatePerson(ctx, person)
		s.Require().NoError(err)
		s.Equal("Renamed", updated.Name)

		found, err := f.persons.FindByID(ctx, person.ID)
		s.Require().NoError(err)
		s.Equal("Renamed", found.Name)
	})

	s.Run("last write wins without a version check", func() {
		first := *person
		first.Name = "First Writer"
		second := *person
		second.Name = "Second Writer"

		_, err := f.svc.UpdatePerson(ctx, &first)
		s.Require().NoError(err)
		_, err = f.svc.UpdatePerson(ctx, &second)
		s.Require().NoError(err)

		found, err := f.persons.FindByID(ctx, person.ID)
		s.Require().NoError(err)
		s.Equal("Second Writer", found.Name)
	})

	s.Run("unknown identifier is not found", func() {
		ghost, err := models.NewPerson(id.NewPersonID(), "Ghost", person.CreatedAt)
		s.Require().NoError(err)
		_, err = f.svc.UpdatePerson(ctx, ghost)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

// failingAccountStore fails every create; other behavior passes through.
type failingAccountStore struct {
	store.AccountStore
	err error
}

func (f failingAccountStore) Create(context.Context, *models.Account) error {
	return f.err
}
