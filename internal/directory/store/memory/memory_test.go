package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"orgdir/internal/directory/models"
	"orgdir/internal/directory/store"
	id "orgdir/pkg/domain"
	"orgdir/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	persons    *PersonStore
	contacts   *ContactStore
	principals *PrincipalStore
	accounts   *AccountStore
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.persons = NewPersonStore()
	s.contacts = NewContactStore()
	s.principals = NewPrincipalStore()
	s.accounts = NewAccountStore()
}

func (s *MemoryStoreSuite) newPerson(name string) *models.Person {
	person, err := models.NewPerson(id.NewPersonID(), name, time.Now())
	s.Require().NoError(err)
	return person
}

func (s *MemoryStoreSuite) TestPersonLifecycle() {
	ctx := context.Background()
	person := s.newPerson("Jane Doe")

	s.Run("create then find", func() {
		s.Require().NoError(s.persons.Create(ctx, person))
		found, err := s.persons.FindByID(ctx, person.ID)
		s.Require().NoError(err)
		s.Equal(person.Name, found.Name)
	})

	s.Run("duplicate create conflicts", func() {
		s.ErrorIs(s.persons.Create(ctx, person), sentinel.ErrConflict)
	})

	s.Run("update rewrites name", func() {
		person.Name = "Jane Q. Doe"
		s.Require().NoError(s.persons.Update(ctx, person))
		found, err := s.persons.FindByID(ctx, person.ID)
		s.Require().NoError(err)
		s.Equal("Jane Q. Doe", found.Name)
	})

	s.Run("delete is not idempotent", func() {
		s.Require().NoError(s.persons.Delete(ctx, person.ID))
		s.ErrorIs(s.persons.Delete(ctx, person.ID), sentinel.ErrNotFound)
	})

	s.Run("lookups after delete report not found", func() {
		_, err := s.persons.FindByID(ctx, person.ID)
		s.ErrorIs(err, sentinel.ErrNotFound)
		exists, err := s.persons.Exists(ctx, person.ID)
		s.Require().NoError(err)
		s.False(exists)
	})
}

func (s *MemoryStoreSuite) TestContactOwnership() {
	ctx := context.Background()
	owner := id.NewPersonID()

	for _, value := range []string{"a@example.com", "b@example.com"} {
		contact, err := models.NewContactAddress(id.NewContactID(), owner, models.ContactKindEmail, value, time.Now())
		s.Require().NoError(err)
		s.Require().NoError(s.contacts.Create(ctx, contact))
	}

	s.Run("lists only the owner's contacts in id order", func() {
		other, err := models.NewContactAddress(id.NewContactID(), id.NewPersonID(), models.ContactKindPhone, "+123", time.Now())
		s.Require().NoError(err)
		s.Require().NoError(s.contacts.Create(ctx, other))

		listed, err := s.contacts.ListByPerson(ctx, owner)
		s.Require().NoError(err)
		s.Len(listed, 2)
		s.Less(listed[0].ID.String(), listed[1].ID.String())
	})

	s.Run("delete by person removes all and counts", func() {
		removed, err := s.contacts.DeleteByPerson(ctx, owner)
		s.Require().NoError(err)
		s.Equal(2, removed)

		listed, err := s.contacts.ListByPerson(ctx, owner)
		s.Require().NoError(err)
		s.Empty(listed)
	})
}

func (s *MemoryStoreSuite) TestPrincipalUniquenessPerPerson() {
	ctx := context.Background()
	personID := id.NewPersonID()

	first, err := models.NewPrincipal(id.NewPrincipalID(), personID, models.PrincipalKindAdmin, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.principals.Create(ctx, first))

	second, err := models.NewPrincipal(id.NewPrincipalID(), personID, models.PrincipalKindTeacher, time.Now())
	s.Require().NoError(err)
	s.ErrorIs(s.principals.Create(ctx, second), sentinel.ErrConflict)

	found, err := s.principals.FindByPerson(ctx, personID)
	s.Require().NoError(err)
	s.Equal(models.PrincipalKindAdmin, found.Kind)
}

func (s *MemoryStoreSuite) TestAccountUniqueUsername() {
	ctx := context.Background()

	first, err := models.NewAccount(id.NewAccountID(), id.NewPrincipalID(), "admin@x.com", "hash", nil, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.accounts.Create(ctx, first))

	second, err := models.NewAccount(id.NewAccountID(), id.NewPrincipalID(), "admin@x.com", "hash", nil, time.Now())
	s.Require().NoError(err)
	s.ErrorIs(s.accounts.Create(ctx, second), sentinel.ErrConflict)

	byName, err := s.accounts.FindByUsername(ctx, "admin@x.com")
	s.Require().NoError(err)
	s.Equal(first.ID, byName.ID)
}

func (s *MemoryStoreSuite) TestTxRollbackRestoresAllStores() {
	ctx := context.Background()
	tx := NewTx(s.persons, s.contacts, s.principals, s.accounts)

	boom := errors.New("boom")
	err := tx.RunInTx(ctx, func(ctx context.Context, stores store.Stores) error {
		person := s.newPerson("Rolled Back")
		if err := stores.Persons.Create(ctx, person); err != nil {
			return err
		}
		contact, err := models.NewContactAddress(id.NewContactID(), person.ID, models.ContactKindEmail, "rb@example.com", time.Now())
		if err != nil {
			return err
		}
		if err := stores.Contacts.Create(ctx, contact); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	listed, err := s.persons.List(ctx)
	s.Require().NoError(err)
	s.Empty(listed)
}

func (s *MemoryStoreSuite) TestTxCommitKeepsWrites() {
	ctx := context.Background()
	tx := NewTx(s.persons, s.contacts, s.principals, s.accounts)

	person := s.newPerson("Committed")
	err := tx.RunInTx(ctx, func(ctx context.Context, stores store.Stores) error {
		return stores.Persons.Create(ctx, person)
	})
	s.Require().NoError(err)

	found, err := s.persons.FindByID(ctx, person.ID)
	s.Require().NoError(err)
	s.Equal("Committed", found.Name)
}
