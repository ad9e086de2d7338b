// Package store defines the per-entity command and query repositories.
//
// Stores are interface-driven to keep the orchestrator testable and to allow
// swapping the in-memory and postgres implementations without rewiring
// business code. Command and query surfaces are split per entity; no store
// knows about any other entity — crossing the aggregate boundary is the
// service layer's exclusive responsibility.
//
// Stores report infrastructure facts with pkg/platform/sentinel errors
// (ErrNotFound, ErrConflict); the service translates those into coded
// domain errors.
package store

import (
	"context"

	"orgdir/internal/directory/models"
	id "orgdir/pkg/domain"
)

// PersonCommands issues single-row person writes.
type PersonCommands interface {
	// Create persists a not-yet-stored person. ErrConflict on duplicate ID.
	Create(ctx context.Context, person *models.Person) error
	// Update rewrites the mutable scalar fields. ErrNotFound when the ID is
	// absent. Last-write-wins: there is no version column.
	Update(ctx context.Context, person *models.Person) error
	// Delete removes the row. Not idempotent: ErrNotFound when absent.
	Delete(ctx context.Context, personID id.PersonID) error
}

// PersonQueries issues single-row person reads.
type PersonQueries interface {
	// FindByID returns the bare person row. ErrNotFound when absent.
	FindByID(ctx context.Context, personID id.PersonID) (*models.Person, error)
	// Exists reports presence without materializing the row.
	Exists(ctx context.Context, personID id.PersonID) (bool, error)
	// List returns all persons ordered by identifier ascending.
	List(ctx context.Context) ([]*models.Person, error)
}

// PersonStore combines both surfaces; implementations satisfy it as a whole.
type PersonStore interface {
	PersonCommands
	PersonQueries
}

// ContactCommands issues single-row contact writes.
type ContactCommands interface {
	Create(ctx context.Context, contact *models.ContactAddress) error
	Delete(ctx context.Context, contactID id.ContactID) error
	// DeleteByPerson removes every contact owned by the person and returns
	// the number removed. Zero removals is not an error.
	DeleteByPerson(ctx context.Context, personID id.PersonID) (int, error)
}

// ContactQueries issues contact reads.
type ContactQueries interface {
	FindByID(ctx context.Context, contactID id.ContactID) (*models.ContactAddress, error)
	// ListByPerson returns the person's contacts ordered by identifier ascending.
	ListByPerson(ctx context.Context, personID id.PersonID) ([]*models.ContactAddress, error)
}

type ContactStore interface {
	ContactCommands
	ContactQueries
}

// PrincipalCommands issues single-row principal writes.
type PrincipalCommands interface {
	// Create persists a principal. ErrConflict when the person already has one.
	Create(ctx context.Context, principal *models.Principal) error
	Delete(ctx context.Context, principalID id.PrincipalID) error
}

// PrincipalQueries issues principal reads.
type PrincipalQueries interface {
	FindByID(ctx context.Context, principalID id.PrincipalID) (*models.Principal, error)
	// FindByPerson returns the person's principal. ErrNotFound when the
	// person has none.
	FindByPerson(ctx context.Context, personID id.PersonID) (*models.Principal, error)
}

type PrincipalStore interface {
	PrincipalCommands
	PrincipalQueries
}

// AccountCommands issues single-row account writes.
type AccountCommands interface {
	// Create persists an account. ErrConflict on duplicate username or when
	// the principal already has one.
	Create(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, accountID id.AccountID) error
	// DeleteByPrincipal removes every account owned by the principal and
	// returns the number removed. Zero removals is not an error.
	DeleteByPrincipal(ctx context.Context, principalID id.PrincipalID) (int, error)
}

// AccountQueries issues account reads.
type AccountQueries interface {
	FindByID(ctx context.Context, accountID id.AccountID) (*models.Account, error)
	FindByPrincipal(ctx context.Context, principalID id.PrincipalID) (*models.Account, error)
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
}

type AccountStore interface {
	AccountCommands
	AccountQueries
}

// Stores bundles the four entity stores scoped to one transaction. RunInTx
// implementations hand this to the orchestrator so every nested repository
// call shares the same transaction.
type Stores struct {
	Persons    PersonStore
	Contacts   ContactStore
	Principals PrincipalStore
	Accounts   AccountStore
}

// Tx is the transactional boundary for aggregate mutations. Implementations
// wrap a database transaction or, in-memory, a lock plus snapshot. Any error
// returned by fn rolls the whole transaction back before it propagates.
type Tx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}
