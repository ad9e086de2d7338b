package models

import (
	"strings"
	"time"

	id "orgdir/pkg/domain"
	dErrors "orgdir/pkg/domain-errors"
)

const maxPersonNameLength = 256

// Person is the aggregate root of the directory.
//
// Invariants:
//   - Name is non-empty and at most 256 characters
//   - ID is immutable after creation
//   - A person carries at most one Principal at any time
//
// # Aggregate Invariant
//
// Person, its ContactAddresses, its Principal and that Principal's Account
// are created and destroyed as a unit by the service layer. Child rows are
// reached through foreign-key lookups only; Person never owns pointers to
// children in storage. The view fields below are populated by the read
// composer on request and are never persisted from here.
type Person struct {
	ID        id.PersonID `json:"id"`
	Name      string      `json:"name"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	// View-side subgraphs, attached per the caller's Include spec.
	Contacts     []*ContactAddress `json:"contacts,omitempty"`
	Principal    *Principal        `json:"principal,omitempty"`
	Facilities   []*Affiliation    `json:"facilities,omitempty"`
	Organization *Affiliation      `json:"organization,omitempty"`
}

// NewPerson constructs a person, enforcing scalar invariants.
func NewPerson(personID id.PersonID, name string, now time.Time) (*Person, error) {
	name = strings.TrimSpace(name)
	if personID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "person ID is required")
	}
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "person name is required")
	}
	if len(name) > maxPersonNameLength {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "person name exceeds 256 characters")
	}
	return &Person{
		ID:        personID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Affiliation is read-only pass-through data sourced from collaborators
// outside this core (facility and organization directories).
type Affiliation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
