package models

import (
	"time"

	id "orgdir/pkg/domain"
	dErrors "orgdir/pkg/domain-errors"
)

// PrincipalKind enumerates the authorization identities a person can hold.
type PrincipalKind string

const (
	PrincipalKindAdmin       PrincipalKind = "ADMIN"
	PrincipalKindTeacher     PrincipalKind = "TEACHER"
	PrincipalKindStudent     PrincipalKind = "STUDENT"
	PrincipalKindStakeholder PrincipalKind = "STAKEHOLDER"
)

// Valid reports whether the kind is one of the known identities.
func (k PrincipalKind) Valid() bool {
	switch k {
	case PrincipalKindAdmin, PrincipalKindTeacher, PrincipalKindStudent, PrincipalKindStakeholder:
		return true
	}
	return false
}

// Principal is an authorization identity layered on exactly one person.
//
// Invariants:
//   - PersonID is set and unique across principals (at most one per person)
//   - A principal cannot outlive its person; it is removed by the person
//     cascade delete
//   - A committed principal always has its account: both are created in the
//     same transaction, so HAS_PRINCIPAL_NO_ACCOUNT is never observable
type Principal struct {
	ID        id.PrincipalID `json:"id"`
	PersonID  id.PersonID    `json:"person_id"`
	Kind      PrincipalKind  `json:"kind"`
	CreatedAt time.Time      `json:"created_at"`

	// Account is attached by the read composer when requested.
	Account *Account `json:"account,omitempty"`
}

// NewPrincipal constructs a principal for the given person.
func NewPrincipal(principalID id.PrincipalID, person id.PersonID, kind PrincipalKind, now time.Time) (*Principal, error) {
	if principalID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "principal ID is required")
	}
	if person.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "principal requires an owning person")
	}
	if !kind.Valid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "principal kind must be ADMIN, TEACHER, STUDENT or STAKEHOLDER")
	}
	return &Principal{
		ID:        principalID,
		PersonID:  person,
		Kind:      kind,
		CreatedAt: now,
	}, nil
}
