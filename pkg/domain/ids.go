// Package domain defines the typed identifiers shared across the directory.
//
// Each entity gets its own uuid newtype so the compiler rejects cross-entity
// assignment (a ContactID can never be passed where a PersonID is expected).
// Parse functions are the trust boundary: empty, malformed, and nil UUIDs are
// all rejected with an invalid-input error.
package domain

import (
	"github.com/google/uuid"

	dErrors "orgdir/pkg/domain-errors"
)

type (
	// PersonID identifies the aggregate root.
	PersonID uuid.UUID

	// ContactID identifies a contact address.
	ContactID uuid.UUID

	// PrincipalID identifies an authorization identity.
	PrincipalID uuid.UUID

	// AccountID identifies a login credential.
	AccountID uuid.UUID

	// FacilityID identifies a facility affiliation source (read-only here).
	FacilityID uuid.UUID

	// OrganizationID identifies an organization affiliation source (read-only here).
	OrganizationID uuid.UUID
)

func parseUUID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "identifier is required")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "identifier is not a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "identifier must not be the nil UUID")
	}
	return parsed, nil
}

func ParsePersonID(raw string) (PersonID, error) {
	parsed, err := parseUUID(raw)
	return PersonID(parsed), err
}

func ParseContactID(raw string) (ContactID, error) {
	parsed, err := parseUUID(raw)
	return ContactID(parsed), err
}

func ParsePrincipalID(raw string) (PrincipalID, error) {
	parsed, err := parseUUID(raw)
	return PrincipalID(parsed), err
}

func ParseAccountID(raw string) (AccountID, error) {
	parsed, err := parseUUID(raw)
	return AccountID(parsed), err
}

func ParseFacilityID(raw string) (FacilityID, error) {
	parsed, err := parseUUID(raw)
	return FacilityID(parsed), err
}

func ParseOrganizationID(raw string) (OrganizationID, error) {
	parsed, err := parseUUID(raw)
	return OrganizationID(parsed), err
}

func (id PersonID) String() string       { return uuid.UUID(id).String() }
func (id ContactID) String() string      { return uuid.UUID(id).String() }
func (id PrincipalID) String() string    { return uuid.UUID(id).String() }
func (id AccountID) String() string      { return uuid.UUID(id).String() }
func (id FacilityID) String() string     { return uuid.UUID(id).String() }
func (id OrganizationID) String() string { return uuid.UUID(id).String() }

func (id PersonID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id ContactID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id PrincipalID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id AccountID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id FacilityID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id OrganizationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// NewPersonID mints a fresh random person identifier.
func NewPersonID() PersonID { return PersonID(uuid.New()) }

// NewContactID mints a fresh random contact identifier.
func NewContactID() ContactID { return ContactID(uuid.New()) }

// NewPrincipalID mints a fresh random principal identifier.
func NewPrincipalID() PrincipalID { return PrincipalID(uuid.New()) }

// NewAccountID mints a fresh random account identifier.
func NewAccountID() AccountID { return AccountID(uuid.New()) }
