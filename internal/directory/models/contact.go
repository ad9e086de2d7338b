package models

import (
	"strings"
	"time"

	id "orgdir/pkg/domain"
	dErrors "orgdir/pkg/domain-errors"
)

// ContactKind enumerates the supported contact channels.
type ContactKind string

const (
	ContactKindEmail   ContactKind = "EMAIL"
	ContactKindPhone   ContactKind = "PHONE"
	ContactKindAddress ContactKind = "ADDRESS"
)

// Valid reports whether the kind is one of the known channels.
func (k ContactKind) Valid() bool {
	switch k {
	case ContactKindEmail, ContactKindPhone, ContactKindAddress:
		return true
	}
	return false
}

// ContactAddress is a contact channel owned by exactly one of
// {Person, Facility, Organization}.
//
// Invariants:
//   - Kind is a known channel and Value is non-empty
//   - Exactly one owner reference is set, never zero or multiple
//     (owner-exclusivity, checked at creation time)
type ContactAddress struct {
	ID    id.ContactID `json:"id"`
	Kind  ContactKind  `json:"kind"`
	Value string       `json:"value"`

	PersonID       *id.PersonID       `json:"person_id,omitempty"`
	FacilityID     *id.FacilityID     `json:"facility_id,omitempty"`
	OrganizationID *id.OrganizationID `json:"organization_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewContactAddress constructs a contact owned by a person. Facility- and
// organization-owned contacts are written by their own modules; this core
// only ever creates person-owned ones.
func NewContactAddress(contactID id.ContactID, owner id.PersonID, kind ContactKind, value string, now time.Time) (*ContactAddress, error) {
	value = strings.TrimSpace(value)
	if contactID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "contact ID is required")
	}
	if owner.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "contact owner is required")
	}
	if !kind.Valid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "contact kind must be EMAIL, PHONE or ADDRESS")
	}
	if value == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "contact value is required")
	}
	return &ContactAddress{
		ID:        contactID,
		Kind:      kind,
		Value:     value,
		PersonID:  &owner,
		CreatedAt: now,
	}, nil
}

// OwnerCount returns how many owner references are set. The owner-exclusivity
// invariant requires exactly one.
func (c *ContactAddress) OwnerCount() int {
	count := 0
	if c.PersonID != nil && !c.PersonID.IsNil() {
		count++
	}
	if c.FacilityID != nil && !c.FacilityID.IsNil() {
		count++
	}
	if c.OrganizationID != nil && !c.OrganizationID.IsNil() {
		count++
	}
	return count
}
