package service

import (
	"orgdir/internal/directory/models"
	dErrors "orgdir/pkg/domain-errors"
)

// validateContactOwnership enforces owner-exclusivity: a contact belongs to
// exactly one of {person, facility, organization}. Pure; called before any
// contact write is issued.
func validateContactOwnership(contact *models.ContactAddress) error {
	switch contact.OwnerCount() {
	case 0:
		return dErrors.New(dErrors.CodeInvalidInput, "contact requires exactly one owner, none set")
	case 1:
		return nil
	default:
		return dErrors.New(dErrors.CodeInvalidInput, "contact requires exactly one owner, multiple set")
	}
}

// ContactInput is the caller-supplied shape for a person's contact channel.
type ContactInput struct {
	Kind  models.ContactKind
	Value string
}

// AdminInput is the caller-supplied shape for the admin elevation flow.
// SecretHash arrives already hashed; Email is optional. Username defaults to
// the contact value when empty.
type AdminInput struct {
	Username   string
	SecretHash string
	Email      *string
}
