// Package ports declares the collaborator interfaces the directory consumes.
// Affiliations are owned by other modules; this core only reads them.
package ports

import (
	"context"

	"orgdir/internal/directory/models"
	id "orgdir/pkg/domain"
)

// FacilityDirectory resolves a person's facility affiliations.
type FacilityDirectory interface {
	ListByPerson(ctx context.Context, personID id.PersonID) ([]*models.Affiliation, error)
}

// OrganizationDirectory resolves a person's organization affiliation, if any.
type OrganizationDirectory interface {
	FindByPerson(ctx context.Context, personID id.PersonID) (*models.Affiliation, error)
}
