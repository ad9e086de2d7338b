package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"orgdir/internal/directory/models"
	id "orgdir/pkg/domain"
	dErrors "orgdir/pkg/domain-errors"
	"orgdir/pkg/platform/sentinel"
)

// Find returns the person with the requested subgraphs attached, or
// (nil, nil) when no person with that id exists — absence is a result, not
// an error. Reads do not run in a transaction; each subgraph is fetched
// concurrently and assembled into one view.
func (s *Service) Find(ctx context.Context, personID id.PersonID, include *models.Include) (*models.Person, error) {
	ctx, span := s.startSpan(ctx, "directory.Find")
	defer span.End()
	start := time.Now()

	if personID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "person ID is required")
	}

	person, err := s.persons.FindByID(ctx, personID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load person")
	}

	if include != nil {
		if err := s.attachSubgraphs(ctx, person, include); err != nil {
			return nil, err
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveFind(start)
	}
	return person, nil
}

func (s *Service) attachSubgraphs(ctx context.Context, person *models.Person, include *models.Include) error {
	group, groupCtx := errgroup.WithContext(ctx)

	if include.Contacts {
		group.Go(func() error {
			contacts, err := s.contacts.ListByPerson(groupCtx, person.ID)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load contacts")
			}
			person.Contacts = contacts
			return nil
		})
	}

	if include.Principal != nil {
		group.Go(func() error {
			principal, err := s.principals.FindByPerson(groupCtx, person.ID)
			if err != nil {
				if errors.Is(err, sentinel.ErrNotFound) {
					// The person simply has no principal; omit the field.
					return nil
				}
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load principal")
			}
			if include.Principal.Account {
				account, err := s.accounts.FindByPrincipal(groupCtx, principal.ID)
				if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
					return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
				}
				principal.Account = account
			}
			person.Principal = principal
			return nil
		})
	}

	if include.Facilities && s.facilities != nil {
		group.Go(func() error {
			facilities, err := s.facilities.ListByPerson(groupCtx, person.ID)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load facility affiliations")
			}
			person.Facilities = facilities
			return nil
		})
	}

	if include.Organization && s.organizations != nil {
		group.Go(func() error {
			organization, err := s.organizations.FindByPerson(groupCtx, person.ID)
			if err != nil {
				if errors.Is(err, sentinel.ErrNotFound) {
					return nil
				}
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load organization affiliation")
			}
			person.Organization = organization
			return nil
		})
	}

	return group.Wait()
}
