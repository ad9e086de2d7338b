package memory

import (
	"context"
	"sync"

	"orgdir/internal/directory/models"
	id "orgdir/pkg/domain"
	"orgdir/pkg/platform/sentinel"
)

// PrincipalStore keeps principal rows in a map guarded by a RWMutex. The
// person→principal uniqueness constraint is enforced on Create, mirroring
// the unique index the postgres schema carries.
type PrincipalStore struct {
	mu         sync.RWMutex
	principals map[id.PrincipalID]models.Principal
}

func NewPrincipalStore() *PrincipalStore {
	return &PrincipalStore{principals: make(map[id.PrincipalID]models.Principal)}
}

func (s *PrincipalStore) Create(_ context.Context, principal *models.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.principals[principal.ID]; exists {
		return sentinel.ErrConflict
	}
	for _, row := range s.principals {
		if row.PersonID == principal.PersonID {
			return sentinel.ErrConflict
		}
	}
	s.principals[principal.ID] = clonePrincipalRow(principal)
	return nil
}

func (s *PrincipalStore) Delete(_ context.Context, principalID id.PrincipalID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.principals[principalID]; !exists {
		return sentinel.ErrNotFound
	}
	delete(s.principals, principalID)
	return nil
}

func (s *PrincipalStore) FindByID(_ context.Context, principalID id.PrincipalID) (*models.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, exists := s.principals[principalID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	return &row, nil
}

func (s *PrincipalStore) FindByPerson(_ context.Context, personID id.PersonID) (*models.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, row := range s.principals {
		if row.PersonID == personID {
			row := row
			return &row, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func clonePrincipalRow(principal *models.Principal) models.Principal {
	return models.Principal{
		ID:        principal.ID,
		PersonID:  principal.PersonID,
		Kind:      principal.Kind,
		CreatedAt: principal.CreatedAt,
	}
}

func (s *PrincipalStore) snapshot() map[id.PrincipalID]models.Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := make(map[id.PrincipalID]models.Principal, len(s.principals))
	for k, v := range s.principals {
		copied[k] = v
	}
	return copied
}

func (s *PrincipalStore) restore(snap map[id.PrincipalID]models.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principals = snap
}
