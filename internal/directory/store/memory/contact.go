package memory

import (
	"context"
	"sort"
	"sync"

	"orgdir/internal/directory/models"
	id "orgdir/pkg/domain"
	"orgdir/pkg/platform/sentinel"
)

// ContactStore keeps contact rows in a map guarded by a RWMutex.
type ContactStore struct {
	mu       sync.RWMutex
	contacts map[id.ContactID]models.ContactAddress
}

func NewContactStore() *ContactStore {
	return &ContactStore{contacts: make(map[id.ContactID]models.ContactAddress)}
}

func (s *ContactStore) Create(_ context.Context, contact *models.ContactAddress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.contacts[contact.ID]; exists {
		return sentinel.ErrConflict
	}
	s.contacts[contact.ID] = *contact
	return nil
}

func (s *ContactStore) Delete(_ context.Context, contactID id.ContactID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.contacts[contactID]; !exists {
		return sentinel.ErrNotFound
	}
	delete(s.contacts, contactID)
	return nil
}

func (s *ContactStore) DeleteByPerson(_ context.Context, personID id.PersonID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for contactID, row := range s.contacts {
		if row.PersonID != nil && *row.PersonID == personID {
			delete(s.contacts, contactID)
			removed++
		}
	}
	return removed, nil
}

func (s *ContactStore) FindByID(_ context.Context, contactID id.ContactID) (*models.ContactAddress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, exists := s.contacts[contactID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	return &row, nil
}

func (s *ContactStore) ListByPerson(_ context.Context, personID id.PersonID) ([]*models.ContactAddress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.ContactAddress, 0)
	for _, row := range s.contacts {
		if row.PersonID != nil && *row.PersonID == personID {
			row := row
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (s *ContactStore) snapshot() map[id.ContactID]models.ContactAddress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := make(map[id.ContactID]models.ContactAddress, len(s.contacts))
	for k, v := range s.contacts {
		copied[k] = v
	}
	return copied
}

func (s *ContactStore) restore(snap map[id.ContactID]models.ContactAddress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = snap
}
