// Package memory provides map-backed store implementations.
//
// They serve unit tests and local development. RunInTx snapshots every store
// before running the callback and restores the snapshots when it fails, so
// the orchestrator's all-or-nothing contract holds without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"orgdir/internal/directory/models"
	id "orgdir/pkg/domain"
	"orgdir/pkg/platform/sentinel"
)

// PersonStore keeps person rows in a map guarded by a RWMutex.
type PersonStore struct {
	mu      sync.RWMutex
	persons map[id.PersonID]models.Person
}

func NewPersonStore() *PersonStore {
	return &PersonStore{persons: make(map[id.PersonID]models.Person)}
}

func (s *PersonStore) Create(_ context.Context, person *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.persons[person.ID]; exists {
		return sentinel.ErrConflict
	}
	s.persons[person.ID] = clonePersonRow(person)
	return nil
}

func (s *PersonStore) Update(_ context.Context, person *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.persons[person.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.persons[person.ID] = clonePersonRow(person)
	return nil
}

func (s *PersonStore) Delete(_ context.Context, personID id.PersonID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.persons[personID]; !exists {
		return sentinel.ErrNotFound
	}
	delete(s.persons, personID)
	return nil
}

func (s *PersonStore) FindByID(_ context.Context, personID id.PersonID) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, exists := s.persons[personID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	return &row, nil
}

func (s *PersonStore) Exists(_ context.Context, personID id.PersonID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.persons[personID]
	return exists, nil
}

func (s *PersonStore) List(_ context.Context) ([]*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Person, 0, len(s.persons))
	for _, row := range s.persons {
		row := row
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

// clonePersonRow stores only the scalar row; view-side subgraphs are never
// persisted from the person map.
func clonePersonRow(person *models.Person) models.Person {
	return models.Person{
		ID:        person.ID,
		Name:      person.Name,
		CreatedAt: person.CreatedAt,
		UpdatedAt: person.UpdatedAt,
	}
}

func (s *PersonStore) snapshot() map[id.PersonID]models.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := make(map[id.PersonID]models.Person, len(s.persons))
	for k, v := range s.persons {
		copied[k] = v
	}
	return copied
}

func (s *PersonStore) restore(snap map[id.PersonID]models.Person) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persons = snap
}
