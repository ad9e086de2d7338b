package memory

import (
	"context"
	"sync"

	"orgdir/internal/directory/models"
	id "orgdir/pkg/domain"
	"orgdir/pkg/platform/sentinel"
)

// AccountStore keeps account rows in a map guarded by a RWMutex. Username and
// principal uniqueness are enforced on Create, mirroring the postgres schema.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[id.AccountID]models.Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[id.AccountID]models.Account)}
}

func (s *AccountStore) Create(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.ID]; exists {
		return sentinel.ErrConflict
	}
	for _, row := range s.accounts {
		if row.Username == account.Username || row.PrincipalID == account.PrincipalID {
			return sentinel.ErrConflict
		}
	}
	s.accounts[account.ID] = *account
	return nil
}

func (s *AccountStore) Delete(_ context.Context, accountID id.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[accountID]; !exists {
		return sentinel.ErrNotFound
	}
	delete(s.accounts, accountID)
	return nil
}

func (s *AccountStore) DeleteByPrincipal(_ context.Context, principalID id.PrincipalID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for accountID, row := range s.accounts {
		if row.PrincipalID == principalID {
			delete(s.accounts, accountID)
			removed++
		}
	}
	return removed, nil
}

func (s *AccountStore) FindByID(_ context.Context, accountID id.AccountID) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, exists := s.accounts[accountID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	return &row, nil
}

func (s *AccountStore) FindByPrincipal(_ context.Context, principalID id.PrincipalID) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, row := range s.accounts {
		if row.PrincipalID == principalID {
			row := row
			return &row, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *AccountStore) FindByUsername(_ context.Context, username string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, row := range s.accounts {
		if row.Username == username {
			row := row
			return &row, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *AccountStore) snapshot() map[id.AccountID]models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := make(map[id.AccountID]models.Account, len(s.accounts))
	for k, v := range s.accounts {
		copied[k] = v
	}
	return copied
}

func (s *AccountStore) restore(snap map[id.AccountID]models.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = snap
}
