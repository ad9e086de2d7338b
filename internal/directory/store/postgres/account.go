package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"orgdir/internal/directory/models"
	id "orgdir/pkg/domain"
	"orgdir/pkg/platform/sentinel"
)

// AccountStore persists account rows in PostgreSQL. Username and principal
// uniqueness are unique indexes; violations surface as ErrConflict.
type AccountStore struct {
	db DBTX
}

func NewAccountStore(db DBTX) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) Create(ctx context.Context, account *models.Account) error {
	const query = `
		INSERT INTO accounts (id, principal_id, username, secret_hash, email, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(account.ID),
		uuid.UUID(account.PrincipalID),
		account.Username,
		account.SecretHash,
		account.Email,
		account.Active,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create account: %w", mapError(err))
	}
	return nil
}

func (s *AccountStore) Delete(ctx context.Context, accountID id.AccountID) error {
	const query = `DELETE FROM accounts WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, uuid.UUID(accountID))
	if err != nil {
		return fmt.Errorf("delete account: %w", mapError(err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *AccountStore) DeleteByPrincipal(ctx context.Context, principalID id.PrincipalID) (int, error) {
	const query = `DELETE FROM accounts WHERE principal_id = $1`
	result, err := s.db.ExecContext(ctx, query, uuid.UUID(principalID))
	if err != nil {
		return 0, fmt.Errorf("delete accounts by principal: %w", mapError(err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete accounts by principal: %w", err)
	}
	return int(affected), nil
}

func (s *AccountStore) FindByID(ctx context.Context, accountID id.AccountID) (*models.Account, error) {
	const query = accountSelect + ` WHERE id = $1`
	return s.findOne(ctx, query, uuid.UUID(accountID))
}

func (s *AccountStore) FindByPrincipal(ctx context.Context, principalID id.PrincipalID) (*models.Account, error) {
	const query = accountSelect + ` WHERE principal_id = $1`
	return s.findOne(ctx, query, uuid.UUID(principalID))
}

func (s *AccountStore) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	const query = accountSelect + ` WHERE username = $1`
	return s.findOne(ctx, query, username)
}

const accountSelect = `
	SELECT id, principal_id, username, secret_hash, email, active, created_at, updated_at
	FROM accounts
`

func (s *AccountStore) findOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	var (
		rowID       uuid.UUID
		principalID uuid.UUID
		email       sql.NullString
		account     models.Account
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&rowID, &principalID, &account.Username, &account.SecretHash,
		&email, &account.Active, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if mapped := mapError(err); mapped == sentinel.ErrNotFound {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	account.ID = id.AccountID(rowID)
	account.PrincipalID = id.PrincipalID(principalID)
	if email.Valid {
		account.Email = &email.String
	}
	return &account, nil
}
