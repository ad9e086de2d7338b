package models

import (
	"strings"
	"time"

	id "orgdir/pkg/domain"
	dErrors "orgdir/pkg/domain-errors"
)

// Account is the login credential layered on exactly one principal.
//
// Invariants:
//   - PrincipalID is set and unique across accounts (at most one per principal)
//   - Username is non-empty and unique across all accounts
//   - SecretHash arrives already hashed; this core never sees plaintext
//   - An account cannot outlive its principal
type Account struct {
	ID          id.AccountID   `json:"id"`
	PrincipalID id.PrincipalID `json:"principal_id"`
	Username    string         `json:"username"`
	SecretHash  string         `json:"-"`
	Email       *string        `json:"email,omitempty"`
	Active      bool           `json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewAccount constructs an account for the given principal. Per the admin
// elevation flow, the active flag defaults to true.
func NewAccount(accountID id.AccountID, principal id.PrincipalID, username, secretHash string, email *string, now time.Time) (*Account, error) {
	username = strings.TrimSpace(username)
	if accountID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "account ID is required")
	}
	if principal.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "account requires an owning principal")
	}
	if username == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "account username is required")
	}
	return &Account{
		ID:          accountID,
		PrincipalID: principal,
		Username:    username,
		SecretHash:  secretHash,
		Email:       email,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
