// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"trailhead/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// UserRepository defines the standard operations for account persistence.
//
// Every lookup used for authentication excludes soft-deleted accounts in
// the query itself; the application layer never sees an inactive account.
// This is the explicit replacement for the implicit query hook the system
// previously relied on.
type UserRepository interface {
	// FindByID retrieves a single active account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single active account by its email address.
	// The email is matched against the stored lowercase form.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByResetTokenHash retrieves the active account whose pending reset
	// secret hash matches AND whose expiry is still after now. Both
	// conditions are part of the query so a consumed or expired secret is
	// indistinguishable from a wrong one.
	FindByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*entity.Account, error)

	// Create persists a new account to the storage.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account in the storage.
	Update(ctx context.Context, account *entity.Account) error

	// UpdateCredentials writes only the credential columns (password hash,
	// password-changed-at, reset secret hash and expiry). The targeted
	// write keeps credential mutations from racing profile updates.
	UpdateCredentials(ctx context.Context, account *entity.Account) error
}
