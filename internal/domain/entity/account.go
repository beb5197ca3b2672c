// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// passwordChangedAtSkew back-dates the password-changed marker so a token
// issued in the same request cycle as the change is never rejected by the
// clock ordering between the credential write and the token issue.
const passwordChangedAtSkew = 500 * time.Millisecond

// Account is the core identity entity. The password is never held in
// plaintext; only the bcrypt hash is stored, and it is excluded from JSON
// output.
type Account struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"` // Unique, stored lowercase.
	Photo string    `json:"photo,omitempty"`
	Role  Role      `json:"role"`

	PasswordHash      string     `json:"-"`
	PasswordChangedAt *time.Time `json:"-"` // Nil when the password has never changed.

	// Reset fields are only meaningful together: a pending reset secret is
	// the sha256 hash plus its expiry. Both nil means no reset is live.
	ResetTokenHash      *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	// Active is the soft-delete marker. Inactive accounts are excluded
	// from authentication regardless of credential correctness.
	Active bool `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MarkPasswordChanged stamps the password-changed marker, slightly in the
// past (see passwordChangedAtSkew).
func (a *Account) MarkPasswordChanged() {
	changedAt := time.Now().Add(-passwordChangedAtSkew)
	a.PasswordChangedAt = &changedAt
}

// PasswordChangedAfter reports whether the password was changed strictly
// after the given token issue time. An account that never changed its
// password always reports false.
func (a *Account) PasswordChangedAfter(issuedAt time.Time) bool {
	if a.PasswordChangedAt == nil {
		return false
	}

	return a.PasswordChangedAt.After(issuedAt)
}

// SetResetToken records the hash and expiry of a freshly issued reset
// secret, superseding any prior one.
func (a *Account) SetResetToken(hash string, expiresAt time.Time) {
	a.ResetTokenHash = &hash
	a.ResetTokenExpiresAt = &expiresAt
}

// ClearResetToken removes the pending reset secret, either because it was
// consumed or because delivery of the reset mail failed.
func (a *Account) ClearResetToken() {
	a.ResetTokenHash = nil
	a.ResetTokenExpiresAt = nil
}
