package service

import (
	"context"

	"trailhead/internal/domain/entity"
)

// Mailer is the outbound email collaborator. Implementations report
// delivery failure through the returned error; the reset flow relies on
// that signal to roll back a pending reset secret.
type Mailer interface {
	// SendWelcome greets a freshly registered account.
	SendWelcome(ctx context.Context, account *entity.Account) error

	// SendPasswordReset transmits the plaintext reset secret embedded in
	// resetURL. The secret is never persisted in this form.
	SendPasswordReset(ctx context.Context, account *entity.Account, resetURL string) error
}
