// Package usecase defines the application's business logic interfaces and
// their input/output DTOs. The delivery layer depends on these interfaces,
// never on the implementations.
package usecase

import (
	"context"

	"trailhead/internal/domain/entity"

	"github.com/google/uuid"
)

// SignupInput carries the registration request payload.
type SignupInput struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// LoginInput carries the login credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordInput carries the email a reset is requested for.
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordInput carries the presented reset secret and the new password.
type ResetPasswordInput struct {
	Token           string `json:"-"` // From the URL path, not the body.
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// UpdatePasswordInput carries a password change for an authenticated account.
// The current password is re-verified before the change is accepted.
type UpdatePasswordInput struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// SessionOutput is returned by every operation that establishes a session:
// signup, login, reset consumption and password update.
type SessionOutput struct {
	Token   string          `json:"token"`
	Account *entity.Account `json:"account"`
}

// AuthUsecase defines the authentication and credential operations.
type AuthUsecase interface {
	// Signup registers a new account and issues a session.
	Signup(ctx context.Context, input *SignupInput) (*SessionOutput, error)

	// Login verifies credentials and issues a session.
	Login(ctx context.Context, input *LoginInput) (*SessionOutput, error)

	// ForgotPassword starts the reset flow: it stores the hash of a fresh
	// single-use secret on the account and mails the plaintext. A delivery
	// failure rolls the stored state back before surfacing.
	ForgotPassword(ctx context.Context, input *ForgotPasswordInput) error

	// ResetPassword exchanges a live reset secret for a new password and a
	// fresh session. The secret is consumed on success.
	ResetPassword(ctx context.Context, input *ResetPasswordInput) (*SessionOutput, error)

	// UpdatePassword changes the password of an authenticated account
	// after re-verifying the current one, and issues a fresh session.
	UpdatePassword(ctx context.Context, userID uuid.UUID, input *UpdatePasswordInput) (*SessionOutput, error)
}
