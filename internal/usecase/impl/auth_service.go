// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"trailhead/config"
	deliverycontext "trailhead/internal/delivery/context"
	"trailhead/internal/domain/entity"
	domainerrors "trailhead/internal/domain/errors"
	"trailhead/internal/domain/repository"
	"trailhead/internal/domain/service"
	"trailhead/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager     repository.TransactionManager
	userRepo      repository.UserRepository
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	mailer        service.Mailer
	baseURL       string
	resetTokenTTL time.Duration
	logger        *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Mailer       service.Mailer
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:     params.TxManager,
		userRepo:      params.UserRepo,
		hasher:        params.Hasher,
		tokenService:  params.TokenService,
		mailer:        params.Mailer,
		baseURL:       strings.TrimRight(params.Config.App.BaseURL, "/"),
		resetTokenTTL: params.Config.Auth.ResetTokenTTL,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeEmail maps an email to its canonical stored form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// session issues a token for the account and bundles both into the output
// every credential-establishing operation returns.
func (srv *authService) session(account *entity.Account) (*usecase.SessionOutput, error) {
	token, err := srv.tokenService.Issue(account.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	return &usecase.SessionOutput{Token: token, Account: account}, nil
}

// Signup registers a new account and issues a session.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SessionOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting signup", slog.String("email", email))

	// Hash outside the transaction; bcrypt is CPU-bound and must not
	// hold a database connection.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	account := &entity.Account{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        email,
		Role:         entity.RoleUser,
		PasswordHash: hashedPassword,
		Active:       true,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return domainerrors.ErrAccountAlreadyExists.WrapMessage("email already registered")
		} else if !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to check existing account")
		}

		if err := userRepo.Create(ctx, account); err != nil {
			return errors.Wrap(err, "failed to create account")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute signup transaction", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	// Welcome mail is best effort; a delivery failure never fails the
	// registration itself.
	if err := srv.mailer.SendWelcome(ctx, account); err != nil {
		srv.log(ctx).Warn("Failed to send welcome mail", slog.String("email", email), slog.Any("error", err))
	}

	srv.log(ctx).Debug("Signup completed", slog.Any("userID", account.ID))

	return srv.session(account)
}

// Login verifies credentials and issues a session.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.SessionOutput, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrMissingCredentials
	}

	srv.log(ctx).Debug("Login attempt", slog.String("email", email))

	account, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			// Indistinguishable from a wrong password on purpose.
			return nil, domainerrors.ErrInvalidCredentials
		}

		srv.log(ctx).Error("Failed to look up account during login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find account")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login rejected", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("userID", account.ID))

	return srv.session(account)
}

// ForgotPassword starts the password reset flow.
func (srv *authService) ForgotPassword(ctx context.Context, input *usecase.ForgotPasswordInput) error {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Password reset requested", slog.String("email", email))

	account, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrEmailNotFound.WrapMessage("no account with that email address")
		}

		return errors.Wrap(err, "failed to find account")
	}

	secret, hash, err := newResetSecret()
	if err != nil {
		return errors.Wrap(err, "failed to generate reset secret")
	}

	// A new request supersedes any pending secret for the account.
	account.SetResetToken(hash, time.Now().Add(srv.resetTokenTTL))
	if err := srv.userRepo.UpdateCredentials(ctx, account); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to store reset secret")
	}

	resetURL := fmt.Sprintf("%s/api/v1/auth/reset-password/%s", srv.baseURL, secret)
	if err := srv.mailer.SendPasswordReset(ctx, account, resetURL); err != nil {
		srv.log(ctx).Error("Failed to send reset mail, rolling back reset state",
			slog.String("email", email), slog.Any("error", err))

		// The stored secret is useless if the mail never arrived; roll
		// it back so the account carries no dangling reset state.
		account.ClearResetToken()
		if rbErr := srv.userRepo.UpdateCredentials(ctx, account); rbErr != nil {
			srv.log(ctx).Error("Failed to roll back reset state", slog.Any("error", rbErr))
		}

		return domainerrors.ErrMailDelivery.WrapMessage("failed to send password reset mail")
	}

	srv.log(ctx).Debug("Reset mail sent", slog.Any("userID", account.ID))

	return nil
}

// ResetPassword exchanges a live reset secret for a new password and session.
func (srv *authService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) (*usecase.SessionOutput, error) {
	srv.log(ctx).Info("Password reset consumption attempt")

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	var account *entity.Account
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		found, err := userRepo.FindByResetTokenHash(ctx, hashResetSecret(input.Token), time.Now())
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrResetTokenInvalid.WrapMessage("reset token is invalid or has expired")
			}

			return errors.Wrap(err, "failed to find account by reset token")
		}

		found.PasswordHash = hashedPassword
		found.MarkPasswordChanged()
		found.ClearResetToken()

		if err := userRepo.UpdateCredentials(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update credentials")
		}

		account = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Password reset failed", slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Password reset completed", slog.Any("userID", account.ID))

	return srv.session(account)
}

// UpdatePassword changes the password of an authenticated account.
func (srv *authService) UpdatePassword(ctx context.Context, userID uuid.UUID, input *usecase.UpdatePasswordInput) (*usecase.SessionOutput, error) {
	srv.log(ctx).Info("Password update requested", slog.Any("userID", userID))

	account, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrNotAuthenticated
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	// The session alone is not enough to change a password; the caller
	// must prove knowledge of the current one.
	if !srv.hasher.Check(input.PasswordCurrent, account.PasswordHash) {
		srv.log(ctx).Warn("Password update rejected, current password wrong", slog.Any("userID", userID))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("current password is incorrect")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	account.PasswordHash = hashedPassword
	account.MarkPasswordChanged()

	if err := srv.userRepo.UpdateCredentials(ctx, account); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to update credentials")
	}

	srv.log(ctx).Info("Password updated", slog.Any("userID", userID))

	return srv.session(account)
}
