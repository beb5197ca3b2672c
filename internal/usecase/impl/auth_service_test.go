package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"trailhead/config"
	"trailhead/internal/domain/entity"
	domainerrors "trailhead/internal/domain/errors"
	"trailhead/internal/domain/repository"
	mockRepo "trailhead/internal/mocks/repository"
	mockSvc "trailhead/internal/mocks/service"
	"trailhead/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://trailhead.example.com"

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	txManager    *mockRepo.MockTransactionManager
	repoFactory  *mockRepo.MockRepositoryFactory
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	mailer       *mockSvc.MockMailer
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	repoFactory := mockRepo.NewMockRepositoryFactory(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	mailer := mockSvc.NewMockMailer(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:    12,
			TokenTTL:      15 * time.Minute,
			ResetTokenTTL: 10 * time.Minute,
		},
	}
	cfg.App.BaseURL = testBaseURL

	service := NewAuthService(AuthServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Mailer:       mailer,
		Config:       cfg,
		Logger:       logger,
	})

	return authServiceFixtures{
		service:      service,
		txManager:    txManager,
		repoFactory:  repoFactory,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		mailer:       mailer,
	}
}

// passthroughTx wires the transaction manager mock so Execute runs the
// callback against the mocked repository factory.
func (f authServiceFixtures) passthroughTx() {
	f.repoFactory.On("UserRepo").Return(f.userRepo).Maybe()
	f.txManager.On("Execute", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(f.repoFactory)
		})
}

func testAccount() *entity.Account {
	return &entity.Account{
		ID:           uuid.New(),
		Name:         "Test Hiker",
		Email:        "hiker@example.com",
		Role:         entity.RoleUser,
		PasswordHash: "$2a$12$storedhash",
		Active:       true,
	}
}

func TestSignup(t *testing.T) {
	t.Run("creates account and issues session", func(t *testing.T) {
		f := createTestAuthService(t)
		f.passthroughTx()

		f.hasher.On("Hash", "pass1234").Return("$2a$12$newhash", nil)
		f.userRepo.On("FindByEmail", mock.Anything, "hiker@example.com").
			Return(nil, repository.ErrAccountNotFound)
		f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Account")).Return(nil)
		f.mailer.On("SendWelcome", mock.Anything, mock.AnythingOfType("*entity.Account")).Return(nil)
		f.tokenService.On("Issue", mock.AnythingOfType("uuid.UUID")).Return("signed-token", nil)

		out, err := f.service.Signup(context.Background(), &usecase.SignupInput{
			Name:            "Test Hiker",
			Email:           "  Hiker@Example.COM ",
			Password:        "pass1234",
			PasswordConfirm: "pass1234",
		})

		require.NoError(t, err)
		assert.Equal(t, "signed-token", out.Token)
		assert.Equal(t, "hiker@example.com", out.Account.Email)
		assert.Equal(t, entity.RoleUser, out.Account.Role)
		assert.Equal(t, "$2a$12$newhash", out.Account.PasswordHash)
		assert.True(t, out.Account.Active)
	})

	t.Run("succeeds even when welcome mail fails", func(t *testing.T) {
		f := createTestAuthService(t)
		f.passthroughTx()

		f.hasher.On("Hash", "pass1234").Return("$2a$12$newhash", nil)
		f.userRepo.On("FindByEmail", mock.Anything, "hiker@example.com").
			Return(nil, repository.ErrAccountNotFound)
		f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Account")).Return(nil)
		f.mailer.On("SendWelcome", mock.Anything, mock.AnythingOfType("*entity.Account")).
			Return(errors.New("smtp unreachable"))
		f.tokenService.On("Issue", mock.AnythingOfType("uuid.UUID")).Return("signed-token", nil)

		out, err := f.service.Signup(context.Background(), &usecase.SignupInput{
			Name:            "Test Hiker",
			Email:           "hiker@example.com",
			Password:        "pass1234",
			PasswordConfirm: "pass1234",
		})

		require.NoError(t, err)
		assert.Equal(t, "signed-token", out.Token)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		f := createTestAuthService(t)
		f.passthroughTx()

		f.hasher.On("Hash", "pass1234").Return("$2a$12$newhash", nil)
		f.userRepo.On("FindByEmail", mock.Anything, "hiker@example.com").
			Return(testAccount(), nil)

		out, err := f.service.Signup(context.Background(), &usecase.SignupInput{
			Name:            "Test Hiker",
			Email:           "hiker@example.com",
			Password:        "pass1234",
			PasswordConfirm: "pass1234",
		})

		require.Error(t, err)
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists))
	})
}

func TestLogin(t *testing.T) {
	t.Run("issues session for correct credentials", func(t *testing.T) {
		f := createTestAuthService(t)
		account := testAccount()

		f.userRepo.On("FindByEmail", mock.Anything, "hiker@example.com").Return(account, nil)
		f.hasher.On("Check", "pass1234", account.PasswordHash).Return(true)
		f.tokenService.On("Issue", account.ID).Return("signed-token", nil)

		out, err := f.service.Login(context.Background(), &usecase.LoginInput{
			Email:    "hiker@example.com",
			Password: "pass1234",
		})

		require.NoError(t, err)
		assert.Equal(t, "signed-token", out.Token)
		assert.Equal(t, account, out.Account)
	})

	t.Run("rejects missing credentials", func(t *testing.T) {
		f := createTestAuthService(t)

		_, err := f.service.Login(context.Background(), &usecase.LoginInput{Email: "hiker@example.com"})
		assert.True(t, errors.Is(err, domainerrors.ErrMissingCredentials))

		_, err = f.service.Login(context.Background(), &usecase.LoginInput{Password: "pass1234"})
		assert.True(t, errors.Is(err, domainerrors.ErrMissingCredentials))
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		f := createTestAuthService(t)
		account := testAccount()

		f.userRepo.On("FindByEmail", mock.Anything, "unknown@example.com").
			Return(nil, repository.ErrAccountNotFound)
		f.userRepo.On("FindByEmail", mock.Anything, "hiker@example.com").Return(account, nil)
		f.hasher.On("Check", "wrong", account.PasswordHash).Return(false)

		_, errUnknown := f.service.Login(context.Background(), &usecase.LoginInput{
			Email: "unknown@example.com", Password: "pass1234",
		})
		_, errWrong := f.service.Login(context.Background(), &usecase.LoginInput{
			Email: "hiker@example.com", Password: "wrong",
		})

		assert.True(t, errors.Is(errUnknown, domainerrors.ErrInvalidCredentials))
		assert.True(t, errors.Is(errWrong, domainerrors.ErrInvalidCredentials))
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})
}

func TestForgotPassword(t *testing.T) {
	t.Run("stores hashed secret and mails plaintext", func(t *testing.T) {
		f := createTestAuthService(t)
		account := testAccount()

		var mailedURL string
		f.userRepo.On("FindByEmail", mock.Anything, account.Email).Return(account, nil)
		f.userRepo.On("UpdateCredentials", mock.Anything, account).Return(nil).Once()
		f.mailer.On("SendPasswordReset", mock.Anything, account, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { mailedURL = args.String(2) }).
			Return(nil)

		err := f.service.ForgotPassword(context.Background(), &usecase.ForgotPasswordInput{
			Email: account.Email,
		})
		require.NoError(t, err)

		prefix := testBaseURL + "/api/v1/auth/reset-password/"
		require.True(t, strings.HasPrefix(mailedURL, prefix))
		secret := strings.TrimPrefix(mailedURL, prefix)
		assert.Len(t, secret, 64) // 32 random bytes, hex encoded

		// Only the sha256 of the mailed secret may be persisted.
		sum := sha256.Sum256([]byte(secret))
		require.NotNil(t, account.ResetTokenHash)
		assert.Equal(t, hex.EncodeToString(sum[:]), *account.ResetTokenHash)

		require.NotNil(t, account.ResetTokenExpiresAt)
		assert.WithinDuration(t, time.Now().Add(10*time.Minute), *account.ResetTokenExpiresAt, 5*time.Second)
	})

	t.Run("reports unknown email", func(t *testing.T) {
		f := createTestAuthService(t)

		f.userRepo.On("FindByEmail", mock.Anything, "unknown@example.com").
			Return(nil, repository.ErrAccountNotFound)

		err := f.service.ForgotPassword(context.Background(), &usecase.ForgotPasswordInput{
			Email: "unknown@example.com",
		})

		assert.True(t, errors.Is(err, domainerrors.ErrEmailNotFound))
	})

	t.Run("rolls back stored secret when mail delivery fails", func(t *testing.T) {
		f := createTestAuthService(t)
		account := testAccount()

		f.userRepo.On("FindByEmail", mock.Anything, account.Email).Return(account, nil)
		f.userRepo.On("UpdateCredentials", mock.Anything, account).Return(nil).Twice()
		f.mailer.On("SendPasswordReset", mock.Anything, account, mock.AnythingOfType("string")).
			Return(errors.New("smtp unreachable"))

		err := f.service.ForgotPassword(context.Background(), &usecase.ForgotPasswordInput{
			Email: account.Email,
		})

		assert.True(t, errors.Is(err, domainerrors.ErrMailDelivery))
		assert.Nil(t, account.ResetTokenHash)
		assert.Nil(t, account.ResetTokenExpiresAt)
	})
}

func TestResetPassword(t *testing.T) {
	t.Run("consumes live secret and issues session", func(t *testing.T) {
		f := createTestAuthService(t)
		f.passthroughTx()
		account := testAccount()
		secret := strings.Repeat("ab", 32)
		sum := sha256.Sum256([]byte(secret))
		account.SetResetToken(hex.EncodeToString(sum[:]), time.Now().Add(5*time.Minute))

		f.hasher.On("Hash", "newpass123").Return("$2a$12$fresh", nil)
		f.userRepo.On("FindByResetTokenHash", mock.Anything, hex.EncodeToString(sum[:]), mock.AnythingOfType("time.Time")).
			Return(account, nil)
		f.userRepo.On("UpdateCredentials", mock.Anything, account).Return(nil)
		f.tokenService.On("Issue", account.ID).Return("signed-token", nil)

		out, err := f.service.ResetPassword(context.Background(), &usecase.ResetPasswordInput{
			Token:           secret,
			Password:        "newpass123",
			PasswordConfirm: "newpass123",
		})

		require.NoError(t, err)
		assert.Equal(t, "signed-token", out.Token)
		assert.Equal(t, "$2a$12$fresh", account.PasswordHash)
		assert.Nil(t, account.ResetTokenHash)
		assert.Nil(t, account.ResetTokenExpiresAt)

		// The change marker is stamped slightly in the past so the session
		// issued alongside it stays valid.
		require.NotNil(t, account.PasswordChangedAt)
		assert.True(t, account.PasswordChangedAt.Before(time.Now()))
	})

	t.Run("rejects unknown or expired secret", func(t *testing.T) {
		f := createTestAuthService(t)
		f.passthroughTx()

		f.hasher.On("Hash", "newpass123").Return("$2a$12$fresh", nil)
		f.userRepo.On("FindByResetTokenHash", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
			Return(nil, repository.ErrAccountNotFound)

		out, err := f.service.ResetPassword(context.Background(), &usecase.ResetPasswordInput{
			Token:           "bogus",
			Password:        "newpass123",
			PasswordConfirm: "newpass123",
		})

		require.Error(t, err)
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, domainerrors.ErrResetTokenInvalid))
	})
}

func TestUpdatePassword(t *testing.T) {
	t.Run("re-verifies current password and issues fresh session", func(t *testing.T) {
		f := createTestAuthService(t)
		account := testAccount()

		f.userRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
		f.hasher.On("Check", "pass1234", "$2a$12$storedhash").Return(true)
		f.hasher.On("Hash", "newpass123").Return("$2a$12$fresh", nil)
		f.userRepo.On("UpdateCredentials", mock.Anything, account).Return(nil)
		f.tokenService.On("Issue", account.ID).Return("signed-token", nil)

		out, err := f.service.UpdatePassword(context.Background(), account.ID, &usecase.UpdatePasswordInput{
			PasswordCurrent: "pass1234",
			Password:        "newpass123",
			PasswordConfirm: "newpass123",
		})

		require.NoError(t, err)
		assert.Equal(t, "signed-token", out.Token)
		assert.Equal(t, "$2a$12$fresh", account.PasswordHash)
		require.NotNil(t, account.PasswordChangedAt)
	})

	t.Run("rejects wrong current password", func(t *testing.T) {
		f := createTestAuthService(t)
		account := testAccount()

		f.userRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
		f.hasher.On("Check", "wrong", "$2a$12$storedhash").Return(false)

		out, err := f.service.UpdatePassword(context.Background(), account.ID, &usecase.UpdatePasswordInput{
			PasswordCurrent: "wrong",
			Password:        "newpass123",
			PasswordConfirm: "newpass123",
		})

		require.Error(t, err)
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})

	t.Run("treats missing account as unauthenticated", func(t *testing.T) {
		f := createTestAuthService(t)
		userID := uuid.New()

		f.userRepo.On("FindByID", mock.Anything, userID).
			Return(nil, repository.ErrAccountNotFound)

		_, err := f.service.UpdatePassword(context.Background(), userID, &usecase.UpdatePasswordInput{
			PasswordCurrent: "pass1234",
			Password:        "newpass123",
			PasswordConfirm: "newpass123",
		})

		assert.True(t, errors.Is(err, domainerrors.ErrNotAuthenticated))
	})
}
