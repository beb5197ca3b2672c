package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	domainerrors "trailhead/internal/domain/errors"
	"trailhead/internal/domain/repository"
	mockRepo "trailhead/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetAccount(t *testing.T) {
	t.Run("returns the account", func(t *testing.T) {
		userRepo := mockRepo.NewMockUserRepository(t)
		service := NewUserService(userRepo, slog.New(slog.NewTextHandler(io.Discard, nil)))

		account := testAccount()
		userRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)

		got, err := service.GetAccount(context.Background(), account.ID)
		require.NoError(t, err)
		assert.Equal(t, account, got)
	})

	t.Run("missing account maps to unauthenticated", func(t *testing.T) {
		userRepo := mockRepo.NewMockUserRepository(t)
		service := NewUserService(userRepo, slog.New(slog.NewTextHandler(io.Discard, nil)))

		userID := uuid.New()
		userRepo.On("FindByID", mock.Anything, userID).Return(nil, repository.ErrAccountNotFound)

		_, err := service.GetAccount(context.Background(), userID)
		assert.True(t, errors.Is(err, domainerrors.ErrNotAuthenticated))
	})
}
