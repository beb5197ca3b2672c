package impl

import (
	"context"
	"log/slog"

	deliverycontext "trailhead/internal/delivery/context"
	"trailhead/internal/domain/entity"
	domainerrors "trailhead/internal/domain/errors"
	"trailhead/internal/domain/repository"
	"trailhead/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(
	userRepo repository.UserRepository,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetAccount loads the account for the given ID.
func (srv *userService) GetAccount(ctx context.Context, userID uuid.UUID) (*entity.Account, error) {
	srv.log(ctx).Debug("Getting account", slog.Any("userID", userID))

	account, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrNotAuthenticated
		}

		srv.log(ctx).Error("Failed to get account", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find account")
	}

	return account, nil
}
