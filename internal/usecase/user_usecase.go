package usecase

import (
	"context"

	"trailhead/internal/domain/entity"

	"github.com/google/uuid"
)

// UserUsecase defines account profile operations for authenticated callers.
type UserUsecase interface {
	// GetAccount loads the account for the given ID.
	GetAccount(ctx context.Context, userID uuid.UUID) (*entity.Account, error)
}
