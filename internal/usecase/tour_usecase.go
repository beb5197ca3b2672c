package usecase

import (
	"context"

	"trailhead/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateTourInput carries the payload for creating a tour.
type CreateTourInput struct {
	Name       string  `json:"name" validate:"required"`
	Difficulty string  `json:"difficulty" validate:"required,oneof=easy medium difficult"`
	Price      float64 `json:"price" validate:"required,min=0"`
	Summary    string  `json:"summary" validate:"required"`
}

// TourUsecase defines the tour catalog operations.
type TourUsecase interface {
	// ListTours returns the catalog ordered by name.
	ListTours(ctx context.Context) ([]*entity.Tour, error)

	// CreateTour adds a tour to the catalog.
	CreateTour(ctx context.Context, input *CreateTourInput) (*entity.Tour, error)

	// DeleteTour removes a tour by ID.
	DeleteTour(ctx context.Context, tourID uuid.UUID) error
}
