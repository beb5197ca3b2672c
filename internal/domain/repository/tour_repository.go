package repository

import (
	"context"
	"errors"

	"trailhead/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTourNotFound is a domain-specific error returned when a tour is not found.
var ErrTourNotFound = errors.New("tour not found")

// TourRepository is the narrow contract the guarded resource endpoints
// delegate to. The full catalog query/filter/sort builder is an external
// collaborator and is not modeled here.
type TourRepository interface {
	// List retrieves all tours.
	List(ctx context.Context) ([]*entity.Tour, error)

	// Create persists a new tour.
	Create(ctx context.Context, tour *entity.Tour) error

	// Delete removes a tour by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
