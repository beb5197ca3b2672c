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

// tourService implements the TourUsecase interface.
type tourService struct {
	txManager repository.TransactionManager
	tourRepo  repository.TourRepository
	logger    *slog.Logger
}

// NewTourService is the constructor for tourService.
func NewTourService(
	txManager repository.TransactionManager,
	tourRepo repository.TourRepository,
	logger *slog.Logger,
) usecase.TourUsecase {
	return &tourService{
		txManager: txManager,
		tourRepo:  tourRepo,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *tourService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListTours returns the catalog ordered by name.
func (srv *tourService) ListTours(ctx context.Context) ([]*entity.Tour, error) {
	tours, err := srv.tourRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list tours", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list tours")
	}

	return tours, nil
}

// CreateTour adds a tour to the catalog.
func (srv *tourService) CreateTour(ctx context.Context, input *usecase.CreateTourInput) (*entity.Tour, error) {
	tour := &entity.Tour{
		ID:         uuid.New(),
		Name:       input.Name,
		Summary:    input.Summary,
		Price:      input.Price,
		Difficulty: input.Difficulty,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.TourRepo().Create(ctx, tour); err != nil {
			return errors.Wrap(err, "failed to create tour")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create tour", slog.String("name", input.Name), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Tour created", slog.Any("tourID", tour.ID))

	return tour, nil
}

// DeleteTour removes a tour by ID.
func (srv *tourService) DeleteTour(ctx context.Context, tourID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.TourRepo().Delete(ctx, tourID); err != nil {
			if errors.Is(err, repository.ErrTourNotFound) {
				return domainerrors.ErrTourNotFound
			}

			return errors.Wrap(err, "failed to delete tour")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to delete tour", slog.Any("tourID", tourID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Tour deleted", slog.Any("tourID", tourID))

	return nil
}
