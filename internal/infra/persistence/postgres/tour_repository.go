package postgres

import (
	"context"

	"trailhead/internal/domain/entity"
	domainerrors "trailhead/internal/domain/errors"
	"trailhead/internal/domain/repository"
	"trailhead/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// tourRepository implements the domain.TourRepository interface using GORM.
type tourRepository struct {
	db *gorm.DB
}

// NewTourRepository is the constructor for tourRepository.
func NewTourRepository(db *gorm.DB) repository.TourRepository {
	return &tourRepository{db: db}
}

// List retrieves all tours ordered by name.
func (repo *tourRepository) List(ctx context.Context) ([]*entity.Tour, error) {
	var tourMs []*model.TourModel
	if err := repo.db.WithContext(ctx).Order("name").Find(&tourMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tours")
	}

	tours := make([]*entity.Tour, 0, len(tourMs))
	for _, tourM := range tourMs {
		tours = append(tours, toTourDomain(tourM))
	}

	return tours, nil
}

// Create persists a new tour to the database.
func (repo *tourRepository) Create(ctx context.Context, tour *entity.Tour) error {
	tourM := fromTourDomain(tour)

	if err := repo.db.WithContext(ctx).Create(tourM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create tour")
	}

	tour.ID = tourM.ID
	tour.CreatedAt = tourM.CreatedAt
	tour.UpdatedAt = tourM.UpdatedAt

	return nil
}

// Delete removes a tour by its ID.
func (repo *tourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TourModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete tour")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTourNotFound
	}

	return nil
}

// toTourDomain converts a GORM TourModel to a domain Tour entity.
func toTourDomain(data *model.TourModel) *entity.Tour {
	if data == nil {
		return nil
	}

	return &entity.Tour{
		ID:         data.ID,
		Name:       data.Name,
		Summary:    data.Summary,
		Price:      data.Price,
		Difficulty: data.Difficulty,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromTourDomain converts a domain Tour entity to a GORM TourModel for persistence.
func fromTourDomain(data *entity.Tour) *model.TourModel {
	if data == nil {
		return nil
	}

	return &model.TourModel{
		ID:         data.ID,
		Name:       data.Name,
		Summary:    data.Summary,
		Price:      data.Price,
		Difficulty: data.Difficulty,
	}
}
