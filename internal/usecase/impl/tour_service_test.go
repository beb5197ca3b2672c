package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"trailhead/internal/domain/entity"
	domainerrors "trailhead/internal/domain/errors"
	"trailhead/internal/domain/repository"
	mockRepo "trailhead/internal/mocks/repository"
	"trailhead/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type tourServiceFixtures struct {
	service     usecase.TourUsecase
	txManager   *mockRepo.MockTransactionManager
	repoFactory *mockRepo.MockRepositoryFactory
	tourRepo    *mockRepo.MockTourRepository
}

func createTestTourService(t *testing.T) tourServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	repoFactory := mockRepo.NewMockRepositoryFactory(t)
	tourRepo := mockRepo.NewMockTourRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return tourServiceFixtures{
		service:     NewTourService(txManager, tourRepo, logger),
		txManager:   txManager,
		repoFactory: repoFactory,
		tourRepo:    tourRepo,
	}
}

func (f tourServiceFixtures) passthroughTx() {
	f.repoFactory.On("TourRepo").Return(f.tourRepo).Maybe()
	f.txManager.On("Execute", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(f.repoFactory)
		})
}

func TestListTours(t *testing.T) {
	f := createTestTourService(t)
	tours := []*entity.Tour{{ID: uuid.New(), Name: "The Forest Hiker"}}

	f.tourRepo.On("List", mock.Anything).Return(tours, nil)

	got, err := f.service.ListTours(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tours, got)
}

func TestCreateTour(t *testing.T) {
	f := createTestTourService(t)
	f.passthroughTx()

	f.tourRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Tour")).Return(nil)

	tour, err := f.service.CreateTour(context.Background(), &usecase.CreateTourInput{
		Name:       "The Forest Hiker",
		Difficulty: "easy",
		Price:      397,
		Summary:    "Breathtaking hike through the Canadian Banff National Park",
	})

	require.NoError(t, err)
	assert.Equal(t, "The Forest Hiker", tour.Name)
	assert.NotEqual(t, uuid.Nil, tour.ID)
}

func TestDeleteTour(t *testing.T) {
	t.Run("deletes existing tour", func(t *testing.T) {
		f := createTestTourService(t)
		f.passthroughTx()
		tourID := uuid.New()

		f.tourRepo.On("Delete", mock.Anything, tourID).Return(nil)

		assert.NoError(t, f.service.DeleteTour(context.Background(), tourID))
	})

	t.Run("missing tour maps to not found", func(t *testing.T) {
		f := createTestTourService(t)
		f.passthroughTx()
		tourID := uuid.New()

		f.tourRepo.On("Delete", mock.Anything, tourID).Return(repository.ErrTourNotFound)

		err := f.service.DeleteTour(context.Background(), tourID)
		assert.True(t, errors.Is(err, domainerrors.ErrTourNotFound))
	})
}
