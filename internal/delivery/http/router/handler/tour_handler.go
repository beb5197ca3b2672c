package handler

import (
	"log/slog"
	"net/http"

	"trailhead/internal/delivery/http/middleware"
	"trailhead/internal/delivery/http/response"
	"trailhead/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TourHandler holds dependencies for tour catalog handlers.
type TourHandler struct {
	uc     usecase.TourUsecase
	logger *slog.Logger
}

// NewTourHandler is the constructor for TourHandler, injected by Fx.
func NewTourHandler(uc usecase.TourUsecase, logger *slog.Logger) *TourHandler {
	return &TourHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListTours returns the catalog. The route runs behind the soft guard, so
// a logged-in viewer is known here without the route requiring a session.
func (h *TourHandler) ListTours(c echo.Context) error {
	tours, err := h.uc.ListTours(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	if account := middleware.CurrentAccount(c); account != nil {
		h.logger.Debug("Catalog viewed by authenticated account", slog.Any("userID", account.ID))
	}

	return response.Success(c, http.StatusOK, tours, "")
}

// CreateTour adds a tour to the catalog.
func (h *TourHandler) CreateTour(c echo.Context) error {
	var input usecase.CreateTourInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid tour input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	tour, err := h.uc.CreateTour(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, tour, "Tour created successfully")
}

// DeleteTour removes a tour.
func (h *TourHandler) DeleteTour(c echo.Context) error {
	tourID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid tour ID")
	}

	if err := h.uc.DeleteTour(c.Request().Context(), tourID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
