package handler

import (
	"log/slog"
	"net/http"

	"trailhead/internal/delivery/http/middleware"
	"trailhead/internal/delivery/http/response"
	domainerrors "trailhead/internal/domain/errors"
	"trailhead/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account profile handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetMe returns the profile of the authenticated account. The account is
// re-read from storage so the response reflects concurrent updates, not
// the snapshot the guard resolved.
func (h *UserHandler) GetMe(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrNotAuthenticated
	}

	fresh, err := h.uc.GetAccount(c.Request().Context(), account.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, fresh, "")
}

// HealthCheck reports process liveness.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "")
}
