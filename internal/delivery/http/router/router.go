// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"trailhead/internal/delivery/http/middleware"
	"trailhead/internal/delivery/http/router/handler"
	"trailhead/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	TourHandler         *handler.TourHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	tourHandler    *handler.TourHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimit      *middleware.RateLimitMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		tourHandler:    params.TourHandler,
		authMiddleware: params.AuthMiddleware,
		rateLimit:      params.RateLimitMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api/v1", r.rateLimit.Handle)

	// Credential endpoints; all anonymous except logout and update-password.
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/forgot-password", r.authHandler.ForgotPassword)
		authGroup.PATCH("/reset-password/:token", r.authHandler.ResetPassword)

		// Logout requires a session so an anonymous client cannot probe
		// which cookies exist. GET is kept for plain browser navigation.
		authGroup.GET("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)

		authGroup.PATCH("/update-password", r.authHandler.UpdatePassword, r.authMiddleware.Authenticate)
	}

	// Account routes that require authentication
	userGroup := api.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.GetMe)
	}

	// Catalog routes. Listing is public but session-aware; mutations are
	// restricted to catalog managers.
	tourGroup := api.Group("/tours")
	{
		tourGroup.GET("", r.tourHandler.ListTours, r.authMiddleware.SoftAuthenticate)

		manage := []echo.MiddlewareFunc{
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRoles(entity.RoleAdmin, entity.RoleLeadGuide),
		}
		tourGroup.POST("", r.tourHandler.CreateTour, manage...)
		tourGroup.DELETE("/:id", r.tourHandler.DeleteTour, manage...)
	}
}
