package middleware

import (
	"log/slog"

	"trailhead/internal/delivery/http/session"
	"trailhead/internal/domain/entity"
	domainerrors "trailhead/internal/domain/errors"
	"trailhead/internal/domain/repository"
	"trailhead/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// accountContextKey is the echo context key the authenticated account is
// stored under.
const accountContextKey = "account"

// AuthMiddleware provides the guard chain for protected routes: session
// token verification, account resolution and role checks.
type AuthMiddleware struct {
	tokenSvc  service.TokenService
	userRepo  repository.UserRepository
	transport *session.Transport
	logger    *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(
	tokenSvc service.TokenService,
	userRepo repository.UserRepository,
	transport *session.Transport,
	logger *slog.Logger,
) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc:  tokenSvc,
		userRepo:  userRepo,
		transport: transport,
		logger:    logger,
	}
}

// CurrentAccount returns the authenticated account set by Authenticate or
// SoftAuthenticate, or nil when the request is anonymous.
func CurrentAccount(c echo.Context) *entity.Account {
	account, _ := c.Get(accountContextKey).(*entity.Account)

	return account
}

// resolve runs the full verification chain and returns the live account a
// request's token belongs to. Every failure maps to a domain error so the
// central error handler produces the right status code.
func (m *AuthMiddleware) resolve(c echo.Context) (*entity.Account, error) {
	token, ok := m.transport.Extract(c)
	if !ok {
		return nil, domainerrors.ErrNotAuthenticated
	}

	claims, err := m.tokenSvc.Parse(token)
	if err != nil {
		return nil, domainerrors.ErrNotAuthenticated.WrapMessage("invalid or expired session token")
	}

	// The token may outlive the account it was issued for. Deactivated
	// accounts are filtered out by the repository query itself.
	account, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return nil, domainerrors.ErrNotAuthenticated.WrapMessage("account no longer exists")
	}

	if account.PasswordChangedAfter(claims.IssuedAt) {
		return nil, domainerrors.ErrPasswordChanged
	}

	return account, nil
}

// Authenticate rejects any request without a valid session. On success
// the account is stored on the context for handlers and role checks.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		account, err := m.resolve(c)
		if err != nil {
			return err
		}

		c.Set(accountContextKey, account)

		return next(c)
	}
}

// SoftAuthenticate resolves the account when a valid session is present
// but never rejects the request. Handlers observe the difference through
// CurrentAccount returning nil.
func (m *AuthMiddleware) SoftAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if account, err := m.resolve(c); err == nil {
			c.Set(accountContextKey, account)
		}

		return next(c)
	}
}

// RequireRoles is a middleware factory that allows only the listed roles
// through. It must run after Authenticate; a request that somehow reaches
// it anonymously is rejected as unauthenticated, not forbidden.
func (m *AuthMiddleware) RequireRoles(roles ...entity.Role) echo.MiddlewareFunc {
	allowed := entity.Roles(roles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			account := CurrentAccount(c)
			if account == nil {
				return domainerrors.ErrNotAuthenticated
			}

			if !allowed.Contains(account.Role) {
				m.logger.Warn("Role check rejected request",
					slog.Any("userID", account.ID),
					slog.String("role", string(account.Role)),
					slog.String("path", c.Request().URL.Path),
				)

				return domainerrors.ErrForbidden.WrapMessage("you do not have permission to perform this action")
			}

			return next(c)
		}
	}
}
