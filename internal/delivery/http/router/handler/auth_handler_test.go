package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trailhead/config"
	"trailhead/internal/delivery/http/session"
	"trailhead/internal/delivery/http/validator"
	"trailhead/internal/domain/entity"
	mockUC "trailhead/internal/mocks/usecase"
	"trailhead/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAuthHandler(t *testing.T) (*AuthHandler, *mockUC.MockAuthUsecase) {
	uc := mockUC.NewMockAuthUsecase(t)
	cfg := &config.Config{Auth: &config.AuthConfig{CookieTTLDays: 7}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAuthHandler(uc, session.NewTransport(cfg), logger), uc
}

func newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e := echo.New()
	e.Validator = validator.New()

	return e.NewContext(req, rec), rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	res := &http.Response{Header: rec.Header()}
	for _, cookie := range res.Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}

	return nil
}

func TestLoginHandler(t *testing.T) {
	t.Run("attaches session cookie and returns token", func(t *testing.T) {
		h, uc := newTestAuthHandler(t)
		out := &usecase.SessionOutput{
			Token:   "signed-token",
			Account: &entity.Account{ID: uuid.New(), Email: "hiker@example.com", Role: entity.RoleUser},
		}
		uc.On("Login", mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).Return(out, nil)

		c, rec := newJSONContext(http.MethodPost, "/api/v1/auth/login",
			`{"email":"hiker@example.com","password":"pass1234"}`)

		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "signed-token")

		cookie := sessionCookie(rec)
		require.NotNil(t, cookie)
		assert.Equal(t, "signed-token", cookie.Value)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("rejects payload failing validation", func(t *testing.T) {
		h, _ := newTestAuthHandler(t)

		c, _ := newJSONContext(http.MethodPost, "/api/v1/auth/login",
			`{"email":"not-an-email","password":"pass1234"}`)

		assert.Error(t, h.Login(c))
	})

	t.Run("response never includes the password hash", func(t *testing.T) {
		h, uc := newTestAuthHandler(t)
		out := &usecase.SessionOutput{
			Token: "signed-token",
			Account: &entity.Account{
				ID:           uuid.New(),
				Email:        "hiker@example.com",
				PasswordHash: "$2a$12$secret",
			},
		}
		uc.On("Login", mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).Return(out, nil)

		c, rec := newJSONContext(http.MethodPost, "/api/v1/auth/login",
			`{"email":"hiker@example.com","password":"pass1234"}`)

		require.NoError(t, h.Login(c))
		assert.NotContains(t, rec.Body.String(), "$2a$12$secret")
	})
}

func TestSignupHandler(t *testing.T) {
	t.Run("returns 201 with session", func(t *testing.T) {
		h, uc := newTestAuthHandler(t)
		out := &usecase.SessionOutput{
			Token:   "signed-token",
			Account: &entity.Account{ID: uuid.New(), Email: "hiker@example.com", Role: entity.RoleUser},
		}
		uc.On("Signup", mock.Anything, mock.AnythingOfType("*usecase.SignupInput")).Return(out, nil)

		c, rec := newJSONContext(http.MethodPost, "/api/v1/auth/signup",
			`{"name":"Test Hiker","email":"hiker@example.com","password":"pass1234","passwordConfirm":"pass1234"}`)

		require.NoError(t, h.Signup(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, sessionCookie(rec))
	})

	t.Run("rejects mismatched password confirmation", func(t *testing.T) {
		h, _ := newTestAuthHandler(t)

		c, _ := newJSONContext(http.MethodPost, "/api/v1/auth/signup",
			`{"name":"Test Hiker","email":"hiker@example.com","password":"pass1234","passwordConfirm":"different"}`)

		assert.Error(t, h.Signup(c))
	})
}

func TestLogoutHandler(t *testing.T) {
	h, _ := newTestAuthHandler(t)

	c, rec := newJSONContext(http.MethodGet, "/api/v1/auth/logout", "")

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "logged-out", cookie.Value)
}

func TestResetPasswordHandler(t *testing.T) {
	h, uc := newTestAuthHandler(t)
	out := &usecase.SessionOutput{
		Token:   "fresh-token",
		Account: &entity.Account{ID: uuid.New(), Email: "hiker@example.com", Role: entity.RoleUser},
	}
	uc.On("ResetPassword", mock.Anything, mock.MatchedBy(func(input *usecase.ResetPasswordInput) bool {
		return input.Token == "plain-secret"
	})).Return(out, nil)

	c, rec := newJSONContext(http.MethodPatch, "/api/v1/auth/reset-password/plain-secret",
		`{"password":"newpass123","passwordConfirm":"newpass123"}`)
	c.SetParamNames("token")
	c.SetParamValues("plain-secret")

	require.NoError(t, h.ResetPassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "fresh-token", cookie.Value)
}

func TestUpdatePasswordHandler(t *testing.T) {
	t.Run("requires authenticated account on context", func(t *testing.T) {
		h, _ := newTestAuthHandler(t)

		c, _ := newJSONContext(http.MethodPatch, "/api/v1/auth/update-password",
			`{"passwordCurrent":"pass1234","password":"newpass123","passwordConfirm":"newpass123"}`)

		assert.Error(t, h.UpdatePassword(c))
	})

	t.Run("issues fresh session on success", func(t *testing.T) {
		h, uc := newTestAuthHandler(t)
		account := &entity.Account{ID: uuid.New(), Email: "hiker@example.com", Role: entity.RoleUser}
		out := &usecase.SessionOutput{Token: "fresh-token", Account: account}
		uc.On("UpdatePassword", mock.Anything, account.ID, mock.AnythingOfType("*usecase.UpdatePasswordInput")).
			Return(out, nil)

		c, rec := newJSONContext(http.MethodPatch, "/api/v1/auth/update-password",
			`{"passwordCurrent":"pass1234","password":"newpass123","passwordConfirm":"newpass123"}`)
		c.Set("account", account)

		require.NoError(t, h.UpdatePassword(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		cookie := sessionCookie(rec)
		require.NotNil(t, cookie)
		assert.Equal(t, "fresh-token", cookie.Value)
	})
}
