// Package session moves the session token between the server and the
// client. Two carriers are supported: the Authorization header for API
// clients and an HTTP-only cookie for browsers.
package session

import (
	"net/http"
	"strings"
	"time"

	"trailhead/config"

	"github.com/labstack/echo/v4"
)

const (
	// CookieName is the session cookie key.
	CookieName = "session"

	// loggedOutValue replaces the token on logout. It can never verify
	// as a token, so a logged-out cookie is equivalent to no cookie.
	loggedOutValue = "logged-out"

	// loggedOutTTL keeps the sentinel cookie around just long enough to
	// overwrite the real one in the browser.
	loggedOutTTL = 10 * time.Second
)

// Transport attaches, extracts and clears the session token on an echo
// request/response pair. Cookie hardening follows the environment: the
// Secure flag is only set in production so local HTTP development works.
type Transport struct {
	cookieTTL time.Duration
	secure    bool
}

// NewTransport is the constructor for Transport.
func NewTransport(cfg *config.Config) *Transport {
	return &Transport{
		cookieTTL: time.Duration(cfg.Auth.CookieTTLDays) * 24 * time.Hour,
		secure:    cfg.IsProduction(),
	}
}

// Attach sets the session cookie on the response. The token is also
// returned in the JSON body by the handlers, so header-based clients can
// ignore the cookie entirely.
func (t *Transport) Attach(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(t.cookieTTL),
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Extract pulls the session token from the request. A Bearer token in the
// Authorization header wins over the cookie. The second return reports
// whether any token was found.
func (t *Transport) Extract(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok && token != "" {
		return token, true
	}

	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" || cookie.Value == loggedOutValue {
		return "", false
	}

	return cookie.Value, true
}

// Clear overwrites the session cookie with a short-lived sentinel. The
// token itself stays valid until expiry; logout only removes the
// browser's copy of it.
func (t *Transport) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    loggedOutValue,
		Path:     "/",
		Expires:  time.Now().Add(loggedOutTTL),
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
