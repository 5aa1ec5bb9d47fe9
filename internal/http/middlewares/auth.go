package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "taskhero.com/taskhero/internal/errors"
	model "taskhero.com/taskhero/internal/models"
)

const (
	SessionCookie = "taskhero_session"
	userKey       = "user"
)

// Authenticator resolves a session token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// SessionToken reads the token from the session cookie or a bearer header.
func SessionToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// RequireSession rejects requests without a valid session. Browsers asking
// for a page are sent to the login form instead.
func RequireSession(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := auth.Authenticate(c.Request().Context(), SessionToken(c))
			if err != nil {
				status := apperrors.StatusCode(err)
				if status == http.StatusUnauthorized && wantsHTML(c) {
					return c.Redirect(http.StatusSeeOther, "/login")
				}
				return echo.NewHTTPError(status, apperrors.Message(err))
			}

			c.Set(userKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user RequireSession attached to the request.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userKey).(*model.User)
	return user
}

func wantsHTML(c echo.Context) bool {
	req := c.Request()
	return req.Method == http.MethodGet && strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}
