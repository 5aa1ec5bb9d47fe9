package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "taskhero.com/taskhero/internal/errors"
	model "taskhero.com/taskhero/internal/models"
)

func ok(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_PerKey(t *testing.T) {
	e := echo.New()
	e.Use(RateLimiter(2, time.Minute, func(c echo.Context) string {
		return c.Request().Header.Get("X-Client")
	}))
	e.GET("/", ok)

	request := func(client string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Client", client)
		return serve(e, req).Code
	}

	assert.Equal(t, http.StatusOK, request("a"))
	assert.Equal(t, http.StatusOK, request("a"))
	assert.Equal(t, http.StatusTooManyRequests, request("a"))
	assert.Equal(t, http.StatusOK, request("b"))
}

type fakeAuth map[string]*model.User

func (f fakeAuth) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if user, ok := f[token]; ok {
		return user, nil
	}
	return nil, apperrors.ErrUnauthorized
}

func TestRequireSession(t *testing.T) {
	e := echo.New()
	auth := fakeAuth{"good": {ID: "u1", Username: "alice"}}
	e.GET("/me", func(c echo.Context) error {
		return c.String(http.StatusOK, CurrentUser(c).Username)
	}, RequireSession(auth))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good"})
	rec := serve(e, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer good")
	assert.Equal(t, http.StatusOK, serve(e, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, serve(e, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAccept, "text/html,application/xhtml+xml")
	rec = serve(e, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}
