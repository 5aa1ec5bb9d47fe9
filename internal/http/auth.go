package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	dto "taskhero.com/taskhero/internal/data_models"
	apperrors "taskhero.com/taskhero/internal/errors"
	middleware "taskhero.com/taskhero/internal/http/middlewares"
	model "taskhero.com/taskhero/internal/models"
	"taskhero.com/taskhero/internal/services"
)

type authPage struct {
	User    *model.User
	Heading string
	Action  string
	Form    any
	Error   string
}

func (h *Handler) SignUpPage(c echo.Context) error {
	return c.Render(http.StatusOK, "signup.html", authPage{Heading: "Sign up", Action: "/signup", Form: dto.SignUpRequest{}})
}

func (h *Handler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", authPage{Heading: "Log in", Action: "/login", Form: dto.LoginRequest{}})
}

func (h *Handler) SignUp(c echo.Context) error {
	var req dto.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.AuthResponse{Error: apperrors.ErrInvalidJSON.Message})
	}

	user, token, err := h.authService.SignUp(c.Request().Context(), services.SignUpInput{
		Username:        req.Username,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		status := errorStatus(err)
		if isForm(c) && status < http.StatusInternalServerError {
			req.Password, req.PasswordConfirm = "", ""
			return c.Render(status, "signup.html", authPage{Heading: "Sign up", Action: "/signup", Form: req, Error: apperrors.Message(err)})
		}
		return c.JSON(status, dto.AuthResponse{Error: apperrors.Message(err)})
	}

	return h.startSession(c, user, token)
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.AuthResponse{Error: apperrors.ErrInvalidJSON.Message})
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		status := errorStatus(err)
		if isForm(c) && status < http.StatusInternalServerError {
			req.Password = ""
			return c.Render(status, "login.html", authPage{Heading: "Log in", Action: "/login", Form: req, Error: apperrors.Message(err)})
		}
		return c.JSON(status, dto.AuthResponse{Error: apperrors.Message(err)})
	}

	return h.startSession(c, user, token)
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.SessionToken(c)); err != nil {
		return httpError(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})

	if isForm(c) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.JSON(http.StatusOK, dto.AuthResponse{OK: true})
}

// startSession sets the session cookie. Browser form posts are redirected to
// the dashboard, API clients get the user and token back.
func (h *Handler) startSession(c echo.Context, user *model.User, token string) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if isForm(c) {
		return c.Redirect(http.StatusSeeOther, "/tasks")
	}

	return c.JSON(http.StatusOK, dto.AuthResponse{
		OK: true,
		User: &dto.UserData{
			ID:        user.ID,
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		},
		Token: token,
	})
}

func isForm(c echo.Context) bool {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ctype, echo.MIMEApplicationForm) || strings.HasPrefix(ctype, echo.MIMEMultipartForm)
}
