package http

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "taskhero.com/taskhero/internal/errors"
	"taskhero.com/taskhero/internal/services"
)

type Handler struct {
	taskService   *services.TaskService
	promptService *services.PromptService
	authService   *services.AuthService
}

func NewHandler(
	taskService *services.TaskService,
	promptService *services.PromptService,
	authService *services.AuthService,
) *Handler {
	return &Handler{
		taskService:   taskService,
		promptService: promptService,
		authService:   authService,
	}
}

// httpError converts a service error for the HTML and form endpoints.
func httpError(err error) error {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[http] request failed: %v", err)
	}
	return echo.NewHTTPError(status, apperrors.Message(err))
}

// errorStatus logs server-side failures and returns the status for err.
func errorStatus(err error) int {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[http] request failed: %v", err)
	}
	return status
}

func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
