package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	middleware "taskhero.com/taskhero/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute, middleware.ClientIP))

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/tasks")
	})

	e.GET("/signup", h.SignUpPage)
	e.POST("/signup", h.SignUp)
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout)

	auth := middleware.RequireSession(h.authService)

	tasks := e.Group("/tasks", auth)
	tasks.GET("", h.Dashboard)
	tasks.GET("/add", h.NewTaskForm)
	tasks.POST("/add", h.CreateTask)
	tasks.GET("/:id/edit", h.EditTaskForm)
	tasks.POST("/:id/edit", h.UpdateTask)
	tasks.POST("/:id/delete", h.DeleteTask)
	tasks.POST("/:id/complete", h.CompleteTask)
	tasks.GET("/:id/activity", h.TaskActivity)

	prompts := e.Group("/prompts", auth)
	prompts.GET("", h.ListPrompts)
	prompts.POST("/save", h.SavePrompt)
	prompts.POST("/delete", h.DeletePrompt)
	prompts.POST("/run", h.RunPrompt)

	e.POST("/generate-ai", h.GenerateAI, auth)
}
