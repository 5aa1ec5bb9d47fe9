package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"taskhero.com/taskhero/internal/constants"
	dto "taskhero.com/taskhero/internal/data_models"
	apperrors "taskhero.com/taskhero/internal/errors"
	"taskhero.com/taskhero/internal/grouping"
	middleware "taskhero.com/taskhero/internal/http/middlewares"
	"taskhero.com/taskhero/internal/http/validators"
	model "taskhero.com/taskhero/internal/models"
	"taskhero.com/taskhero/internal/services"
)

type dashboardPage struct {
	User     *model.User
	View     grouping.GroupedView
	Count    int
	Today    time.Time
	Status   string
	Overdue  bool
	Statuses []constants.TaskStatus
}

type taskFormPage struct {
	User       *model.User
	Heading    string
	Action     string
	Task       dto.TaskRequestData
	Statuses   []constants.TaskStatus
	Priorities []constants.Priority
	Error      string
}

func (h *Handler) Dashboard(c echo.Context) error {
	user := middleware.CurrentUser(c)
	filter := services.DashboardFilter{
		Status:  c.QueryParam("status"),
		Overdue: c.QueryParam("filter") == "overdue",
	}

	view, err := h.taskService.Dashboard(c.Request().Context(), user.ID, filter)
	if err != nil {
		return httpError(err)
	}

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, echo.Map{
			"count":  view.Len(),
			"groups": view,
		})
	}

	return c.Render(http.StatusOK, "dashboard.html", dashboardPage{
		User:     user,
		View:     view,
		Count:    view.Len(),
		Today:    h.taskService.Today(),
		Status:   filter.Status,
		Overdue:  filter.Overdue,
		Statuses: constants.TaskStatuses,
	})
}

func (h *Handler) NewTaskForm(c echo.Context) error {
	return h.renderTaskForm(c, http.StatusOK, "Add Task", "/tasks/add", dto.TaskRequestData{
		Status:   string(constants.StatusTodo),
		Priority: string(constants.PriorityMedium),
	}, "")
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.TaskRequestData
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}

	input, err := validators.ValidateTaskRequest(&req)
	if err == nil {
		_, err = h.taskService.CreateTask(c.Request().Context(), middleware.CurrentUser(c).ID, input)
	}
	if err != nil {
		if apperrors.StatusCode(err) == http.StatusBadRequest {
			return h.renderTaskForm(c, http.StatusBadRequest, "Add Task", "/tasks/add", req, apperrors.Message(err))
		}
		return httpError(err)
	}

	return c.Redirect(http.StatusSeeOther, "/tasks")
}

func (h *Handler) EditTaskForm(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), middleware.CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return h.renderTaskForm(c, http.StatusOK, "Edit Task", "/tasks/"+task.ID+"/edit", dto.TaskRequestData{
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDateValue(),
		Status:      string(task.Status),
		Priority:    string(task.Priority),
	}, "")
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id := c.Param("id")

	var req dto.TaskRequestData
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}

	input, err := validators.ValidateTaskRequest(&req)
	if err == nil {
		_, err = h.taskService.UpdateTask(c.Request().Context(), middleware.CurrentUser(c).ID, id, input)
	}
	if err != nil {
		if apperrors.StatusCode(err) == http.StatusBadRequest {
			return h.renderTaskForm(c, http.StatusBadRequest, "Edit Task", "/tasks/"+id+"/edit", req, apperrors.Message(err))
		}
		return httpError(err)
	}

	return c.Redirect(http.StatusSeeOther, "/tasks")
}

func (h *Handler) CompleteTask(c echo.Context) error {
	if err := h.taskService.CompleteTask(c.Request().Context(), middleware.CurrentUser(c).ID, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), middleware.CurrentUser(c).ID, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

func (h *Handler) TaskActivity(c echo.Context) error {
	activities, err := h.taskService.Activity(c.Request().Context(), middleware.CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":      len(activities),
		"activities": activities,
	})
}

func (h *Handler) renderTaskForm(c echo.Context, status int, heading, action string, task dto.TaskRequestData, errMsg string) error {
	return c.Render(status, "task_form.html", taskFormPage{
		User:       middleware.CurrentUser(c),
		Heading:    heading,
		Action:     action,
		Task:       task,
		Statuses:   constants.TaskStatuses,
		Priorities: constants.Priorities,
		Error:      errMsg,
	})
}
