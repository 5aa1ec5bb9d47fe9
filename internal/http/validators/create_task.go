package validators

import (
	"strings"
	"time"

	dto "taskhero.com/taskhero/internal/data_models"
	apperrors "taskhero.com/taskhero/internal/errors"
	model "taskhero.com/taskhero/internal/models"
	"taskhero.com/taskhero/internal/services"
)

// ValidateTaskRequest checks the form and converts it to service input.
// Status and priority are checked by the service.
func ValidateTaskRequest(r *dto.TaskRequestData) (services.TaskInput, error) {
	input := services.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
	}

	if strings.TrimSpace(r.Title) == "" {
		return input, apperrors.ErrTitleRequired
	}

	if due := strings.TrimSpace(r.DueDate); due != "" {
		parsed, err := time.Parse(model.DateLayout, due)
		if err != nil {
			return input, apperrors.Validation("due_date must be formatted as YYYY-MM-DD")
		}
		input.DueDate = &parsed
	}

	return input, nil
}
