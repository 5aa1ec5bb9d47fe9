package validators

import (
	"strings"

	dto "taskhero.com/taskhero/internal/data_models"
	apperrors "taskhero.com/taskhero/internal/errors"
)

func ValidateSavePromptRequest(r *dto.SavePromptRequest) error {
	if strings.TrimSpace(r.Title) == "" {
		return apperrors.ErrTitleRequired
	}
	if strings.TrimSpace(r.Prompt) == "" {
		return apperrors.ErrPromptRequired
	}
	return nil
}

func ValidateDeletePromptRequest(r *dto.DeletePromptRequest) error {
	if strings.TrimSpace(r.ID) == "" {
		return apperrors.ErrPromptIDRequired
	}
	return nil
}

func ValidateRunPromptRequest(r *dto.RunPromptRequest) error {
	if strings.TrimSpace(r.Prompt) == "" {
		return apperrors.ErrPromptRequired
	}
	return nil
}
