package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "taskhero.com/taskhero/internal/data_models"
	apperrors "taskhero.com/taskhero/internal/errors"
	middleware "taskhero.com/taskhero/internal/http/middlewares"
	"taskhero.com/taskhero/internal/http/validators"
	model "taskhero.com/taskhero/internal/models"
)

func (h *Handler) ListPrompts(c echo.Context) error {
	prompts, err := h.promptService.List(c.Request().Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return c.JSON(errorStatus(err), dto.PromptResponse{Error: apperrors.Message(err)})
	}

	data := make([]dto.PromptData, 0, len(prompts))
	for i := range prompts {
		data = append(data, toPromptData(&prompts[i]))
	}

	return c.JSON(http.StatusOK, dto.PromptListResponse{OK: true, Prompts: data})
}

func (h *Handler) SavePrompt(c echo.Context) error {
	var req dto.SavePromptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.PromptResponse{Error: apperrors.ErrInvalidJSON.Message})
	}

	if err := validators.ValidateSavePromptRequest(&req); err != nil {
		return c.JSON(errorStatus(err), dto.PromptResponse{Error: apperrors.Message(err)})
	}

	saved, err := h.promptService.Save(c.Request().Context(), middleware.CurrentUser(c).ID, req.ID, req.Title, req.Prompt)
	if err != nil {
		return c.JSON(errorStatus(err), dto.PromptResponse{Error: apperrors.Message(err)})
	}

	data := toPromptData(saved)
	return c.JSON(http.StatusOK, dto.PromptResponse{OK: true, Prompt: &data})
}

func (h *Handler) DeletePrompt(c echo.Context) error {
	var req dto.DeletePromptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.PromptResponse{Error: apperrors.ErrInvalidJSON.Message})
	}

	if err := validators.ValidateDeletePromptRequest(&req); err != nil {
		return c.JSON(errorStatus(err), dto.PromptResponse{Error: apperrors.Message(err)})
	}

	if err := h.promptService.Delete(c.Request().Context(), middleware.CurrentUser(c).ID, req.ID); err != nil {
		return c.JSON(errorStatus(err), dto.PromptResponse{Error: apperrors.Message(err)})
	}

	return c.JSON(http.StatusOK, dto.PromptResponse{OK: true})
}

func (h *Handler) RunPrompt(c echo.Context) error {
	var req dto.RunPromptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.RunPromptResponse{Error: apperrors.ErrInvalidJSON.Message})
	}

	if err := validators.ValidateRunPromptRequest(&req); err != nil {
		return c.JSON(errorStatus(err), dto.RunPromptResponse{Error: apperrors.Message(err)})
	}

	text, err := h.promptService.Run(c.Request().Context(), req.Prompt, req.Model)
	if err != nil {
		return c.JSON(errorStatus(err), dto.RunPromptResponse{Error: apperrors.Message(err)})
	}

	return c.JSON(http.StatusOK, dto.RunPromptResponse{OK: true, Response: text})
}

// GenerateAI backs the suggestion button on the task form.
func (h *Handler) GenerateAI(c echo.Context) error {
	text, err := h.promptService.Suggest(c.Request().Context(), c.FormValue("prompt"))
	if err != nil {
		return c.JSON(errorStatus(err), dto.GenerateResponse{Error: apperrors.Message(err)})
	}

	return c.JSON(http.StatusOK, dto.GenerateResponse{Response: text})
}

func toPromptData(p *model.SavedPrompt) dto.PromptData {
	return dto.PromptData{
		ID:        p.ID,
		Title:     p.Title,
		Prompt:    p.Prompt,
		UpdatedAt: p.UpdatedAt,
	}
}
