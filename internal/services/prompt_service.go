package services

import (
	"context"
	"errors"
	"strings"

	apperrors "taskhero.com/taskhero/internal/errors"
	model "taskhero.com/taskhero/internal/models"
	repository "taskhero.com/taskhero/internal/repositories"
)

type PromptService struct {
	repo *repository.PromptRepository
	pool *GenerationPool
}

func NewPromptService(repo *repository.PromptRepository, pool *GenerationPool) *PromptService {
	return &PromptService{
		repo: repo,
		pool: pool,
	}
}

func (s *PromptService) List(ctx context.Context, ownerID string) ([]model.SavedPrompt, error) {
	return s.repo.List(ctx, ownerID)
}

// Save creates the prompt when id is empty, otherwise updates it in place.
func (s *PromptService) Save(ctx context.Context, ownerID, id, title, prompt string) (*model.SavedPrompt, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.ErrTitleRequired
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, apperrors.ErrPromptRequired
	}

	return s.repo.Upsert(ctx, ownerID, strings.TrimSpace(id), title, prompt)
}

func (s *PromptService) Delete(ctx context.Context, ownerID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperrors.ErrPromptIDRequired
	}
	return s.repo.Delete(ctx, ownerID, id)
}

// Run sends prompt to the generation endpoint and returns its text.
func (s *PromptService) Run(ctx context.Context, prompt, model string) (string, error) {
	return s.generate(ctx, prompt, model, false)
}

// Suggest is Run over the streaming endpoint with the default model.
func (s *PromptService) Suggest(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, prompt, "", true)
}

func (s *PromptService) generate(ctx context.Context, prompt, model string, stream bool) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", apperrors.ErrPromptRequired
	}

	text, err := s.pool.Submit(ctx, prompt, strings.TrimSpace(model), stream)
	if err != nil {
		var appErr *apperrors.Exception
		if errors.As(err, &appErr) {
			return "", err
		}
		return "", apperrors.Gateway(err)
	}

	return text, nil
}
