package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "taskhero.com/taskhero/internal/errors"
	model "taskhero.com/taskhero/internal/models"
)

type PromptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

// List returns the owner's prompts, most recently edited first.
func (r *PromptRepository) List(ctx context.Context, ownerID string) ([]model.SavedPrompt, error) {
	var prompts []model.SavedPrompt
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at desc").
		Find(&prompts).Error
	return prompts, err
}

// Upsert creates a prompt when id is empty and otherwise updates the
// owner's prompt with that id. An id the owner does not hold is reported as
// not found and nothing is written.
func (r *PromptRepository) Upsert(ctx context.Context, ownerID, id, title, prompt string) (*model.SavedPrompt, error) {
	if id == "" {
		saved := &model.SavedPrompt{
			ID:      uuid.NewString(),
			OwnerID: ownerID,
			Title:   title,
			Prompt:  prompt,
		}
		if err := r.db.WithContext(ctx).Create(saved).Error; err != nil {
			return nil, err
		}
		return saved, nil
	}

	var saved model.SavedPrompt
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&saved, "id = ? AND owner_id = ?", id, ownerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPromptNotFound
		}
		if err != nil {
			return err
		}

		saved.Title = title
		saved.Prompt = prompt
		return tx.Save(&saved).Error
	})
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

func (r *PromptRepository) Delete(ctx context.Context, ownerID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.SavedPrompt{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrPromptNotFound
	}
	return nil
}
