package repository

import (
	"context"

	"gorm.io/gorm"

	model "taskhero.com/taskhero/internal/models"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Record(ctx context.Context, taskID, userID, action string) error {
	return r.db.WithContext(ctx).Create(&model.TaskActivity{
		TaskID: taskID,
		UserID: userID,
		Action: action,
	}).Error
}

// ListForTask returns the feed oldest first.
func (r *ActivityRepository) ListForTask(ctx context.Context, taskID string) ([]model.TaskActivity, error) {
	var activities []model.TaskActivity
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at asc, id asc").
		Find(&activities).Error
	return activities, err
}
