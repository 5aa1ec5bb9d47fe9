package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"taskhero.com/taskhero/internal/constants"
	apperrors "taskhero.com/taskhero/internal/errors"
	"taskhero.com/taskhero/internal/grouping"
	model "taskhero.com/taskhero/internal/models"
	repository "taskhero.com/taskhero/internal/repositories"
)

const maxTitleLength = 200

type TaskService struct {
	repo       *repository.TaskRepository
	activities *repository.ActivityRepository
	engine     *grouping.Engine
	now        func() time.Time
}

// TaskInput carries the editable task fields. Empty Status and Priority
// fall back to TODO and MEDIUM.
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Status      string
	Priority    string
}

type DashboardFilter struct {
	Status  string
	Overdue bool
}

func NewTaskService(
	repo *repository.TaskRepository,
	activities *repository.ActivityRepository,
	engine *grouping.Engine,
) *TaskService {
	return &TaskService{
		repo:       repo,
		activities: activities,
		engine:     engine,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for overdue checks.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

func (s *TaskService) Today() time.Time {
	return s.now()
}

// Dashboard fetches the owner's tasks and groups them for display.
func (s *TaskService) Dashboard(ctx context.Context, ownerID string, filter DashboardFilter) (grouping.GroupedView, error) {
	tasks, err := s.ListTasks(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	return s.engine.Group(tasks), nil
}

func (s *TaskService) ListTasks(ctx context.Context, ownerID string, filter DashboardFilter) ([]model.Task, error) {
	var query repository.TaskFilter

	if status := strings.ToUpper(strings.TrimSpace(filter.Status)); status != "" {
		query.Status = constants.TaskStatus(status)
		if !query.Status.Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("unknown status %q", filter.Status))
		}
	}
	if filter.Overdue {
		today := s.now()
		query.OverdueOn = &today
	}

	return s.repo.ListForOwner(ctx, ownerID, query)
}

func (s *TaskService) GetTask(ctx context.Context, ownerID, id string) (*model.Task, error) {
	return s.repo.FindForOwner(ctx, ownerID, id)
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID string, input TaskInput) (*model.Task, error) {
	input, err := normalizeTaskInput(input)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      constants.TaskStatus(input.Status),
		Priority:    constants.Priority(input.Priority),
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.record(ctx, task.ID, ownerID, constants.ActivityCreated)
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, ownerID, id string, input TaskInput) (*model.Task, error) {
	input, err := normalizeTaskInput(input)
	if err != nil {
		return nil, err
	}

	task, err := s.repo.FindForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.DueDate = input.DueDate
	task.Status = constants.TaskStatus(input.Status)
	task.Priority = constants.Priority(input.Priority)

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.record(ctx, task.ID, ownerID, constants.ActivityUpdated)
	return task, nil
}

func (s *TaskService) CompleteTask(ctx context.Context, ownerID, id string) error {
	if err := s.repo.MarkCompleted(ctx, ownerID, id); err != nil {
		return err
	}

	s.record(ctx, id, ownerID, constants.ActivityCompleted)
	return nil
}

func (s *TaskService) DeleteTask(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, ownerID, id)
}

func (s *TaskService) Activity(ctx context.Context, ownerID, id string) ([]model.TaskActivity, error) {
	if _, err := s.repo.FindForOwner(ctx, ownerID, id); err != nil {
		return nil, err
	}
	return s.activities.ListForTask(ctx, id)
}

// record writes to the activity feed. A failed write is logged and does not
// undo the mutation.
func (s *TaskService) record(ctx context.Context, taskID, userID, action string) {
	if err := s.activities.Record(ctx, taskID, userID, action); err != nil {
		log.Printf("[tasks] failed to record %q for task %s: %v", action, taskID, err)
	}
}

func normalizeTaskInput(in TaskInput) (TaskInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Status = strings.ToUpper(strings.TrimSpace(in.Status))
	in.Priority = strings.ToUpper(strings.TrimSpace(in.Priority))

	if in.Title == "" {
		return in, apperrors.ErrTitleRequired
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLength {
		return in, apperrors.Validation(fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}

	if in.Status == "" {
		in.Status = string(constants.StatusTodo)
	}
	if !constants.TaskStatus(in.Status).Valid() {
		return in, apperrors.Validation(fmt.Sprintf("unknown status %q", in.Status))
	}

	if in.Priority == "" {
		in.Priority = string(constants.PriorityMedium)
	}
	if !constants.Priority(in.Priority).Valid() {
		return in, apperrors.Validation(fmt.Sprintf("unknown priority %q", in.Priority))
	}

	if in.DueDate != nil {
		y, m, d := in.DueDate.Date()
		due := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		in.DueDate = &due
	}

	return in, nil
}
