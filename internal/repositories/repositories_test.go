package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhero.com/taskhero/internal/constants"
	apperrors "taskhero.com/taskhero/internal/errors"
	model "taskhero.com/taskhero/internal/models"
	repository "taskhero.com/taskhero/internal/repositories"
	"taskhero.com/taskhero/internal/testutil"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestTaskRepository_OwnerScoping(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewTaskRepository(db)
	ctx := context.Background()

	task := &model.Task{OwnerID: "alice", Title: "Water plants", Status: constants.StatusTodo, Priority: constants.PriorityLow}
	require.NoError(t, repo.Create(ctx, task))
	require.NotEmpty(t, task.ID)

	_, err := repo.FindForOwner(ctx, "bob", task.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	intruder := *task
	intruder.OwnerID = "bob"
	intruder.Title = "hijacked"
	assert.ErrorIs(t, repo.Update(ctx, &intruder), apperrors.ErrTaskNotFound)
	assert.ErrorIs(t, repo.MarkCompleted(ctx, "bob", task.ID), apperrors.ErrTaskNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "bob", task.ID), apperrors.ErrTaskNotFound)

	stored, err := repo.FindForOwner(ctx, "alice", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Water plants", stored.Title)
	assert.Equal(t, constants.StatusTodo, stored.Status)
}

func TestTaskRepository_ListFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewTaskRepository(db)
	activities := repository.NewActivityRepository(db)
	ctx := context.Background()

	create := func(title string, status constants.TaskStatus, due *time.Time, createdAt time.Time) *model.Task {
		task := &model.Task{OwnerID: "alice", Title: title, Status: status, Priority: constants.PriorityMedium, DueDate: due, CreatedAt: createdAt}
		require.NoError(t, repo.Create(ctx, task))
		return task
	}

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	late := create("late", constants.StatusTodo, date(2024, 3, 9), base)
	create("late but done", constants.StatusCompleted, date(2024, 3, 8), base.Add(time.Minute))
	create("due today", constants.StatusInProgress, date(2024, 3, 10), base.Add(2*time.Minute))
	create("no due date", constants.StatusTodo, nil, base.Add(3*time.Minute))
	require.NoError(t, repo.Create(ctx, &model.Task{OwnerID: "bob", Title: "other owner", Status: constants.StatusTodo, Priority: constants.PriorityHigh}))

	all, err := repo.ListForOwner(ctx, "alice", repository.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "no due date", all[0].Title)
	assert.Equal(t, "late", all[3].Title)

	todo, err := repo.ListForOwner(ctx, "alice", repository.TaskFilter{Status: constants.StatusTodo})
	require.NoError(t, err)
	assert.Len(t, todo, 2)

	today := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	overdue, err := repo.ListForOwner(ctx, "alice", repository.TaskFilter{OverdueOn: &today})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, late.ID, overdue[0].ID)

	require.NoError(t, activities.Record(ctx, late.ID, "alice", constants.ActivityCreated))
	require.NoError(t, repo.Delete(ctx, "alice", late.ID))
	feed, err := activities.ListForTask(ctx, late.ID)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestPromptRepository_Upsert(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewPromptRepository(db)
	ctx := context.Background()

	created, err := repo.Upsert(ctx, "alice", "", "Weekly plan", "Plan my week")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := repo.Upsert(ctx, "alice", created.ID, "Weekly plan v2", "Plan my week in detail")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Weekly plan v2", updated.Title)

	_, err = repo.Upsert(ctx, "bob", created.ID, "stolen", "stolen")
	assert.ErrorIs(t, err, apperrors.ErrPromptNotFound)

	_, err = repo.Upsert(ctx, "alice", "does-not-exist", "x", "y")
	assert.ErrorIs(t, err, apperrors.ErrPromptNotFound)

	prompts, err := repo.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.Equal(t, "Plan my week in detail", prompts[0].Prompt)

	bobs, err := repo.List(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bobs)
}

func TestPromptRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewPromptRepository(db)
	ctx := context.Background()

	saved, err := repo.Upsert(ctx, "alice", "", "t", "p")
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, "bob", saved.ID), apperrors.ErrPromptNotFound)
	require.NoError(t, repo.Delete(ctx, "alice", saved.ID))
	assert.ErrorIs(t, repo.Delete(ctx, "alice", saved.ID), apperrors.ErrPromptNotFound)
}

func TestUserRepository_UniqueUsername(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Username: "alice", Email: "a@example.com", PasswordHash: "x"}))
	err := repo.Create(ctx, &model.User{Username: "alice", Email: "b@example.com", PasswordHash: "y"})
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
