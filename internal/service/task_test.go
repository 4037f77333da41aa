package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blanco81/app-task/internal/models"
)

var (
	owner    = &models.User{ID: "u-owner", Role: models.RolePublic}
	stranger = &models.User{ID: "u-stranger", Role: models.RolePublic}
	admin    = &models.User{ID: "u-admin", Role: models.RoleAdmin}
)

func newTaskFixture(t *testing.T) (TaskService, *fakeTaskRepo) {
	t.Helper()
	repo := &fakeTaskRepo{}
	return NewTaskService(repo, zap.NewNop()), repo
}

func createdTask(t *testing.T, svc TaskService, caller *models.User, name, description string) *models.Task {
	t.Helper()
	task, err := svc.Create(context.Background(), caller, TaskCreateInput{
		TaskName:    name,
		Description: description,
	})
	require.NoError(t, err)
	return task
}

func TestTaskService_Create(t *testing.T) {
	t.Parallel()

	svc, repo := newTaskFixture(t)
	task := createdTask(t, svc, owner, "Buy milk", "two liters")

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, models.TaskStatusPending, task.Status)
	assert.Equal(t, owner.ID, task.UserID)
	require.Len(t, repo.actions, 1)
	assert.Equal(t, "Task 'Buy milk' was created.", repo.actions[0])
}

func TestTaskService_Get_OwnershipPolicy(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskFixture(t)
	task := createdTask(t, svc, owner, "Buy milk", "")

	t.Run("owner sees own task", func(t *testing.T) {
		got, err := svc.Get(context.Background(), owner, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("foreign non-admin gets not found, not forbidden", func(t *testing.T) {
		_, err := svc.Get(context.Background(), stranger, task.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("admin sees any task", func(t *testing.T) {
		got, err := svc.Get(context.Background(), admin, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("missing task", func(t *testing.T) {
		_, err := svc.Get(context.Background(), owner, "no-such-id")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTaskService_Update_Patch(t *testing.T) {
	t.Parallel()

	svc, repo := newTaskFixture(t)
	task := createdTask(t, svc, owner, "Buy milk", "two liters")

	status := "done"
	updated, err := svc.Update(context.Background(), owner, task.ID, TaskPatch{Status: &status})
	require.NoError(t, err)

	// Only the provided field changes.
	assert.Equal(t, "done", updated.Status)
	assert.Equal(t, "Buy milk", updated.TaskName)
	assert.Equal(t, "two liters", updated.Description)
	assert.Contains(t, repo.actions, "Task 'Buy milk' was updated.")

	_, err = svc.Update(context.Background(), stranger, task.ID, TaskPatch{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskService_Delete_SoftDelete(t *testing.T) {
	t.Parallel()

	svc, repo := newTaskFixture(t)
	task := createdTask(t, svc, owner, "Buy milk", "")

	require.NoError(t, svc.Delete(context.Background(), owner, task.ID))
	assert.Contains(t, repo.actions, "Task 'Buy milk' was deactivated.")

	// Row persists but the task is gone from reads and listings.
	require.Len(t, repo.tasks, 1)
	assert.True(t, repo.tasks[0].Deleted)

	_, err := svc.Get(context.Background(), owner, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	tasks, total, err := svc.ListByOwner(context.Background(), owner.ID, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, tasks)

	// Deleting again reports not found.
	assert.ErrorIs(t, svc.Delete(context.Background(), owner, task.ID), ErrNotFound)
}

func TestTaskService_Delete_ForeignTask(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskFixture(t)
	task := createdTask(t, svc, owner, "Buy milk", "")

	assert.ErrorIs(t, svc.Delete(context.Background(), stranger, task.ID), ErrNotFound)

	// Admin may delete anyone's task.
	assert.NoError(t, svc.Delete(context.Background(), admin, task.ID))
}

func TestTaskService_ListByOwner_ScopedToCaller(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskFixture(t)
	createdTask(t, svc, owner, "Mine", "")
	createdTask(t, svc, stranger, "Theirs", "")

	tasks, total, err := svc.ListByOwner(context.Background(), owner.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Mine", tasks[0].TaskName)
}

func TestTaskService_Filter(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskFixture(t)
	createdTask(t, svc, owner, "groceries", "buy milk and eggs")
	createdTask(t, svc, owner, "call plumber", "kitchen sink")
	createdTask(t, svc, owner, "grocery list review", "")

	page, err := svc.Filter(context.Background(), owner.ID, "grocer", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Tasks, 2)
	// Both are prefix matches on the name; ties break alphabetically.
	assert.Equal(t, "groceries", page.Tasks[0].TaskName)
	assert.Equal(t, "grocery list review", page.Tasks[1].TaskName)

	page, err = svc.Filter(context.Background(), owner.ID, "sink", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "call plumber", page.Tasks[0].TaskName)

	// Pagination applies after scoring.
	page, err = svc.Filter(context.Background(), owner.ID, "grocer", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Tasks, 1)
	assert.Equal(t, "grocery list review", page.Tasks[0].TaskName)

	// Empty search returns everything.
	page, err = svc.Filter(context.Background(), owner.ID, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
}
