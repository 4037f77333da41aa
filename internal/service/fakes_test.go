package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/blanco81/app-task/internal/models"
)

// In-memory repository fakes. Ordered slices stand in for the created_at DESC
// ordering the real queries produce: tests insert newest-first.

type fakeUserRepo struct {
	users   []*models.User
	actions []string
	err     error
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User, action string) error {
	if r.err != nil {
		return r.err
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	copied := *user
	r.users = append(r.users, &copied)
	r.actions = append(r.actions, action)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User, action string) error {
	if r.err != nil {
		return r.err
	}
	for i, u := range r.users {
		if u.ID == user.ID {
			user.UpdatedAt = time.Now()
			copied := *user
			r.users[i] = &copied
			r.actions = append(r.actions, action)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id && !u.Deleted {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) GetDeactivatedByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id && u.Deleted {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]models.User, error) {
	active := r.activeUsers()
	return paginate(active, limit, offset), nil
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]models.User, error) {
	return r.activeUsers(), nil
}

func (r *fakeUserRepo) activeUsers() []models.User {
	out := []models.User{}
	for _, u := range r.users {
		if !u.Deleted {
			out = append(out, *u)
		}
	}
	return out
}

type fakeTaskRepo struct {
	tasks   []*models.Task
	actions []string
	err     error
}

func (r *fakeTaskRepo) Create(_ context.Context, task *models.Task, action string) error {
	if r.err != nil {
		return r.err
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	copied := *task
	r.tasks = append(r.tasks, &copied)
	r.actions = append(r.actions, action)
	return nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *models.Task, action string) error {
	if r.err != nil {
		return r.err
	}
	for i, t := range r.tasks {
		if t.ID == task.ID {
			task.UpdatedAt = time.Now()
			copied := *task
			r.tasks[i] = &copied
			r.actions = append(r.actions, action)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*models.Task, error) {
	for _, t := range r.tasks {
		if t.ID == id && !t.Deleted {
			copied := *t
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeTaskRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]models.Task, error) {
	return paginate(r.activeTasks(userID), limit, offset), nil
}

func (r *fakeTaskRepo) CountByUser(_ context.Context, userID string) (int, error) {
	return len(r.activeTasks(userID)), nil
}

func (r *fakeTaskRepo) ListAllByUser(_ context.Context, userID string) ([]models.Task, error) {
	return r.activeTasks(userID), nil
}

func (r *fakeTaskRepo) activeTasks(userID string) []models.Task {
	out := []models.Task{}
	for _, t := range r.tasks {
		if t.UserID == userID && !t.Deleted {
			out = append(out, *t)
		}
	}
	return out
}

type fakeLogRepo struct {
	logs []models.Log
}

func (r *fakeLogRepo) List(_ context.Context, limit, offset int) ([]models.Log, error) {
	return paginate(r.logs, limit, offset), nil
}

func (r *fakeLogRepo) Count(_ context.Context) (int, error) {
	return len(r.logs), nil
}
