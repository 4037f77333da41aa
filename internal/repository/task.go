package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/blanco81/app-task/internal/models"
)

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task, action string) error
	Update(ctx context.Context, task *models.Task, action string) error
	// GetByID excludes soft-deleted rows, so a deleted task is
	// indistinguishable from a missing one.
	GetByID(ctx context.Context, id string) (*models.Task, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Task, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	ListAllByUser(ctx context.Context, userID string) ([]models.Task, error)
}

type taskRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewTaskRepository(db *sqlx.DB, log *zap.Logger) TaskRepository {
	return &taskRepository{db: db, log: log}
}

const taskColumns = `id, task_name, description, status, user_id, deleted, created_at, updated_at`

func (r *taskRepository) Create(ctx context.Context, task *models.Task, action string) error {
	return inTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `INSERT INTO tasks (id, task_name, description, status, user_id)
		          VALUES ($1, $2, $3, $4, $5)
		          RETURNING created_at, updated_at`
		err := tx.QueryRowxContext(ctx, query,
			task.ID, task.TaskName, task.Description, task.Status, task.UserID,
		).Scan(&task.CreatedAt, &task.UpdatedAt)
		if err != nil {
			return err
		}
		return insertLog(ctx, tx, action, task.UserID)
	})
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task, action string) error {
	return inTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `UPDATE tasks
		          SET task_name = $2, description = $3, status = $4, deleted = $5,
		              updated_at = NOW()
		          WHERE id = $1
		          RETURNING updated_at`
		err := tx.QueryRowxContext(ctx, query,
			task.ID, task.TaskName, task.Description, task.Status, task.Deleted,
		).Scan(&task.UpdatedAt)
		if err != nil {
			return err
		}
		return insertLog(ctx, tx, action, task.UserID)
	})
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND deleted = FALSE`
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Task, error) {
	tasks := []models.Task{}
	query := `SELECT ` + taskColumns + ` FROM tasks
	          WHERE user_id = $1 AND deleted = FALSE
	          ORDER BY created_at DESC
	          LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &tasks, query, userID, limit, offset); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND deleted = FALSE`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *taskRepository) ListAllByUser(ctx context.Context, userID string) ([]models.Task, error) {
	tasks := []models.Task{}
	query := `SELECT ` + taskColumns + ` FROM tasks
	          WHERE user_id = $1 AND deleted = FALSE
	          ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, err
	}
	return tasks, nil
}
