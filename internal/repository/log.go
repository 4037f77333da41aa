package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/blanco81/app-task/internal/models"
)

type LogRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.Log, error)
	Count(ctx context.Context) (int, error)
}

type logRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewLogRepository(db *sqlx.DB, log *zap.Logger) LogRepository {
	return &logRepository{db: db, log: log}
}

func (r *logRepository) List(ctx context.Context, limit, offset int) ([]models.Log, error) {
	logs := []models.Log{}
	query := `SELECT id, action, COALESCE(user_id, '') AS user_id, created_at FROM logs
	          ORDER BY created_at DESC
	          LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &logs, query, limit, offset); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *logRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM logs`); err != nil {
		return 0, err
	}
	return count, nil
}
