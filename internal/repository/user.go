package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/blanco81/app-task/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User, action string) error
	// Update persists all mutable fields including the soft-delete flag and
	// appends the audit record in the same transaction.
	Update(ctx context.Context, user *models.User, action string) error
	// GetByEmail returns the row regardless of the soft-delete flag; callers
	// decide between the 401 and 403 paths from user.Deleted.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetDeactivatedByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
}

type userRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewUserRepository(db *sqlx.DB, log *zap.Logger) UserRepository {
	return &userRepository{db: db, log: log}
}

const userColumns = `id, name_complete, email, password_hash, role, deleted, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *models.User, action string) error {
	return inTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `INSERT INTO users (id, name_complete, email, password_hash, role)
		          VALUES ($1, $2, $3, $4, $5)
		          RETURNING created_at, updated_at`
		err := tx.QueryRowxContext(ctx, query,
			user.ID, user.NameComplete, user.Email, user.PasswordHash, user.Role,
		).Scan(&user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return err
		}
		return insertLog(ctx, tx, action, user.ID)
	})
}

func (r *userRepository) Update(ctx context.Context, user *models.User, action string) error {
	return inTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `UPDATE users
		          SET name_complete = $2, email = $3, password_hash = $4, role = $5,
		              deleted = $6, updated_at = NOW()
		          WHERE id = $1
		          RETURNING updated_at`
		err := tx.QueryRowxContext(ctx, query,
			user.ID, user.NameComplete, user.Email, user.PasswordHash, user.Role, user.Deleted,
		).Scan(&user.UpdatedAt)
		if err != nil {
			return err
		}
		return insertLog(ctx, tx, action, user.ID)
	})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted = FALSE`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetDeactivatedByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted = TRUE`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	users := []models.User{}
	query := `SELECT ` + userColumns + ` FROM users
	          WHERE deleted = FALSE
	          ORDER BY created_at DESC
	          LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &users, query, limit, offset); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListAll(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	query := `SELECT ` + userColumns + ` FROM users
	          WHERE deleted = FALSE
	          ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, err
	}
	return users, nil
}
