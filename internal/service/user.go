package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/blanco81/app-task/internal/auth"
	"github.com/blanco81/app-task/internal/models"
	"github.com/blanco81/app-task/internal/repository"
)

// UserPatch carries optional fields for partial updates; nil means "leave
// unchanged". A new password is re-hashed before storage.
type UserPatch struct {
	NameComplete *string
	Email        *string
	Role         *string
	Password     *string
}

type UserPage struct {
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
	Users  []models.User `json:"users"`
}

type LogPage struct {
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
	Logs   []models.Log `json:"logs"`
}

// UserService is the admin-only surface over the user roster and audit trail.
type UserService interface {
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	Filter(ctx context.Context, search string, limit, offset int) (*UserPage, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*models.User, error)
	Deactivate(ctx context.Context, id string) error
	// Activate re-enables a soft-deleted user; an already-active (or
	// unknown) id reports ErrNotFound.
	Activate(ctx context.Context, id string) error
	Logs(ctx context.Context, limit, offset int) (*LogPage, error)
}

type userService struct {
	users  repository.UserRepository
	logs   repository.LogRepository
	logger *zap.Logger
}

func NewUserService(users repository.UserRepository, logs repository.LogRepository, logger *zap.Logger) UserService {
	return &userService{users: users, logs: logs, logger: logger}
}

func (s *userService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) Filter(ctx context.Context, search string, limit, offset int) (*UserPage, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	matched := filterUsers(users, search)
	return &UserPage{
		Total:  len(matched),
		Limit:  limit,
		Offset: offset,
		Users:  paginate(matched, limit, offset),
	}, nil
}

func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != user.Email {
		existing, err := s.users.GetByEmail(ctx, *patch.Email)
		if err == nil && existing.ID != user.ID {
			return nil, ErrEmailTaken
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		user.Email = *patch.Email
	}
	if patch.NameComplete != nil {
		user.NameComplete = *patch.NameComplete
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.Password != nil {
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	action := fmt.Sprintf("User '%s' was updated.", user.NameComplete)
	if err := s.users.Update(ctx, user, action); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) Deactivate(ctx context.Context, id string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	user.Deleted = true
	action := fmt.Sprintf("User '%s' was deactivated.", user.NameComplete)
	if err := s.users.Update(ctx, user, action); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	s.logger.Info("User deactivated", zap.String("user_id", user.ID))
	return nil
}

func (s *userService) Activate(ctx context.Context, id string) error {
	user, err := s.users.GetDeactivatedByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	user.Deleted = false
	action := fmt.Sprintf("User '%s' was activated.", user.NameComplete)
	if err := s.users.Update(ctx, user, action); err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}

	s.logger.Info("User activated", zap.String("user_id", user.ID))
	return nil
}

func (s *userService) Logs(ctx context.Context, limit, offset int) (*LogPage, error) {
	total, err := s.logs.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count logs: %w", err)
	}
	logs, err := s.logs.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	return &LogPage{Total: total, Limit: limit, Offset: offset, Logs: logs}, nil
}
