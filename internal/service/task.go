package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blanco81/app-task/internal/models"
	"github.com/blanco81/app-task/internal/repository"
)

type TaskCreateInput struct {
	TaskName    string
	Description string
}

// TaskPatch carries optional fields for partial updates; nil means "leave
// unchanged".
type TaskPatch struct {
	TaskName    *string
	Description *string
	Status      *string
}

type TaskPage struct {
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
	Tasks  []models.Task `json:"tasks"`
}

type TaskService interface {
	ListByOwner(ctx context.Context, userID string, limit, offset int) ([]models.Task, int, error)
	// Filter runs the relevance-scored text search over the caller's own
	// non-deleted tasks.
	Filter(ctx context.Context, userID, search string, limit, offset int) (*TaskPage, error)
	Create(ctx context.Context, caller *models.User, input TaskCreateInput) (*models.Task, error)
	// Get applies the owner-or-admin policy; anything the caller may not see
	// is reported as ErrNotFound, never as a distinct "forbidden".
	Get(ctx context.Context, caller *models.User, id string) (*models.Task, error)
	Update(ctx context.Context, caller *models.User, id string, patch TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, caller *models.User, id string) error
}

type taskService struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func NewTaskService(tasks repository.TaskRepository, logger *zap.Logger) TaskService {
	return &taskService{tasks: tasks, logger: logger}
}

func (s *taskService) ListByOwner(ctx context.Context, userID string, limit, offset int) ([]models.Task, int, error) {
	total, err := s.tasks.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	tasks, err := s.tasks.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

func (s *taskService) Filter(ctx context.Context, userID, search string, limit, offset int) (*TaskPage, error) {
	tasks, err := s.tasks.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	matched := filterTasks(tasks, search)
	return &TaskPage{
		Total:  len(matched),
		Limit:  limit,
		Offset: offset,
		Tasks:  paginate(matched, limit, offset),
	}, nil
}

func (s *taskService) Create(ctx context.Context, caller *models.User, input TaskCreateInput) (*models.Task, error) {
	task := &models.Task{
		ID:          uuid.NewString(),
		TaskName:    input.TaskName,
		Description: input.Description,
		Status:      models.TaskStatusPending,
		UserID:      caller.ID,
	}

	action := fmt.Sprintf("Task '%s' was created.", task.TaskName)
	if err := s.tasks.Create(ctx, task, action); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task created", zap.String("task_id", task.ID), zap.String("user_id", caller.ID))
	return task, nil
}

// getOwned fetches the task and enforces the owner-or-admin policy.
func (s *taskService) getOwned(ctx context.Context, caller *models.User, id string) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task.UserID != caller.ID && !caller.IsAdmin() {
		return nil, ErrNotFound
	}
	return task, nil
}

func (s *taskService) Get(ctx context.Context, caller *models.User, id string) (*models.Task, error) {
	return s.getOwned(ctx, caller, id)
}

func (s *taskService) Update(ctx context.Context, caller *models.User, id string, patch TaskPatch) (*models.Task, error) {
	task, err := s.getOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if patch.TaskName != nil {
		task.TaskName = *patch.TaskName
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}

	action := fmt.Sprintf("Task '%s' was updated.", task.TaskName)
	if err := s.tasks.Update(ctx, task, action); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, caller *models.User, id string) error {
	task, err := s.getOwned(ctx, caller, id)
	if err != nil {
		return err
	}

	task.Deleted = true
	action := fmt.Sprintf("Task '%s' was deactivated.", task.TaskName)
	if err := s.tasks.Update(ctx, task, action); err != nil {
		return fmt.Errorf("failed to deactivate task: %w", err)
	}

	s.logger.Info("Task deactivated", zap.String("task_id", task.ID))
	return nil
}
