package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blanco81/app-task/internal/middleware"
	"github.com/blanco81/app-task/internal/service"
)

type TaskHandler interface {
	List(c *gin.Context)
	Filter(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type taskHandler struct {
	taskService service.TaskService
	limits      Limits
	log         *zap.Logger
}

func NewTaskHandler(taskService service.TaskService, limits Limits, log *zap.Logger) TaskHandler {
	return &taskHandler{taskService: taskService, limits: limits, log: log}
}

type TaskCreateRequest struct {
	TaskName    string `json:"task_name" binding:"required"`
	Description string `json:"description"`
}

type TaskUpdateRequest struct {
	TaskName    *string `json:"task_name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (h *taskHandler) List(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	limit, offset := h.limits.pagination(c)

	tasks, _, err := h.taskService.ListByOwner(c.Request.Context(), caller.ID, limit, offset)
	if err != nil {
		h.log.Error("Failed to list tasks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *taskHandler) Filter(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	limit, offset := h.limits.pagination(c)

	page, err := h.taskService.Filter(c.Request.Context(), caller.ID, c.Query("search"), limit, offset)
	if err != nil {
		h.log.Error("Failed to filter tasks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to filter tasks"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *taskHandler) Create(c *gin.Context) {
	var req TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := middleware.CurrentUser(c)
	task, err := h.taskService.Create(c.Request.Context(), caller, service.TaskCreateInput{
		TaskName:    req.TaskName,
		Description: req.Description,
	})
	if err != nil {
		h.log.Error("Failed to create task", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *taskHandler) Get(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	task, err := h.taskService.Get(c.Request.Context(), caller, c.Param("task_id"))
	if err != nil {
		h.respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *taskHandler) Update(c *gin.Context) {
	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := middleware.CurrentUser(c)
	task, err := h.taskService.Update(c.Request.Context(), caller, c.Param("task_id"), service.TaskPatch{
		TaskName:    req.TaskName,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		h.respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *taskHandler) Delete(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	if err := h.taskService.Delete(c.Request.Context(), caller, c.Param("task_id")); err != nil {
		h.respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": "ok"})
}

func (h *taskHandler) respondTaskError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	h.log.Error("Task operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
