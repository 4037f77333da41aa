package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blanco81/app-task/internal/service"
)

type UserHandler interface {
	List(c *gin.Context)
	Filter(c *gin.Context)
	Logs(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Deactivate(c *gin.Context)
	Activate(c *gin.Context)
}

type userHandler struct {
	userService service.UserService
	limits      Limits
	log         *zap.Logger
}

func NewUserHandler(userService service.UserService, limits Limits, log *zap.Logger) UserHandler {
	return &userHandler{userService: userService, limits: limits, log: log}
}

type UserUpdateRequest struct {
	NameComplete *string `json:"name_complete"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Role         *string `json:"role" binding:"omitempty,oneof=Admin Public"`
	Password     *string `json:"password"`
}

func (h *userHandler) List(c *gin.Context) {
	limit, offset := h.limits.pagination(c)

	users, err := h.userService.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *userHandler) Filter(c *gin.Context) {
	limit, offset := h.limits.pagination(c)

	page, err := h.userService.Filter(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		h.log.Error("Failed to filter users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to filter users"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *userHandler) Logs(c *gin.Context) {
	limit, offset := h.limits.pagination(c)

	page, err := h.userService.Logs(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error("Failed to list logs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list logs"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *userHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *userHandler) Update(c *gin.Context) {
	var req UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("user_id"), service.UserPatch{
		NameComplete: req.NameComplete,
		Email:        req.Email,
		Role:         req.Role,
		Password:     req.Password,
	})
	if err != nil {
		h.respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *userHandler) Deactivate(c *gin.Context) {
	if err := h.userService.Deactivate(c.Request.Context(), c.Param("user_id")); err != nil {
		h.respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deactivated": "ok"})
}

func (h *userHandler) Activate(c *gin.Context) {
	if err := h.userService.Activate(c.Request.Context(), c.Param("user_id")); err != nil {
		h.respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activated": "ok"})
}

func (h *userHandler) respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "This email is already registered"})
	default:
		h.log.Error("User operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
