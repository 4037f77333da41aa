package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blanco81/app-task/internal/middleware"
	"github.com/blanco81/app-task/internal/service"
)

type AuthHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Me(c *gin.Context)
	Logout(c *gin.Context)
}

type authHandler struct {
	authService  service.AuthService
	cookieMaxAge int
	log          *zap.Logger
}

// NewAuthHandler builds the /auth endpoints. cookieMaxAge is the session
// cookie lifetime in seconds (token TTL minutes x 60).
func NewAuthHandler(authService service.AuthService, cookieMaxAge int, log *zap.Logger) AuthHandler {
	return &authHandler{authService: authService, cookieMaxAge: cookieMaxAge, log: log}
}

type RegisterRequest struct {
	NameComplete string `json:"name_complete" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	Role         string `json:"role" binding:"required,oneof=Admin Public"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *authHandler) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, token, h.cookieMaxAge, "/", "", false, true)
}

func (h *authHandler) clearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
}

func (h *authHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		NameComplete: req.NameComplete,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			// Clear any stale session cookie along with the rejection.
			h.clearAuthCookie(c)
			c.JSON(http.StatusBadRequest, gin.H{"error": "This email is already registered"})
			return
		}
		h.log.Error("Failed to register user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	h.setAuthCookie(c, token)
	c.JSON(http.StatusOK, user)
}

func (h *authHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case errors.Is(err, service.ErrUserDisabled):
			c.JSON(http.StatusForbidden, gin.H{"error": "User is not enabled"})
		default:
			h.log.Error("Failed to login user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		}
		return
	}

	h.setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
	})
}

func (h *authHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// Logout inspects the cookie token and the header token independently and
// revokes both when they differ. Always 200.
func (h *authHandler) Logout(c *gin.Context) {
	var cookieToken string
	if cookie, err := c.Cookie(middleware.AccessTokenCookie); err == nil {
		cookieToken = strings.TrimSpace(strings.TrimPrefix(cookie, "Bearer "))
	}

	var headerToken string
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		headerToken = strings.TrimPrefix(authHeader, "Bearer ")
	}

	h.authService.Logout(cookieToken, headerToken)
	h.clearAuthCookie(c)

	c.JSON(http.StatusOK, gin.H{"message": "Session ended"})
}
