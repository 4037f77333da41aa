package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/blanco81/app-task/internal/auth"
	"github.com/blanco81/app-task/internal/config"
	"github.com/blanco81/app-task/internal/handler"
	"github.com/blanco81/app-task/internal/middleware"
	"github.com/blanco81/app-task/internal/repository"
	"github.com/blanco81/app-task/internal/service"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	log    *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, log *zap.Logger) *Server {
	if !cfg.Server.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	ttl := time.Duration(s.cfg.Auth.ExpireMinutes) * time.Minute
	codec := auth.NewCodec([]byte(s.cfg.Auth.SecretKey), s.cfg.Auth.Algorithm, ttl)
	blacklist := auth.NewMemoryBlacklist(ttl)

	userRepo := repository.NewUserRepository(s.db, s.log)
	taskRepo := repository.NewTaskRepository(s.db, s.log)
	logRepo := repository.NewLogRepository(s.db, s.log)

	authService := service.NewAuthService(userRepo, codec, blacklist, s.log)
	taskService := service.NewTaskService(taskRepo, s.log)
	userService := service.NewUserService(userRepo, logRepo, s.log)

	limits := handler.Limits{
		Default: s.cfg.Pagination.DefaultLimit,
		Max:     s.cfg.Pagination.MaxLimit,
	}
	authHandler := handler.NewAuthHandler(authService, s.cfg.Auth.ExpireMinutes*60, s.log)
	taskHandler := handler.NewTaskHandler(taskService, limits, s.log)
	userHandler := handler.NewUserHandler(userService, limits, s.log)

	authenticated := middleware.AuthMiddleware(userRepo, codec, blacklist, s.log)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	authGroup := s.router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", authenticated, authHandler.Me)
		// Logout never fails, so it skips the resolver and revokes whatever
		// tokens the request carries.
		authGroup.GET("/logout", authHandler.Logout)
	}

	taskGroup := s.router.Group("/tasks")
	taskGroup.Use(authenticated)
	{
		taskGroup.GET("", taskHandler.List)
		taskGroup.GET("/filter", taskHandler.Filter)
		taskGroup.POST("", taskHandler.Create)
		taskGroup.GET("/:task_id", taskHandler.Get)
		taskGroup.PUT("/:task_id", taskHandler.Update)
		taskGroup.DELETE("/:task_id", taskHandler.Delete)
	}

	userGroup := s.router.Group("/users")
	userGroup.Use(authenticated, middleware.RequireAdmin())
	{
		userGroup.GET("", userHandler.List)
		userGroup.GET("/filter", userHandler.Filter)
		userGroup.GET("/logs", userHandler.Logs)
		userGroup.GET("/:user_id", userHandler.Get)
		userGroup.PUT("/:user_id", userHandler.Update)
		userGroup.DELETE("/:user_id", userHandler.Deactivate)
		userGroup.POST("/activate/:user_id", userHandler.Activate)
	}
}

func (s *Server) Run(addr string) {
	s.log.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.log.Fatal("Server failed to start", zap.Error(err))
	}
}
