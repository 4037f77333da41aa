package main

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/blanco81/app-task/internal/auth"
	"github.com/blanco81/app-task/internal/config"
	"github.com/blanco81/app-task/internal/models"
	"github.com/blanco81/app-task/internal/repository"
	"github.com/blanco81/app-task/internal/server"
)

func main() {
	// Load configuration first so the development flag can pick the logger.
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.Server.Development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Database connection
	db, err := repository.NewPostgresDB(cfg.DatabaseURL(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Bootstrap the default administrator account
	if err := seedAdmin(context.Background(), db, logger); err != nil {
		logger.Fatal("Failed to seed admin user", zap.Error(err))
	}

	// Initialize and run the server
	srv := server.NewServer(db, cfg, logger)
	srv.Run(cfg.Server.Port)
}

// seedAdmin creates the default admin@task.com account on a fresh database so
// the roster can be managed right after bootstrap.
func seedAdmin(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	const adminEmail = "admin@task.com"

	var exists bool
	err := db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, adminEmail)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if exists {
		return nil
	}

	passwordHash, err := auth.HashPassword("admin")
	if err != nil {
		return err
	}

	adminID := uuid.NewString()
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, name_complete, email, password_hash, role) VALUES ($1, $2, $3, $4, $5)`,
		adminID, "Administrator", adminEmail, passwordHash, models.RoleAdmin)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO logs (id, action, user_id) VALUES ($1, $2, $3)`,
		uuid.NewString(), "User 'Administrator' was created.", adminID)
	if err != nil {
		return err
	}

	logger.Info("Seeded default admin user", zap.String("email", adminEmail))
	return nil
}
