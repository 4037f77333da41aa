package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blanco81/app-task/internal/auth"
	"github.com/blanco81/app-task/internal/models"
	"github.com/blanco81/app-task/internal/repository"
)

type RegisterInput struct {
	NameComplete string
	Email        string
	Password     string
	Role         string
}

type AuthService interface {
	// Register creates the user and issues a token for the fresh session.
	Register(ctx context.Context, input RegisterInput) (*models.User, string, error)
	// Login authenticates by email/password and issues a token.
	// Unknown email and wrong password both map to ErrInvalidCredentials;
	// a soft-deleted account maps to ErrUserDisabled.
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	// Logout revokes the session per the dual-token rule: the cookie token
	// is always revoked when present, and a header token that differs from
	// it is revoked as well. Tokens arrive already stripped of any
	// "Bearer " prefix.
	Logout(cookieToken, headerToken string)
}

type authService struct {
	users     repository.UserRepository
	codec     *auth.Codec
	blacklist auth.Blacklist
	logger    *zap.Logger
}

func NewAuthService(users repository.UserRepository, codec *auth.Codec, blacklist auth.Blacklist, logger *zap.Logger) AuthService {
	return &authService{
		users:     users,
		codec:     codec,
		blacklist: blacklist,
		logger:    logger,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, string, error) {
	_, err := s.users.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, "", ErrEmailTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, "", fmt.Errorf("failed to check existing users: %w", err)
	}

	passwordHash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		NameComplete: input.NameComplete,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         input.Role,
	}

	action := fmt.Sprintf("User '%s' was created.", user.NameComplete)
	if err := s.users.Create(ctx, user, action); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, _, err := s.codec.Issue(user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User registered", zap.String("email", user.Email))
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user.Deleted {
		return nil, "", ErrUserDisabled
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := s.codec.Issue(user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User logged in", zap.String("email", user.Email))
	return user, token, nil
}

func (s *authService) Logout(cookieToken, headerToken string) {
	token := cookieToken
	if headerToken != "" {
		if token == "" {
			token = headerToken
		} else if token != headerToken {
			// A stale header-held token distinct from the active cookie
			// session is invalidated too. Kept for client compatibility.
			s.blacklist.Revoke(headerToken, s.codec.Expiry(headerToken))
		}
	}
	if token != "" {
		s.blacklist.Revoke(token, s.codec.Expiry(token))
	}
}
