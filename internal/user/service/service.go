package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"appointment-scheduler/internal/config"
	"appointment-scheduler/internal/user/model"
	"appointment-scheduler/internal/user/repository"
	"appointment-scheduler/internal/user/validator"
	appErrors "appointment-scheduler/pkg/errors"
	"appointment-scheduler/pkg/utils"
)

type UserService struct {
	repo     *repository.UserRepository
	sessions *repository.SessionRepository
	config   *config.Config
}

func NewService(repo *repository.UserRepository, sessions *repository.SessionRepository, cfg *config.Config) *UserService {
	return &UserService{
		repo:     repo,
		sessions: sessions,
		config:   cfg,
	}
}

func (s *UserService) Register(ctx context.Context, request *model.RegisterRequest) (*model.AuthResponse, error) {
	if err := validator.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(request.Password); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	if err := s.checkEmailFree(ctx, request.Email); err != nil {
		return nil, err
	}
	if err := s.checkUsernameFree(ctx, request.Username); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       request.Username,
		Email:          request.Email,
		PasswordHashed: hashedPassword,
		FullName:       request.FullName,
		Phone:          request.Phone,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issueCredentials(ctx, user)
}

func (s *UserService) Login(ctx context.Context, request *model.LoginRequest) (*model.AuthResponse, error) {
	if err := validator.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.repo.GetUserByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, appErrors.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, appErrors.ErrUserInactive
	}

	if !utils.CheckPassword(user.PasswordHashed, request.Password) {
		return nil, appErrors.ErrInvalidCredentials
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to record login time: %w", err)
	}

	return s.issueCredentials(ctx, user)
}

func (s *UserService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	return s.sessions.RevokeSession(ctx, sessionID)
}

func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	claims, err := utils.ValidateToken(refreshToken, s.config.JWT.Secret)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, appErrors.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidToken
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, appErrors.ErrUserInactive
	}

	tokenPair, err := utils.GenerateTokenPair(
		user.ID,
		user.Email,
		s.config.JWT.Secret,
		s.config.JWT.ExpiryHours,
		s.config.JWT.RefreshExpiryHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return tokenPair, nil
}

func (s *UserService) issueCredentials(ctx context.Context, user *model.User) (*model.AuthResponse, error) {
	tokenPair, err := utils.GenerateTokenPair(
		user.ID,
		user.Email,
		s.config.JWT.Secret,
		s.config.JWT.ExpiryHours,
		s.config.JWT.RefreshExpiryHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	sessionTTL := time.Duration(s.config.JWT.RefreshExpiryHours) * time.Hour
	session, err := s.sessions.CreateSession(ctx, user.ID, sessionTTL)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		SessionID:    session.ID.String(),
		ExpiresAt:    tokenPair.ExpiresAt,
	}, nil
}

func (s *UserService) checkEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return appErrors.ErrUserAlreadyExists
	}
	if !errors.Is(err, appErrors.ErrUserNotFound) {
		return fmt.Errorf("failed to check existing email: %w", err)
	}
	return nil
}

func (s *UserService) checkUsernameFree(ctx context.Context, username string) error {
	_, err := s.repo.GetUserByUsername(ctx, username)
	if err == nil {
		return appErrors.ErrUserAlreadyExists
	}
	if !errors.Is(err, appErrors.ErrUserNotFound) {
		return fmt.Errorf("failed to check existing username: %w", err)
	}
	return nil
}
