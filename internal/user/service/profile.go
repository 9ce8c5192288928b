package service

import (
	"context"
	"fmt"

	"appointment-scheduler/internal/user/model"
	"appointment-scheduler/internal/user/validator"
	appErrors "appointment-scheduler/pkg/errors"
	"appointment-scheduler/pkg/utils"
)

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*model.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, request *model.UpdateProfileRequest) (*model.UserResponse, error) {
	if err := validator.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if request.Email != nil && *request.Email != user.Email {
		if err := s.checkEmailFree(ctx, *request.Email); err != nil {
			return nil, err
		}
		user.Email = *request.Email
	}
	if request.Username != nil && *request.Username != user.Username {
		if err := s.checkUsernameFree(ctx, *request.Username); err != nil {
			return nil, err
		}
		user.Username = *request.Username
	}
	if request.FullName != nil {
		user.FullName = *request.FullName
	}
	if request.Phone != nil {
		user.Phone = request.Phone
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint, request *model.ChangePasswordRequest) error {
	if err := validator.ValidateStruct(request); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(request.NewPassword); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(user.PasswordHashed, request.CurrentPassword) {
		return appErrors.ErrPasswordMismatch
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, userID, hashedPassword)
}
