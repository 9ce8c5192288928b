package errors

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredential  = errors.New("authentication credential required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid authentication token")
	ErrTokenExpired       = errors.New("authentication token has expired")
	ErrUnauthorized       = errors.New("unauthorized access")

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("email or username already registered")
	ErrUserInactive      = errors.New("user account is disabled")
	ErrPasswordMismatch  = errors.New("current password is incorrect")

	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotTaken           = errors.New("an appointment is already scheduled for this date and time")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
