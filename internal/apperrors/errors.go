package apperrors

import (
	"errors"
)

var (
	ErrUsernameTaken      = errors.New("username already reserved")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTimeout = errors.New("operation timed out")
)
