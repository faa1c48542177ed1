package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserBanned         = errors.New("user is banned")
	ErrNotFound           = errors.New("user not found")
	ErrValidation         = errors.New("validation error")
)
