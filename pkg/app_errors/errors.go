package apperrors

import "errors"

var (
	ErrEventNotFound           = errors.New("event not found")
	ErrUserNotFound            = errors.New("user not found")
	ErrAdminNotFound           = errors.New("admin not found")
	ErrAssistanceNotFound      = errors.New("assistance record not found")
	ErrDuplicateIdentification = errors.New("identification already registered")
	ErrDuplicateEmail          = errors.New("email already registered")
	ErrAlreadyRegistered       = errors.New("user already registered for event")
	ErrInvalidInput            = errors.New("invalid input")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrStorageUnavailable      = errors.New("object storage unavailable")
	ErrInternalServerError     = errors.New("internal server error")
)
