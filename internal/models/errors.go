package models

import (
	"fmt"
)

const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is the error every service operation returns. Message is safe to
// show to the user.
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

var (
	ErrNotAuthenticated   = NewUnauthorizedError("You must be logged in")
	ErrUserNotFound       = NewNotFoundError("User not found")
	ErrInvalidCredentials = NewUnauthorizedError("Invalid password")
	ErrUsernameTaken      = NewConflictError("Username is already taken")
	ErrEmailTaken         = NewConflictError("Email is already in use")
	ErrTopicNotFound      = NewNotFoundError("Topic not found")
	ErrCommentNotFound    = NewNotFoundError("Comment not found")
)

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Something went wrong", Err: err}
}
