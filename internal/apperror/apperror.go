package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("conflict")
	ErrForbidden     = errors.New("forbidden")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrExpired       = errors.New("expired")
	ErrUpstream      = errors.New("upstream error")
	ErrEmptyResponse = errors.New("empty upstream response")
)

type AppError struct {
	Err     error  // sentinel the error chain resolves to
	Message string // human-readable message
	Field   string // optional: field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, detail string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict: %s", resource, detail),
	}
}

// Forbidden covers ownership mismatches. Handlers map it to 403.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthorized covers missing or bad credentials. Handlers map it to 401.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Expired marks a resource that existed but is past its lifetime. Handlers
// map it to 410.
func Expired(resource string) *AppError {
	return &AppError{
		Err:     ErrExpired,
		Message: fmt.Sprintf("%s has expired", resource),
	}
}

// Upstream wraps a failed call to the external analysis API. The HTTP status
// of the upstream response is kept in the message when it is known.
func Upstream(statusCode int, message string) *AppError {
	if statusCode > 0 {
		message = fmt.Sprintf("%s (status %d)", message, statusCode)
	}
	return &AppError{
		Err:     ErrUpstream,
		Message: message,
	}
}

// EmptyResponse marks a 2xx upstream reply that carried no usable choice.
func EmptyResponse() *AppError {
	return &AppError{
		Err:     ErrEmptyResponse,
		Message: "upstream returned no choices",
	}
}
