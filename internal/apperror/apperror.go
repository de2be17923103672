package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("Validation Error")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")

	// ErrMissingProperty and ErrInvalidType are both validation failures,
	// so errors.Is(err, ErrValidation) holds for either of them.
	ErrMissingProperty = fmt.Errorf("%w: missing property", ErrValidation)
	ErrInvalidType     = fmt.Errorf("%w: invalid type", ErrValidation)
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
	Entity  string // Optional: entity whose payload failed validation
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a thread, comment or user that does not exist.
func NotFound(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// MissingProperty is raised by entity constructors when a required key is
// absent from the payload.
func MissingProperty(entity, field, message string) *AppError {
	return &AppError{
		Err:     ErrMissingProperty,
		Message: message,
		Field:   field,
		Entity:  entity,
	}
}

// InvalidType is raised by entity constructors when a present key holds a
// value of the wrong type.
func InvalidType(entity, field, message string) *AppError {
	return &AppError{
		Err:     ErrInvalidType,
		Message: message,
		Field:   field,
		Entity:  entity,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Kind returns a short machine-readable name for err, suitable for the
// "error" field of an API response.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrMissingProperty):
		return "missing_property"
	case errors.Is(err, ErrInvalidType):
		return "invalid_type"
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "internal_error"
	}
}
