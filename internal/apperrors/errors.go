package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnbalanced indicates that a journal entry's debits and credits do not match.
var ErrUnbalanced = errors.New("journal entry debits and credits do not balance")

// ErrForbidden indicates the operation is not permitted on the target resource,
// e.g. mutating a system account, editing a posted entry, or deleting an auto entry.
var ErrForbidden = errors.New("operation not permitted")

// ErrConflict indicates the resource's current state conflicts with the request,
// e.g. deleting an account with journal lines or closing an already closed period.
var ErrConflict = errors.New("resource state conflict")

// ErrPeriodClosed indicates the entry's date falls inside a closed accounting period.
var ErrPeriodClosed = errors.New("accounting period is closed")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with a status code and message for the
// repository layer.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
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
