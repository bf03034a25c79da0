package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of a resource,
// e.g. deleting an account that journal lines still reference.
var ErrConflict = errors.New("resource conflict")

// ErrConfiguration indicates that a well-known record the system relies on is missing,
// such as the "sales" income account.
var ErrConfiguration = errors.New("configuration error")

// ErrInvalidID indicates a malformed identifier. The balance recalculator logs it
// and returns a zero balance instead of failing.
var ErrInvalidID = errors.New("invalid identifier")

// ErrUnauthorized indicates missing or wrong credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure in the system.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a message and the wrapped cause.
type AppError struct {
	Code    int
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

// NewAppError builds an AppError. A nil err is replaced by ErrInternal for 5xx codes
// so errors.Is keeps working for callers that only check the category.
func NewAppError(code int, message string, err error) *AppError {
	if err == nil && code >= http.StatusInternalServerError {
		err = ErrInternal
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns a not-found error for the given resource.
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
		Err:     ErrNotFound,
	}
}

// NewValidationError returns a validation error with the given message.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
		Err:     ErrValidation,
	}
}

// NewConfigurationError returns an error describing a missing well-known record.
func NewConfigurationError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: message,
		Err:     ErrConfiguration,
	}
}

// StatusCode maps an error onto the HTTP status the handlers respond with.
func StatusCode(err error) int {
	var appErr *AppError
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrConfiguration):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.As(err, &appErr) && appErr.Code != 0:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}
