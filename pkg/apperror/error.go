package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError independently of its HTTP status.
type Kind string

const (
	KindValidation      Kind = "validation_failed"
	KindDuplicate       Kind = "duplicate_resource"
	KindNotFound        Kind = "not_found"
	KindUnauthorized    Kind = "unauthorized"
	KindUnverified      Kind = "unverified"
	KindBadRequest      Kind = "bad_request"
	KindForbidden       Kind = "forbidden"
	KindUnauthenticated Kind = "unauthenticated"
	KindInternal        Kind = "internal"
)

// FieldError is a single field-level validation message.
type FieldError struct {
	Field          string `json:"field,omitempty"`
	Code           string `json:"code,omitempty"`
	ObjectName     string `json:"objectName,omitempty"`
	DefaultMessage string `json:"defaultMessage"`
}

type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	Err     error        `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Business-rule failures are all reported as 400.

func Validation(fields []FieldError) *AppError {
	e := New(http.StatusBadRequest, KindValidation, "Validation failed", nil)
	e.Fields = fields
	return e
}

func Duplicate(message string) *AppError {
	return New(http.StatusBadRequest, KindDuplicate, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusBadRequest, KindNotFound, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusBadRequest, KindUnauthorized, message, nil)
}

func Unverified(message string) *AppError {
	return New(http.StatusBadRequest, KindUnverified, message, nil)
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindBadRequest, message, nil)
}

// Role gate failures keep their own statuses.

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, KindForbidden, message, nil)
}

func Unauthenticated(message string) *AppError {
	return New(http.StatusUnauthorized, KindUnauthenticated, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}

// KindOf returns the kind of err, or KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
