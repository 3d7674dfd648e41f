package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeDatabaseError   = "DATABASE_ERROR"
	ErrCodeDuplicateEntry  = "DUPLICATE_ENTRY"
	ErrCodeThirdPartyError = "THIRD_PARTY_ERROR"
)

var statusByCode = map[string]int{
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeConflict:        http.StatusConflict,
	ErrCodeDuplicateEntry:  http.StatusConflict,
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeDatabaseError:   http.StatusInternalServerError,
	ErrCodeThirdPartyError: http.StatusInternalServerError,
}

// AppError is what services hand to the HTTP layer. Err keeps the cause for logs and is never serialized.
type AppError struct {
	Code       string
	Message    string
	Detail     string
	Fields     map[string]string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an error whose status follows its code; unknown codes map to 500.
func NewAppError(code, message string) *AppError {
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: status,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

// WithField attaches a per-field reason, surfaced to the client next to the input it concerns.
func (e *AppError) WithField(field, reason string) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}

	e.Fields[field] = reason

	return e
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message)
}

// AddValidationError reports a single invalid field.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason)).WithField(field, reason)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message)
}

// ConflictError signals that the client acted on stale state, such as a cart that changed under checkout.
func ConflictError(message string) *AppError {
	return NewAppError(ErrCodeConflict, message)
}

func DuplicateEntryError(message string) *AppError {
	return NewAppError(ErrCodeDuplicateEntry, message)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message)
}

func ThirdPartyError(message string) *AppError {
	return NewAppError(ErrCodeThirdPartyError, message)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}
