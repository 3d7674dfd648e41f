package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/errors"
	"github.com/go-playground/validator/v10"
)

const unexpectedErrorMessage = "An unexpected error occurred"

// APIResponse is the envelope of every JSON endpoint.
type APIResponse struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details []string          `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", slog.Int("status", statusCode), slog.String("error", err.Error()))
		return err
	}

	return nil
}

func Success(w http.ResponseWriter, statusCode int, data any) {
	_ = WriteJson(w, statusCode, APIResponse{Success: true, Data: data})
}

// Text writes a plain text body, used by fragments polled from the storefront header.
func Text(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes err with its AppError status. Anything else becomes a generic 500 so internals never leak.
func Error(w http.ResponseWriter, err error) {

	appErr, ok := errors.IsAppError(err)
	if !ok {
		_ = WriteJson(w, http.StatusInternalServerError, APIResponse{
			Error: &ErrorResponse{Code: errors.ErrCodeInternal, Message: unexpectedErrorMessage},
		})
		return
	}

	errorResponse := &ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Fields:  appErr.Fields,
	}

	if appErr.Detail != "" {
		errorResponse.Details = []string{appErr.Detail}
	}

	_ = WriteJson(w, appErr.StatusCode, APIResponse{Error: errorResponse})
}

// ValidationError reports every failed rule, keyed by the json name of the field.
func ValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {

	details := make([]string, 0, len(errs))
	fields := make(map[string]string, len(errs))

	for _, err := range errs {
		message := fieldMessage(err)
		details = append(details, message)
		fields[err.Field()] = message
	}

	_ = WriteJson(w, http.StatusBadRequest, APIResponse{
		Error: &ErrorResponse{
			Code:    errors.ErrCodeValidation,
			Message: "Validation failed",
			Details: details,
			Fields:  fields,
		},
	})
}

func fieldMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("Field %s is required", err.Field())
	case "email":
		return fmt.Sprintf("Field %s must be a valid email address", err.Field())
	case "min":
		return fmt.Sprintf("Field %s must be at least %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("Field %s must be at most %s", err.Field(), err.Param())
	case "gt":
		return fmt.Sprintf("Field %s must be greater than %s", err.Field(), err.Param())
	case "oneof":
		return fmt.Sprintf("Field %s must be one of: %s", err.Field(), err.Param())
	case "ua_phone":
		return fmt.Sprintf("Field %s must be in format +38 (0XX) XXX-XX-XX", err.Field())
	case "full_name":
		return fmt.Sprintf("Field %s must contain 2 or 3 words without special characters", err.Field())
	default:
		return fmt.Sprintf("Field %s is invalid: %s=%s", err.Field(), err.Tag(), err.Param())
	}
}
