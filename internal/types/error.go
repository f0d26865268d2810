package types

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Stable machine-readable error codes carried on every error response.
const (
	CodeValidationFailed          = "VALIDATION_FAILED"
	CodeUnauthorized              = "UNAUTHORIZED"
	CodeNotFound                  = "NOT_FOUND"
	CodeGenerationNotFound        = "GENERATION_NOT_FOUND"
	CodeDietNotFound              = "DIET_NOT_FOUND"
	CodeShoppingListNotFound      = "SHOPPING_LIST_NOT_FOUND"
	CodeProfileNotFound           = "PROFILE_NOT_FOUND"
	CodeDietAlreadyExists         = "DIET_ALREADY_EXISTS"
	CodeShoppingListAlreadyExists = "SHOPPING_LIST_ALREADY_EXISTS"
	CodeDietAlreadyArchived       = "DIET_ALREADY_ARCHIVED"
	CodeGenerationNotCompleted    = "GENERATION_NOT_COMPLETED"
	CodeServiceUnavailable        = "SERVICE_UNAVAILABLE"
	CodeServerError               = "SERVER_ERROR"
)

// ApiError is the error type services raise; the HTTP layer maps it onto a
// status code and a stable error code without leaking internals.
type ApiError struct {
	Status  int         `json:"status"`
	Code    string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

// NewValidationError reports malformed or out-of-range input, details optional.
func NewValidationError(message string, details interface{}) *ApiError {
	return &ApiError{Status: fiber.StatusBadRequest, Code: CodeValidationFailed, Message: message, Details: details}
}

// NewUnauthorizedError reports a missing or invalid session.
func NewUnauthorizedError(message string) *ApiError {
	if message == "" {
		message = "Unauthorized access"
	}
	return &ApiError{Status: fiber.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

// NewNotFoundError reports an absent entity. Owned-by-another-user is reported
// identically to absent so the API never confirms other users' data exists.
func NewNotFoundError(code, message string) *ApiError {
	return &ApiError{Status: fiber.StatusNotFound, Code: code, Message: message}
}

// NewConflictError reports a uniqueness or state-transition violation.
func NewConflictError(code, message string) *ApiError {
	return &ApiError{Status: fiber.StatusConflict, Code: code, Message: message}
}

// NewServiceUnavailableError reports an unreachable dependency.
func NewServiceUnavailableError(message string) *ApiError {
	return &ApiError{Status: fiber.StatusServiceUnavailable, Code: CodeServiceUnavailable, Message: message}
}

// NewServerError wraps an unexpected failure.
func NewServerError(message string) *ApiError {
	if message == "" {
		message = "Internal server error"
	}
	return &ApiError{Status: fiber.StatusInternalServerError, Code: CodeServerError, Message: message}
}

// AsApiError unwraps err into an *ApiError if it carries one.
func AsApiError(err error) (*ApiError, bool) {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a not-found ApiError.
func IsNotFound(err error) bool {
	apiErr, ok := AsApiError(err)
	return ok && apiErr.Status == fiber.StatusNotFound
}

// IsConflict reports whether err is a conflict ApiError.
func IsConflict(err error) bool {
	apiErr, ok := AsApiError(err)
	return ok && apiErr.Status == fiber.StatusConflict
}
