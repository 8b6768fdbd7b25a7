package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Authentication errors (401) ---

// Unauthorized creates a new AppError for a request with no valid credential.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// InvalidCredentials creates the generic bad-login error. The message is
// identical for unknown users and wrong passwords to prevent enumeration.
func InvalidCredentials() *AppError {
	return &AppError{
		Code: ErrCodeUnauthorized, Message: "Invalid username or password.",
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// TokenExpired creates a new AppError for an expired token.
func TokenExpired() *AppError {
	return &AppError{
		Code: ErrCodeTokenExpired, Message: "Token has expired. Please log in again.",
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// InvalidToken creates a new AppError for a malformed token, a bad signature,
// or a token whose type does not match what the verifier expects.
func InvalidToken(reason string) *AppError {
	if reason == "" {
		reason = "Invalid authentication token."
	}
	return &AppError{
		Code: ErrCodeInvalidToken, Message: reason,
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// TokenRevoked creates a new AppError for a blacklisted token.
func TokenRevoked() *AppError {
	return &AppError{
		Code: ErrCodeTokenRevoked, Message: "Token has been revoked.",
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// InvalidAPIKey creates a new AppError for an unknown or wrong-secret API key.
// The message does not distinguish the two cases.
func InvalidAPIKey() *AppError {
	return &AppError{
		Code: ErrCodeInvalidAPIKey, Message: "Invalid API key.",
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// APIKeyExpired creates a new AppError for an API key past its expiration.
func APIKeyExpired() *AppError {
	return &AppError{
		Code: ErrCodeAPIKeyExpired, Message: "API key has expired.",
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// --- Authorization errors (403) ---

// Forbidden creates a new AppError for a role mismatch, naming the required
// and actual roles.
func Forbidden(requiredRoles []string, actualRole string) *AppError {
	return &AppError{
		Code:       ErrCodeForbidden,
		Message:    fmt.Sprintf("Requires one of roles [%s], have role %q.", strings.Join(requiredRoles, ", "), actualRole),
		HTTPStatus: http.StatusForbidden, Retryable: false,
		Details: map[string]any{"required_roles": requiredRoles, "actual_role": actualRole},
	}
}

// PermissionDenied creates a new AppError for a role that does not grant the
// required permission.
func PermissionDenied(permission, actualRole string) *AppError {
	return &AppError{
		Code:       ErrCodeForbidden,
		Message:    fmt.Sprintf("Requires permission %q, have role %q.", permission, actualRole),
		HTTPStatus: http.StatusForbidden, Retryable: false,
		Details: map[string]any{"required_permission": permission, "actual_role": actualRole},
	}
}

// AccountInactive creates a new AppError for a deactivated account.
func AccountInactive() *AppError {
	return &AppError{
		Code: ErrCodeAccountInactive, Message: "Account is inactive.",
		HTTPStatus: http.StatusForbidden, Retryable: false,
	}
}

// --- Resource errors ---

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false, Details: details,
	}
}

// Conflict creates a new AppError for a conflict with the current state of the resource.
func Conflict(reason string) *AppError {
	return &AppError{
		Code: ErrCodeConflict, Message: reason,
		HTTPStatus: http.StatusConflict, Retryable: false,
	}
}

// KeyLimitExceeded creates a new AppError for an exhausted API-key quota.
func KeyLimitExceeded(limit int) *AppError {
	return &AppError{
		Code:       ErrCodeKeyLimitExceeded,
		Message:    fmt.Sprintf("Maximum number of API keys (%d) reached.", limit),
		HTTPStatus: http.StatusConflict, Retryable: false,
		Details: map[string]any{"limit": limit},
	}
}

// --- Validation errors ---

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"field": field},
	}
}

// --- Infrastructure errors ---

// Configuration creates a new AppError for invalid startup configuration.
// These are fatal: they abort startup and never surface at request time.
func Configuration(reason string) *AppError {
	return &AppError{
		Code: ErrCodeConfiguration, Message: reason,
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// DatabaseError creates a new AppError for a storage-layer error.
func DatabaseError(cause error) *AppError {
	return &AppError{
		Code: ErrCodeDatabaseError, Message: "A storage error occurred. Please try again.",
		HTTPStatus: http.StatusInternalServerError, Retryable: true, Cause: cause,
	}
}

// ConnectionFailed creates a new AppError for a failed connection to a service.
func ConnectionFailed(service string) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: fmt.Sprintf("Unable to connect to %s.", service),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"service": service},
	}
}
