package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Authentication errors (HTTP 401)
const (
	// ErrCodeUnauthorized indicates the request carries no valid credential.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeTokenExpired indicates the token's exp claim is in the past.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeInvalidToken indicates a malformed token, bad signature, or wrong token type.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	// ErrCodeTokenRevoked indicates the token was blacklisted (logout or rotation).
	ErrCodeTokenRevoked ErrorCode = "TOKEN_REVOKED"
	// ErrCodeInvalidAPIKey indicates an unknown, malformed, or wrong-secret API key.
	ErrCodeInvalidAPIKey ErrorCode = "INVALID_API_KEY"
	// ErrCodeAPIKeyExpired indicates the API key's expiration is in the past.
	ErrCodeAPIKeyExpired ErrorCode = "API_KEY_EXPIRED"
)

// Authorization errors (HTTP 403)
const (
	// ErrCodeForbidden indicates an authenticated principal lacks the required role.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
	// ErrCodeAccountInactive indicates the principal's account is deactivated.
	ErrCodeAccountInactive ErrorCode = "ACCOUNT_INACTIVE"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeConflict indicates a conflict with the current state of the resource.
	ErrCodeConflict ErrorCode = "CONFLICT"
	// ErrCodeKeyLimitExceeded indicates the owner's API-key quota is exhausted.
	ErrCodeKeyLimitExceeded ErrorCode = "KEY_LIMIT_EXCEEDED"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Infrastructure errors
const (
	// ErrCodeConfiguration indicates invalid configuration detected at startup.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeDatabaseError indicates a storage-layer error.
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
	// ErrCodeConnectionFailed indicates a failed connection to a backing service.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeDatabaseError:    true,
	ErrCodeConnectionFailed: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
