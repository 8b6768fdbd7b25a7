// Package errors provides the unified error type for authkit.
// It implements structured errors with machine-readable codes, HTTP status
// mapping, and retryable detection following RFC 7807.
//
// The taxonomy mirrors the authentication domain: credential problems map to
// 401, role problems to 403, missing resources to 404, quota and uniqueness
// violations to 409, and misconfiguration is fatal at startup rather than a
// runtime condition.
package errors
