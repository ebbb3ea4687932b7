// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP responses
// (via the `fail()` helper in this package). These codes provide clients with a stable,
// machine-readable error taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, unauthorized, conflict) mirror common HTTP
//     status semantics to aid interoperability.
//   - Domain-specific codes (e.g., seal_failed, upload_failed) are reserved for
//     business logic errors that cannot be conveyed by status alone.
//   - All error responses must include both an HTTP status and one of these codes.
//
// Deliberate ambiguity: authorization failures on owner-scoped reads and
// genuinely absent records both map to not_found with an identical body, so
// a response never confirms that a secret exists to someone who may not see
// it. The distinction survives internally as separate service errors.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeSealFailed       = "seal_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeRevealFailed     = "reveal_failed"
	ErrCodeUploadFailed     = "upload_failed"
	ErrCodeSignInFailed     = "sign_in_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
