// Package services defines the business logic for sealing, disclosing, and
// signing in. This file centralizes common service-level error values so that
// they can be consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer. Note that several distinct internal errors are deliberately mapped to
// the same external response: ErrSecretNotFound covers missing, malformed, and
// foreign-owned identifiers alike, so responses never confirm that a record
// exists to a caller who is not allowed to see it.
package services

import "errors"

// Secret-related errors.
var (
	// ErrSecretNotFound indicates that the requested secret does not exist,
	// the identifier is malformed, or the record is not accessible to the
	// caller. The cases are indistinguishable by design.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrMissingPayload is returned when a seal request carries neither text
	// content nor a media key. A record must hold at least one payload.
	ErrMissingPayload = errors.New("secret needs a message or a media attachment")

	// ErrInvalidDeliveryDate is returned when a seal request has no delivery
	// timestamp.
	ErrInvalidDeliveryDate = errors.New("delivery date is required")

	// ErrContentTooLong is returned when sealed text exceeds the configured
	// rune limit.
	ErrContentTooLong = errors.New("message too long")

	// ErrUnauthenticated is returned when an operation that requires an owner
	// principal is invoked without one.
	ErrUnauthenticated = errors.New("authentication required")
)

// Auth-related errors.
var (
	// ErrInvalidEmail is returned when a magic link is requested for an
	// address that does not look like an email.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrTokenInvalid is returned when a magic-link token is unknown, expired,
	// or already redeemed. The cases are indistinguishable by design.
	ErrTokenInvalid = errors.New("sign-in link is invalid or has expired")
)

// Media-related errors.
var (
	// ErrMediaTooLarge is returned when an upload exceeds the configured
	// byte limit.
	ErrMediaTooLarge = errors.New("media file too large")

	// ErrMediaMissing is returned when an upload request carries no file.
	ErrMediaMissing = errors.New("media file is required")
)
