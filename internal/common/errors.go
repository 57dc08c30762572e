// Package common defines shared constants and sentinel errors used across
// the lifeshare server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorUnauthorized = errors.New("unauthorized")

	// Token errors. Parse failures are always one of these; malformed or
	// tampered input must never surface as anything else.
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")

	// Cipher errors. Deliberately opaque: callers learn nothing about why a
	// decrypt failed.
	ErrDecryptionFailed = errors.New("decryption failed")

	// Collaborator errors (identity-store call failed or affected zero rows).
	ErrCollaboratorFailure = errors.New("identity store failure")
)
