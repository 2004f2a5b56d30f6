// Package common defines shared constants and sentinel errors used across
// ArtKeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrStorageFailure = errors.New("storage failure")
	ErrNotFound       = errors.New("not found")

	// State store errors.
	ErrNotReady = errors.New("state not hydrated yet")

	// Generation errors.
	ErrBlocked           = errors.New("response blocked by safety filter")
	ErrNoImageInResponse = errors.New("no image in response")
	ErrNoTextInResponse  = errors.New("no text in response")

	// Credential errors.
	ErrInvalidPassphrase  = errors.New("invalid passphrase")
	ErrCredentialNotFound = errors.New("credential not set")
)
