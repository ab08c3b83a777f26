package models

import "errors"

// Failure taxonomy for provider calls and user input. The UI reacts
// differently to each (retry vs. "not found" messaging), so callers must
// be able to tell them apart with errors.Is.
var (
	// ErrNotFound: a well-formed response indicating absence of data
	// (empty result list, no nutrition available for a photo).
	ErrNotFound = errors.New("not found")

	// ErrNetwork: transport-level failure or an upstream error status.
	ErrNetwork = errors.New("network failure")

	// ErrDecode: the response arrived but its body was malformed or had
	// an unexpected shape.
	ErrDecode = errors.New("malformed response")

	// ErrValidation: required user input missing or out of range.
	ErrValidation = errors.New("invalid input")
)
