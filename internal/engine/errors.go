package engine

import "errors"

var (
	// ErrValidation indicates a request failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrInputMissing indicates the input dataset does not exist.
	ErrInputMissing = errors.New("input dataset not found")
)
