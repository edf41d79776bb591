package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput covers a missing or unreadable file and out-of-range
	// request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidMode is returned for any mode outside the supported set.
	ErrInvalidMode = fmt.Errorf("%w: invalid mode", ErrInvalidInput)

	// ErrConfiguration is fatal at startup.
	ErrConfiguration = errors.New("configuration error")

	// ErrMissingCredential is returned when no LLM API key is available.
	ErrMissingCredential = fmt.Errorf("%w: missing LLM API credential", ErrConfiguration)

	// ErrExternalService wraps PDF parse failures and LLM call failures.
	ErrExternalService = errors.New("external service error")
)
