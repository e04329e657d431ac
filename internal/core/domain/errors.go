package domain

import "errors"

var (
	// ErrValidation marks client-side field checks that fail before any
	// network call is made.
	ErrValidation = errors.New("validation failed")

	// ErrUsernameTaken maps the upstream 409 on registration.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrServer wraps a structured error message returned by the upstream API.
	ErrServer = errors.New("server error")

	// ErrNetwork marks requests that were sent but received no response.
	ErrNetwork = errors.New("no response from server")

	// ErrAuthExpired marks a 401 from the identity probe; the persisted
	// credentials are discarded when it occurs.
	ErrAuthExpired = errors.New("authentication expired")

	ErrPromptNotFound = errors.New("prompt not found")

	// ErrPaginationLimitExceeded is raised when a federated market keeps
	// returning full pages past the configured ceiling.
	ErrPaginationLimitExceeded = errors.New("pagination limit exceeded")
)
