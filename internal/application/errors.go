package application

import "errors"

// Application error taxonomy. Handlers map these to HTTP statuses; services
// never expose store- or collaborator-level errors directly.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Deliberately undifferentiated.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateEmail is returned when registration hits an existing email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrUserNotFound means the identity vanished between token issuance and
	// use. Reported, never retried.
	ErrUserNotFound = errors.New("user not found")

	// ErrRevoked marks a refresh token that was invalidated by logout.
	ErrRevoked = errors.New("token revoked")

	// ErrUpstreamUnavailable wraps an essential collaborator failure (the
	// analytical query itself). Enrichment failures never produce it.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
