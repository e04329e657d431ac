package ports

import (
	"context"

	"github.com/wenturc/prompt-market/internal/core/domain"
)

// RegisterInput is the registration payload checked locally before being
// forwarded upstream.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
}

// RegisterResult is the upstream registration response passed through to the
// caller on success.
type RegisterResult struct {
	UserID  string `json:"user_id,omitempty"`
	Message string `json:"msg,omitempty"`
}

// SessionService owns the single process-wide Session.
type SessionService interface {
	// Init hydrates the session from the persisted credential record and
	// runs a best-effort identity probe. It reports whether the gateway
	// is considered logged in; probe failures are absorbed here and never
	// surface to the caller.
	Init(ctx context.Context) bool

	Login(ctx context.Context, creds domain.Credentials) error
	Logout(ctx context.Context) error
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)

	// AuthHeader returns {} when logged out, otherwise a single
	// Authorization entry in canonical Bearer form.
	AuthHeader() map[string]string

	// Snapshot returns a copy of the current session.
	Snapshot() domain.Session
}

// SessionReader is the read-only view the navigation guard consumes.
type SessionReader interface {
	Snapshot() domain.Session
}
