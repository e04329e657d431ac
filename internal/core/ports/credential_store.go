package ports

import (
	"context"

	"github.com/wenturc/prompt-market/internal/core/domain"
)

// CredentialStore persists the credential record under the fixed marketplace
// storage keys. Load returns (nil, nil) when no record exists.
type CredentialStore interface {
	Load(ctx context.Context) (*domain.CredentialRecord, error)
	Save(ctx context.Context, rec domain.CredentialRecord) error
	Clear(ctx context.Context) error

	// Token re-reads only the persisted token. Best effort: returns ""
	// when absent or unreachable. The interceptor chain calls this on
	// every outgoing request so the latest persisted token always wins.
	Token(ctx context.Context) string
}

// ThemeStore persists the visual theme preference.
type ThemeStore interface {
	Load(ctx context.Context) (domain.Theme, error)
	Save(ctx context.Context, theme domain.Theme) error
}
