package ports

import (
	"context"

	"github.com/wenturc/prompt-market/internal/core/domain"
)

// PromptRepository persists the federated catalog cache.
type PromptRepository interface {
	UpsertMany(ctx context.Context, prompts []domain.Prompt) (int, error)
	List(ctx context.Context, skip, limit int) ([]domain.Prompt, error)
	Count(ctx context.Context) (int64, error)
}

// CatalogService refreshes and serves the catalog cache.
type CatalogService interface {
	Sync(ctx context.Context, job domain.SyncJob) error
	List(ctx context.Context, skip, limit int) ([]domain.Prompt, error)
	Count(ctx context.Context) (int64, error)
}
