package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/wenturc/prompt-market/internal/api/metrics"
	"github.com/wenturc/prompt-market/internal/core/domain"
	"github.com/wenturc/prompt-market/internal/core/ports"
)

// CatalogService keeps the Mongo catalog cache in step with a federated
// market.
type CatalogService struct {
	market ports.MarketClient
	repo   ports.PromptRepository
	log    zerolog.Logger
}

func NewCatalogService(market ports.MarketClient, repo ports.PromptRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{market: market, repo: repo, log: log}
}

// Sync fetches the full listing and upserts it into the cache. No retries;
// a failed sync is reported once and the next job starts fresh.
func (s *CatalogService) Sync(ctx context.Context, job domain.SyncJob) error {
	start := time.Now()

	prompts, err := s.market.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("sync %s: %w", job.Market, err)
	}

	now := time.Now().UTC()
	for i := range prompts {
		prompts[i].SyncedAt = now
	}

	n, err := s.repo.UpsertMany(ctx, prompts)
	if err != nil {
		return fmt.Errorf("sync %s: %w", job.Market, err)
	}

	metrics.PromptsSyncedTotal.WithLabelValues(job.Market).Add(float64(n))
	metrics.SyncDuration.WithLabelValues(job.Market).Observe(time.Since(start).Seconds())

	s.log.Info().
		Str("market", job.Market).
		Int("prompts", n).
		Dur("took", time.Since(start)).
		Msg("catalog synced")
	return nil
}

// List serves one catalog page from the cache.
func (s *CatalogService) List(ctx context.Context, skip, limit int) ([]domain.Prompt, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *CatalogService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
