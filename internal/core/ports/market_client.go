package ports

import (
	"context"

	"github.com/wenturc/prompt-market/internal/core/domain"
)

// MarketPage is the outcome of one paginated listing call. FetchPage never
// returns a Go error; failures are folded into the page itself.
type MarketPage struct {
	Success bool
	Prompts []domain.Prompt
	Err     string
}

// MarketClient lists prompts from a federated market through the local
// proxy path.
type MarketClient interface {
	FetchPage(ctx context.Context, skip, limit int) MarketPage
	// FetchAll pages through the whole listing, stopping at the first
	// short page. It fails with domain.ErrPaginationLimitExceeded when the
	// market never signals exhaustion.
	FetchAll(ctx context.Context) ([]domain.Prompt, error)
}
