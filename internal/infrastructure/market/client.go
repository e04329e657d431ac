// Package market implements the federated prompt-market listing client.
// Calls go through the local proxy path rather than the market's own origin,
// mirroring how the SPA reaches it.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/wenturc/prompt-market/internal/api/metrics"
	"github.com/wenturc/prompt-market/internal/core/domain"
	"github.com/wenturc/prompt-market/internal/core/ports"
)

const (
	defaultPageSize = 100
	defaultMaxPages = 50
)

// Client pages through a market's listing endpoint.
type Client struct {
	http     *http.Client
	baseURL  string
	name     string
	pageSize int
	maxPages int
	log      zerolog.Logger
}

// New builds a market client. baseURL is the resolved API base; name labels
// the market in synced prompts and logs.
func New(httpClient *http.Client, baseURL, name string, pageSize, maxPages int, log zerolog.Logger) *Client {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	return &Client{
		http:     httpClient,
		baseURL:  baseURL,
		name:     name,
		pageSize: pageSize,
		maxPages: maxPages,
		log:      log,
	}
}

// externalPrompt is the wire shape of one listing entry.
type externalPrompt struct {
	ID       json.Number `json:"id"`
	Title    string      `json:"title"`
	Content  string      `json:"content"`
	Author   string      `json:"author"`
	Category string      `json:"category"`
	Tags     []string    `json:"tags"`
	Likes    int         `json:"likes"`
}

// FetchPage issues one listing call. It never returns a Go error: any
// failure is folded into the page result so aggregation callers decide what
// to do with it.
func (c *Client) FetchPage(ctx context.Context, skip, limit int) ports.MarketPage {
	page := c.fetchPage(ctx, skip, limit)
	result := "ok"
	if !page.Success {
		result = "error"
	}
	metrics.MarketPagesFetchedTotal.WithLabelValues(c.name, result).Inc()
	return page
}

func (c *Client) fetchPage(ctx context.Context, skip, limit int) ports.MarketPage {
	url := fmt.Sprintf("%s/api/external/prompts?skip=%d&limit=%d", c.baseURL, skip, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.MarketPage{Err: err.Error()}
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("market", c.name).Int("skip", skip).Msg("market page fetch failed")
		return ports.MarketPage{Err: err.Error()}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return ports.MarketPage{Err: "unexpected status " + strconv.Itoa(res.StatusCode)}
	}

	var raw []externalPrompt
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return ports.MarketPage{Err: err.Error()}
	}

	prompts := make([]domain.Prompt, 0, len(raw))
	for _, e := range raw {
		prompts = append(prompts, domain.Prompt{
			ExternalID: e.ID.String(),
			Title:      e.Title,
			Content:    e.Content,
			Author:     e.Author,
			Category:   e.Category,
			Tags:       e.Tags,
			Likes:      e.Likes,
			Source:     c.name,
		})
	}
	return ports.MarketPage{Success: true, Prompts: prompts}
}

// FetchAll accumulates pages with an advancing offset until a short page
// signals exhaustion. A market that keeps returning full pages is cut off
// at maxPages with domain.ErrPaginationLimitExceeded; any failed page fails
// the whole aggregation.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Prompt, error) {
	var all []domain.Prompt
	skip := 0

	for page := 0; page < c.maxPages; page++ {
		result := c.FetchPage(ctx, skip, c.pageSize)
		if !result.Success {
			return nil, fmt.Errorf("fetch all from %s at offset %d: %s", c.name, skip, result.Err)
		}

		all = append(all, result.Prompts...)
		if len(result.Prompts) < c.pageSize {
			return all, nil
		}
		skip += c.pageSize
	}

	return nil, fmt.Errorf("fetch all from %s: %w after %d pages", c.name, domain.ErrPaginationLimitExceeded, c.maxPages)
}
