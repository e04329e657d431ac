package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wenturc/prompt-market/internal/core/domain"
	"github.com/wenturc/prompt-market/internal/core/ports"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// SyncEnqueuer hands a sync job to the background dispatcher.
type SyncEnqueuer interface {
	Enqueue(job domain.SyncJob)
}

// PromptsHandler serves the catalog cache and accepts sync requests.
type PromptsHandler struct {
	catalog  ports.CatalogService
	queue    SyncEnqueuer
	sessions ports.SessionReader
}

func NewPromptsHandler(catalog ports.CatalogService, queue SyncEnqueuer, sessions ports.SessionReader) *PromptsHandler {
	return &PromptsHandler{catalog: catalog, queue: queue, sessions: sessions}
}

type promptListResponse struct {
	Prompts []domain.Prompt `json:"prompts"`
	Total   int64           `json:"total"`
}

// List returns one catalog page.
//
// @Summary      List cached prompts
// @Tags         prompts
// @Produce      json
// @Param        skip   query     int  false  "Offset"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  promptListResponse
// @Router       /api/prompts [get]
func (h *PromptsHandler) List(c echo.Context) error {
	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	if skip < 0 {
		skip = 0
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	ctx := c.Request().Context()
	prompts, err := h.catalog.List(ctx, skip, limit)
	if err != nil {
		return err
	}
	total, err := h.catalog.Count(ctx)
	if err != nil {
		return err
	}
	if prompts == nil {
		prompts = []domain.Prompt{}
	}

	return c.JSON(http.StatusOK, promptListResponse{Prompts: prompts, Total: total})
}

type syncRequest struct {
	Market string `json:"market"`
}

// Sync enqueues a catalog refresh for one market. Admin only; the guard in
// front of this route enforces that.
//
// @Summary      Refresh the catalog cache
// @Tags         prompts
// @Accept       json
// @Success      202  {object}  map[string]string
// @Router       /api/sync [post]
func (h *PromptsHandler) Sync(c echo.Context) error {
	var req syncRequest
	_ = c.Bind(&req)
	if req.Market == "" {
		req.Market = "external"
	}

	h.queue.Enqueue(domain.SyncJob{
		Market:      req.Market,
		RequestedBy: h.sessions.Snapshot().Username,
		RequestedAt: time.Now().UTC(),
	})
	return c.JSON(http.StatusAccepted, map[string]string{"status": "sync scheduled"})
}
