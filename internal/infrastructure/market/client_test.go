package market

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wenturc/prompt-market/internal/core/domain"
)

// pagedServer serves a fixed-size catalog in skip/limit slices.
func pagedServer(t *testing.T, total int, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		if r.URL.Path != "/api/external/prompts" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		var items []string
		for i := skip; i < skip+limit && i < total; i++ {
			items = append(items, fmt.Sprintf(`{"id": %d, "title": "prompt %d"}`, i, i))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[" + strings.Join(items, ",") + "]"))
	}))
}

func TestFetchAll_AccumulatesUntilShortPage(t *testing.T) {
	calls := 0
	srv := pagedServer(t, 243, &calls)
	defer srv.Close()

	c := New(srv.Client(), srv.URL, "external", 100, 50, zerolog.Nop())

	got, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch all failed: %v", err)
	}
	if len(got) != 243 {
		t.Fatalf("expected 243 prompts, got %d", len(got))
	}
	if calls != 3 {
		t.Fatalf("expected 3 page fetches, got %d", calls)
	}
	if got[0].ExternalID != "0" || got[242].ExternalID != "242" {
		t.Fatalf("prompts out of order: first=%s last=%s", got[0].ExternalID, got[242].ExternalID)
	}
	if got[0].Source != "external" {
		t.Fatalf("source not stamped: %q", got[0].Source)
	}
}

func TestFetchAll_ExactMultipleNeedsOneExtraPage(t *testing.T) {
	calls := 0
	srv := pagedServer(t, 200, &calls)
	defer srv.Close()

	c := New(srv.Client(), srv.URL, "external", 100, 50, zerolog.Nop())

	got, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch all failed: %v", err)
	}
	if len(got) != 200 {
		t.Fatalf("expected 200 prompts, got %d", len(got))
	}
	// Third call returns the empty page that terminates the loop.
	if calls != 3 {
		t.Fatalf("expected 3 page fetches, got %d", calls)
	}
}

func TestFetchAll_PageCeiling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Always a full page, regardless of offset.
		var items []string
		for i := 0; i < 10; i++ {
			items = append(items, fmt.Sprintf(`{"id": %d}`, i))
		}
		_, _ = w.Write([]byte("[" + strings.Join(items, ",") + "]"))
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL, "external", 10, 5, zerolog.Nop())

	_, err := c.FetchAll(context.Background())
	if !errors.Is(err, domain.ErrPaginationLimitExceeded) {
		t.Fatalf("expected pagination limit error, got %v", err)
	}
}

func TestFetchPage_ServerErrorIsNotAGoError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL, "external", 100, 50, zerolog.Nop())

	page := c.FetchPage(context.Background(), 0, 100)
	if page.Success {
		t.Fatalf("expected failed page")
	}
	if page.Err == "" {
		t.Fatalf("expected error detail in page result")
	}
}

func TestFetchAll_FailedPageFailsAggregation(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		var items []string
		for i := 0; i < 100; i++ {
			items = append(items, fmt.Sprintf(`{"id": %d}`, i))
		}
		_, _ = w.Write([]byte("[" + strings.Join(items, ",") + "]"))
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL, "external", 100, 50, zerolog.Nop())

	if _, err := c.FetchAll(context.Background()); err == nil {
		t.Fatalf("expected aggregation to fail on a bad page")
	}
}
