package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/wenturc/prompt-market/internal/core/domain"
)

type recordingCatalog struct {
	mu   sync.Mutex
	jobs []domain.SyncJob
	done chan struct{}
}

func (c *recordingCatalog) Sync(_ context.Context, job domain.SyncJob) error {
	c.mu.Lock()
	c.jobs = append(c.jobs, job)
	c.mu.Unlock()
	c.done <- struct{}{}
	return nil
}

func (c *recordingCatalog) List(context.Context, int, int) ([]domain.Prompt, error) {
	return nil, nil
}

func (c *recordingCatalog) Count(context.Context) (int64, error) { return 0, nil }

func waitN(t *testing.T, ch chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for job %d of %d", i+1, n)
		}
	}
}

func TestDispatcher_RunsEnqueuedJobs(t *testing.T) {
	catalog := &recordingCatalog{done: make(chan struct{}, 8)}
	d := NewDispatcher(2, catalog, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.SyncJob{Market: "external", RequestedBy: "admin"})
	waitN(t, catalog.done, 1)

	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	if len(catalog.jobs) != 1 || catalog.jobs[0].Market != "external" {
		t.Fatalf("unexpected jobs: %+v", catalog.jobs)
	}
}

func TestDispatcher_SameMarketSameShard(t *testing.T) {
	d := NewDispatcher(4, &recordingCatalog{done: make(chan struct{}, 1)}, zerolog.Nop())

	first := d.shardIndex("external")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("external"); got != first {
			t.Fatalf("shard index not deterministic: %d != %d", got, first)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_JobsForOneMarketRunInOrder(t *testing.T) {
	catalog := &recordingCatalog{done: make(chan struct{}, 16)}
	d := NewDispatcher(3, catalog, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 5; i++ {
		d.Enqueue(domain.SyncJob{Market: "external", RequestedBy: "u" + string(rune('0'+i))})
	}
	waitN(t, catalog.done, 5)

	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	for i, job := range catalog.jobs {
		if want := "u" + string(rune('0'+i)); job.RequestedBy != want {
			t.Fatalf("job %d out of order: got %q want %q", i, job.RequestedBy, want)
		}
	}
}

func TestDispatcher_StopsOnContextCancel(t *testing.T) {
	catalog := &recordingCatalog{done: make(chan struct{}, 1)}
	d := NewDispatcher(1, catalog, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()

	// Give the worker a moment to observe cancellation, then verify an
	// enqueued job is left unprocessed.
	time.Sleep(50 * time.Millisecond)
	d.Enqueue(domain.SyncJob{Market: "external"})

	select {
	case <-catalog.done:
		t.Fatalf("worker processed a job after cancellation")
	case <-time.After(100 * time.Millisecond):
	}
}
