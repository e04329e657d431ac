package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/wenturc/prompt-market/internal/core/domain"
	"github.com/wenturc/prompt-market/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes catalog sync jobs to a fixed set of workers using
// consistent hashing on the market name, so syncs for the same market never
// run concurrently or out of order.
type Dispatcher struct {
	workers []chan domain.SyncJob
	catalog ports.CatalogService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, catalog ports.CatalogService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.SyncJob, numWorkers),
		catalog: catalog,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.SyncJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its market. Non-blocking
// up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job domain.SyncJob) {
	d.workers[d.shardIndex(job.Market)] <- job
}

// shardIndex maps a market name deterministically to a worker index.
func (d *Dispatcher) shardIndex(market string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(market))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.SyncJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			if err := d.catalog.Sync(ctx, job); err != nil {
				d.log.Error().Err(err).
					Str("market", job.Market).
					Int("worker_id", id).
					Msg("catalog sync failed")
			}
		}
	}
}
