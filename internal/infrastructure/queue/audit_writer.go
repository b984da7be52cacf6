package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/emsapp/employee-records/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditWriter persists audit entries asynchronously through a fixed set of
// workers sharded by username, so entries for one actor are written in the
// order they were recorded. Record never blocks the request path beyond the
// channel buffer, and write failures are logged rather than propagated: the
// audit trail is fire-and-forget by contract.
type AuditWriter struct {
	workers []chan ports.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditWriter creates an AuditWriter with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditWriter(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditWriter {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	w := &AuditWriter{
		workers: make([]chan ports.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range w.workers {
		w.workers[i] = make(chan ports.AuditEntry, channelBuffer)
	}
	return w
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (w *AuditWriter) Start(ctx context.Context) {
	for i, ch := range w.workers {
		go w.runWorker(ctx, i, ch)
	}
}

// Record enqueues an entry for the worker responsible for its username.
func (w *AuditWriter) Record(entry ports.AuditEntry) {
	w.workers[w.shardIndex(entry.Username)] <- entry
}

// shardIndex maps a username deterministically to a worker index.
func (w *AuditWriter) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32()) % len(w.workers)
}

func (w *AuditWriter) runWorker(ctx context.Context, id int, ch <-chan ports.AuditEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := w.repo.Insert(ctx, entry); err != nil {
				w.log.Error().Err(err).
					Str("action", entry.Action).
					Str("username", entry.Username).
					Int("worker_id", id).
					Msg("audit write failed")
			}
		}
	}
}
