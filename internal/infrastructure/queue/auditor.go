package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/minishop/store-api/internal/api/metrics"
	"github.com/minishop/store-api/internal/core/domain"
	"github.com/minishop/store-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Auditor records account events asynchronously. Events are sharded to a
// fixed set of workers by user id, preserving per-user ordering in the
// audit trail. A full worker channel drops the event rather than blocking
// the request path.
type Auditor struct {
	workers []chan domain.AuditEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditor creates an Auditor with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditor(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Auditor {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	a := &Auditor{
		workers: make([]chan domain.AuditEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range a.workers {
		a.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return a
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (a *Auditor) Start(ctx context.Context) {
	for i, ch := range a.workers {
		go a.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event to the worker responsible for its user id.
func (a *Auditor) Record(event domain.AuditEvent) {
	idx := a.shardIndex(event.UserID)
	select {
	case a.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(a.workers[idx])))
	default:
		metrics.AuditEventsTotal.WithLabelValues(event.Action, "dropped").Inc()
		a.log.Warn().Str("user_id", event.UserID).Str("action", event.Action).Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (a *Auditor) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(a.workers)
}

func (a *Auditor) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := a.repo.Insert(ctx, event); err != nil {
				metrics.AuditEventsTotal.WithLabelValues(event.Action, "error").Inc()
				a.log.Error().Err(err).
					Str("user_id", event.UserID).
					Str("action", event.Action).
					Int("worker_id", id).
					Msg("audit event persistence failed")
				continue
			}
			metrics.AuditEventsTotal.WithLabelValues(event.Action, "ok").Inc()
		}
	}
}
