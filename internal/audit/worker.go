package audit

import (
	"context"
	"log/slog"
	"time"
)

// Queue is a Sink that hands events to a Worker without blocking the
// request path. When the buffer is full the event is dropped and logged.
type Queue struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewQueue(size int, logger *slog.Logger) *Queue {
	return &Queue{inbox: make(chan Event, size), logger: logger}
}

func (q *Queue) Append(ctx context.Context, event Event) error {
	select {
	case q.inbox <- event:
	default:
		q.logger.WarnContext(ctx, "audit queue full, dropping event",
			"event_id", event.ID,
			"action", event.Action,
		)
	}
	return nil
}

// Worker drains a Queue into a downstream sink.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, q *Queue, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: q.inbox, logger: logger}
}

// drainTimeout bounds how long Run keeps publishing queued events after
// its context is done.
const drainTimeout = 5 * time.Second

// Run forwards events until ctx is done, then publishes whatever is still
// queued. Sink failures are logged, not fatal; events are best effort after
// the change has committed.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain(ctx)
			return ctx.Err()
		case event := <-w.inbox:
			w.publish(ctx, event)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
	defer cancel()

	published := 0
	for {
		select {
		case event := <-w.inbox:
			if drainCtx.Err() != nil {
				w.logger.WarnContext(ctx, "audit drain timed out, dropping queued events",
					"dropped", len(w.inbox)+1,
				)
				return
			}
			w.publish(drainCtx, event)
			published++
		default:
			if published > 0 {
				w.logger.InfoContext(ctx, "drained audit queue on shutdown", "published", published)
			}
			return
		}
	}
}

func (w *Worker) publish(ctx context.Context, event Event) {
	if err := w.sink.Append(ctx, event); err != nil {
		w.logger.ErrorContext(ctx, "failed to publish audit event",
			"event_id", event.ID,
			"action", event.Action,
			"error", err,
		)
	}
}
