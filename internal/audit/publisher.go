package audit

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"stargate/pkg/requestcontext"
)

// Sink receives stamped events.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher stamps events with an id, time and request id, then fans them
// out to every sink. A failing sink does not stop the others.
type Publisher struct {
	sinks []Sink
}

func NewPublisher(sinks ...Sink) *Publisher {
	return &Publisher{sinks: sinks}
}

func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.ID == "" {
		base.ID = uuid.NewString()
	}
	if base.Timestamp.IsZero() {
		base.Timestamp = requestcontext.Now(ctx)
	}
	if base.RequestID == "" {
		base.RequestID = requestcontext.RequestID(ctx)
	}
	var errs []error
	for _, s := range p.sinks {
		if err := s.Append(ctx, base); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
