package audit

import (
	"context"
	"log/slog"
)

// LogSink writes events to the structured log with log_type=audit.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Append(ctx context.Context, event Event) error {
	args := []any{
		"event_id", event.ID,
		"person_id", event.PersonID,
		"person_name", event.PersonName,
		"request_id", event.RequestID,
		"log_type", "audit",
	}
	for k, v := range event.Attributes {
		args = append(args, k, v)
	}
	s.logger.InfoContext(ctx, string(event.Action), args...)
	return nil
}
