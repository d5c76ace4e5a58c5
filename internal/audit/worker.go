package audit

import (
	"context"
	"log/slog"
)

// Appender is any sink that accepts audit events.
type Appender interface {
	Append(ctx context.Context, event Event) error
}

// Worker consumes audit events from the inbox and fans them out to every
// configured sink. A failing sink is logged and skipped; the trail is
// best-effort.
type Worker struct {
	inbox  <-chan Event
	sinks  []Appender
	logger *slog.Logger
}

func NewWorker(inbox <-chan Event, logger *slog.Logger, sinks ...Appender) *Worker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Worker{inbox: inbox, sinks: sinks, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			for _, sink := range w.sinks {
				if err := sink.Append(ctx, event); err != nil {
					w.logger.ErrorContext(ctx, "audit sink append failed",
						"action", string(event.Action),
						"error", err,
					)
				}
			}
		}
	}
}
