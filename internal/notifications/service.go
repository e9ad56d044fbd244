package notifications

import (
	"context"

	"go.uber.org/zap"
)

// Notifier receives import outcome events
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// LogNotifier writes events to the structured log
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier backed by a zap logger
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the event
func (n *LogNotifier) Notify(ctx context.Context, event Event) {
	fields := []zap.Field{
		zap.String("title", event.Title),
		zap.String("detail", event.Detail),
	}
	if event.Kind != "" {
		fields = append(fields, zap.String("kind", event.Kind))
	}

	if event.IsError() {
		n.logger.Warn("Boundary import notification", fields...)
		return
	}
	n.logger.Info("Boundary import notification", fields...)
}

// Fanout delivers every event to each of its notifiers in order
type Fanout []Notifier

// Notify forwards the event
func (f Fanout) Notify(ctx context.Context, event Event) {
	for _, n := range f {
		if n != nil {
			n.Notify(ctx, event)
		}
	}
}
