// Package events fans committed ledger events out to subscribers.
package events

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chris/polyfunds-ledger/pkg/models"
)

// Publisher delivers a committed event to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event models.Event) error
}

// Multi publishes every event to all of its publishers.
type Multi []Publisher

// Publish calls every publisher and joins their errors.
func (m Multi) Publish(ctx context.Context, event models.Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogPublisher writes events to a structured logger. It is used when no broker is configured.
type LogPublisher struct {
	Logger *slog.Logger
}

// Publish logs the event.
func (p LogPublisher) Publish(ctx context.Context, event models.Event) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "ledger event",
		slog.Uint64("seq", event.Seq),
		slog.String("type", string(event.Type)),
		slog.String("account", event.Account),
		slog.Any("data", event.Data),
	)
	return nil
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, event models.Event) error

// Publish calls f.
func (f PublisherFunc) Publish(ctx context.Context, event models.Event) error {
	return f(ctx, event)
}
