// File: internal/infra/worker/notifier.go
package worker

import (
	"context"

	"github.com/rs/zerolog"

	"rental-marketplace/internal/domain/ports/adapter"
)

var (
	_ adapter.Notifier = (*AsyncNotifier)(nil)
	_ adapter.Notifier = (*LogNotifier)(nil)
)

// AsyncNotifier hands deliveries to the pool so callers never wait on a
// provider round-trip. Submission errors (queue full) are reported back.
type AsyncNotifier struct {
	pool     *Pool
	delegate adapter.Notifier
}

func NewAsyncNotifier(pool *Pool, delegate adapter.Notifier) *AsyncNotifier {
	return &AsyncNotifier{pool: pool, delegate: delegate}
}

func (n *AsyncNotifier) Notify(ctx context.Context, recipient, subject, message string) error {
	return n.pool.Submit(func(ctx context.Context) error {
		return n.delegate.Notify(ctx, recipient, subject, message)
	})
}

// LogNotifier stands in for a real SMS/email provider; deliveries are
// written to the log.
type LogNotifier struct {
	log *zerolog.Logger
}

func NewLogNotifier(log *zerolog.Logger) *LogNotifier {
	l := log.With().Str("component", "notifier").Logger()
	return &LogNotifier{log: &l}
}

func (n *LogNotifier) Notify(ctx context.Context, recipient, subject, message string) error {
	n.log.Info().Str("recipient", recipient).Str("subject", subject).Msg(message)
	return nil
}
