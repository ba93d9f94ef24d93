package adapter

import "context"

// Notifier delivers out-of-band messages (SMS/email) for viewing
// confirmations and ticket acknowledgements. Delivery is best-effort and
// always dispatched off the request path.
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, message string) error
}
