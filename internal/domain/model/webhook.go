package model

type WebhookEventKind int

const (
	WebhookUnhandled WebhookEventKind = iota
	WebhookPaymentCaptured
	WebhookPaymentFailed
	WebhookRefundCreated
)

// WebhookEvent is the closed variant decoded once at the transport boundary.
// Handlers match on Kind exhaustively; unknown provider event names land in
// WebhookUnhandled instead of silently falling through.
type WebhookEvent struct {
	Kind      WebhookEventKind
	RawEvent  string
	OrderID   string
	PaymentID string
	Method    string
}
