package adapter

import "context"

// PaymentGateway is the hex port for the payment provider. The engine's
// transition logic is identical whether a real gateway or the local surrogate
// is plugged in; mode selection happens once, at construction.
type PaymentGateway interface {
	Name() string
	// CreateOrder registers a payment intent with the provider. Amount is in
	// minor currency units (paise).
	CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string, notes map[string]string) (orderID string, err error)
}

// SignatureVerifier checks gateway-issued signatures. Kept as a port so the
// ledger engine's verification flow can be tested without real secrets.
type SignatureVerifier interface {
	// VerifyOrder checks the checkout signature HMAC-SHA256(secret, orderID+"|"+paymentID).
	VerifyOrder(orderID, paymentID, signature string) bool
	// VerifyWebhook checks the header signature against the raw request body.
	VerifyWebhook(body []byte, signature string) bool
	// WebhookSigningConfigured reports whether unsigned webhook payloads must
	// be rejected. False only in development/offline setups.
	WebhookSigningConfigured() bool
}
