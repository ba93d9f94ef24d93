package payment

import "rental-marketplace/internal/domain/ports/adapter"

var _ adapter.SignatureVerifier = (*Verifier)(nil)

// Verifier binds the configured gateway secrets to the SignatureVerifier port.
type Verifier struct {
	keySecret     string
	webhookSecret string
}

func NewVerifier(keySecret, webhookSecret string) *Verifier {
	return &Verifier{keySecret: keySecret, webhookSecret: webhookSecret}
}

func (v *Verifier) VerifyOrder(orderID, paymentID, signature string) bool {
	return VerifyOrderSignature(v.keySecret, orderID, paymentID, signature)
}

func (v *Verifier) VerifyWebhook(body []byte, signature string) bool {
	return VerifyWebhookSignature(v.webhookSecret, body, signature)
}

func (v *Verifier) WebhookSigningConfigured() bool { return v.webhookSecret != "" }
