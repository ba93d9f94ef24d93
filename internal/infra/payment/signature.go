package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ComputeOrderSignature returns the lowercase-hex HMAC-SHA256 the gateway
// attaches to a confirmed checkout: the key is the API secret, the message is
// "<orderID>|<paymentID>".
func ComputeOrderSignature(secret, orderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyOrderSignature compares in constant time to avoid timing side
// channels on the verification endpoint.
func VerifyOrderSignature(secret, orderID, paymentID, signature string) bool {
	expected := ComputeOrderSignature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks the header signature against
// HMAC-SHA256(webhookSecret, rawBody). Callers must pass the raw request
// body, not a re-serialized form.
func VerifyWebhookSignature(secret string, body []byte, signature string) bool {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
