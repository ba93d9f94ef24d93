package payment

import (
	"encoding/json"

	"rental-marketplace/internal/domain"
	"rental-marketplace/internal/domain/model"
)

type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Method  string `json:"method"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// ParseWebhookEvent decodes the gateway payload
// {event, payload: {payment: {entity: {...}}}} into the closed event variant.
func ParseWebhookEvent(body []byte) (*model.WebhookEvent, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, domain.ErrInvalidArgument
	}
	ev := &model.WebhookEvent{
		RawEvent:  env.Event,
		OrderID:   env.Payload.Payment.Entity.OrderID,
		PaymentID: env.Payload.Payment.Entity.ID,
		Method:    env.Payload.Payment.Entity.Method,
	}
	switch env.Event {
	case "payment.captured":
		ev.Kind = model.WebhookPaymentCaptured
	case "payment.failed":
		ev.Kind = model.WebhookPaymentFailed
	case "refund.created":
		ev.Kind = model.WebhookRefundCreated
	default:
		ev.Kind = model.WebhookUnhandled
	}
	return ev, nil
}
