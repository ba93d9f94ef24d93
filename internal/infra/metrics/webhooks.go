package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(webhookEvents)
}

// event: payment.captured|payment.failed|refund.created|unhandled
// result: processed|bad_signature|bad_payload|error
var webhookEvents = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gateway_webhook_events_total",
		Help: "Gateway webhook deliveries by event and outcome.",
	},
	[]string{"event", "result"},
)

func IncWebhookEvents(event, result string) {
	webhookEvents.WithLabelValues(norm(event), norm(result)).Inc()
}
