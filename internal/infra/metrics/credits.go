package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		creditConsumptions,
		creditsConsumed,
	)
}

var (
	// result: charged|free_repeat|insufficient|expired|not_found|error
	creditConsumptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credit_consumptions_total",
			Help: "Contact unlock attempts by result.",
		},
		[]string{"result"},
	)

	creditsConsumed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "credits_consumed_total",
			Help: "Total credits debited for contact unlocks.",
		},
	)
)

func IncConsumptions(result string) {
	creditConsumptions.WithLabelValues(norm(result)).Inc()
}

func IncCreditsConsumed() {
	creditsConsumed.Inc()
}
