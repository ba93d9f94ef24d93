package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		ordersCreated,
		paymentVerifications,
		creditsPurchased,
	)
}

var (
	ordersCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_orders_created_total",
			Help: "Credit purchase orders registered with the gateway, by provider.",
		},
		[]string{"provider"},
	)

	// result: completed|replay|rejected|error
	paymentVerifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_verifications_total",
			Help: "Checkout verification attempts by result.",
		},
		[]string{"result"},
	)

	creditsPurchased = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "credits_purchased_total",
			Help: "Total credits merged into user balances.",
		},
	)
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncOrdersCreated(provider string) {
	ordersCreated.WithLabelValues(norm(provider)).Inc()
}

func IncVerifications(result string) {
	paymentVerifications.WithLabelValues(norm(result)).Inc()
}

func AddCreditsPurchased(n int64) {
	if n > 0 {
		creditsPurchased.Add(float64(n))
	}
}
