package outbox

import "github.com/prometheus/client_golang/prometheus"

var (
	deliveredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "outbox",
		Name:      "events_delivered_total",
		Help:      "Outbox events successfully delivered to Kafka.",
	})
	deliveryFailedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "outbox",
		Name:      "events_failed_total",
		Help:      "Outbox delivery attempts that failed and will be retried.",
	})
)

func init() {
	prometheus.MustRegister(deliveredCounter, deliveryFailedCounter)
}
