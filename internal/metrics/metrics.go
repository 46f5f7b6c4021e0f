package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ReservationsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "meninx",
		Name:      "reservations_created_total",
		Help:      "Total number of reservations persisted.",
	})
	AvailabilityChecks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "meninx",
		Name:      "availability_checks_total",
		Help:      "Total number of availability checks, by outcome.",
	}, []string{"outcome"})
	NotificationsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "meninx",
		Name:      "notifications_sent_total",
		Help:      "Total notification dispatch attempts, by channel and status.",
	}, []string{"channel", "status"})
)

func init() {
	prometheus.MustRegister(ReservationsCreated, AvailabilityChecks, NotificationsSent)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
