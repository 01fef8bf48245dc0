package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RegistrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "gatherly_registrations_total", Help: "Total successful event registrations"},
	)
	CheckInsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "gatherly_checkins_total", Help: "Total attendee check-ins"},
	)
	CancellationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "gatherly_cancellations_total", Help: "Total cancelled registrations"},
	)
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "gatherly_http_requests_total", Help: "HTTP requests by method and status"},
		[]string{"method", "status"},
	)
)

func Register() {
	prometheus.MustRegister(RegistrationsTotal, CheckInsTotal, CancellationsTotal, RequestsTotal)
}
