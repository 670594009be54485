package telemetry

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	JobsCreated          = prometheus.NewCounter(prometheus.CounterOpts{Name: "hireboard_jobs_created_total", Help: "Job postings created"})
	JobsPublished        = prometheus.NewCounter(prometheus.CounterOpts{Name: "hireboard_jobs_published_total", Help: "Job postings published"})
	JobsClosed           = prometheus.NewCounter(prometheus.CounterOpts{Name: "hireboard_jobs_closed_total", Help: "Job postings closed"})
	ApplicationsReceived = prometheus.NewCounter(prometheus.CounterOpts{Name: "hireboard_applications_received_total", Help: "Candidate applications accepted"})
	ApplicationsRejected = prometheus.NewCounter(prometheus.CounterOpts{Name: "hireboard_applications_rejected_total", Help: "Candidate applications failing validation"})
	LoginFailures        = prometheus.NewCounter(prometheus.CounterOpts{Name: "hireboard_login_failures_total", Help: "Failed login attempts"})
)

// Handler exposes the /metrics HTTP handler with a singleton registration.
func Handler() http.Handler {
	once.Do(func() {
		prometheus.MustRegister(
			JobsCreated,
			JobsPublished,
			JobsClosed,
			ApplicationsReceived,
			ApplicationsRejected,
			LoginFailures,
		)
	})
	return promhttp.Handler()
}
