package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the certification lifecycle.
type Metrics struct {
	Issued  prometheus.Counter
	Renewed prometheus.Counter
	Revoked prometheus.Counter
	Expired prometheus.Counter

	VerifyTotal    *prometheus.CounterVec
	VerifyDuration prometheus.Histogram
}

// New creates and registers all certification metrics.
func New() *Metrics {
	return &Metrics{
		Issued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "attest_certifications_issued_total",
			Help: "Total number of certifications issued, including re-issuance over non-active records",
		}),
		Renewed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "attest_certifications_renewed_total",
			Help: "Total number of successful renewals",
		}),
		Revoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "attest_certifications_revoked_total",
			Help: "Total number of revocations",
		}),
		Expired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "attest_certifications_expired_total",
			Help: "Total number of explicit expiration transitions",
		}),
		VerifyTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attest_verifications_total",
			Help: "Verification outcomes by result",
		}, []string{"result"}),
		VerifyDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "attest_verification_duration_ms",
			Help:    "Latency of verification lookups in milliseconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		}),
	}
}
