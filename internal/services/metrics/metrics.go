package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_now"

// Metrics holds the provider call metrics of one run. They live in a private
// registry so a run can be exported to a textfile collector.
type Metrics struct {
	reg *prometheus.Registry

	ProviderRequestsTotal   *prometheus.CounterVec
	ProviderRequestDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),

		ProviderRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_requests_total",
				Help:      "Weather provider requests by outcome",
			},
			[]string{"provider", "result"},
		),

		ProviderRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_request_duration_seconds",
				Help:      "Weather provider request latencies",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
	}

	m.reg.MustRegister(m.ProviderRequestsTotal, m.ProviderRequestDuration)
	return m
}

func (m *Metrics) ObserveLatency(provider string, d time.Duration) {
	m.ProviderRequestDuration.WithLabelValues(provider).Observe(d.Seconds())
}

func (m *Metrics) IncrementCounter(provider, result string) {
	m.ProviderRequestsTotal.WithLabelValues(provider, result).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// WriteTextfile dumps the registry in the text exposition format through a
// temp file and rename.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
