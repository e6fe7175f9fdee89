package decorators

import (
	"context"
	"time"

	"github.com/Nazarious-ucu/weather-now/internal/models"
	"github.com/Nazarious-ucu/weather-now/internal/services/weather"
)

type metricsCollector interface {
	ObserveLatency(provider string, duration time.Duration)
	IncrementCounter(provider, result string)
}

// MetricsDecorator times a provider client and counts its outcomes.
type MetricsDecorator struct {
	next      weather.Client
	provider  models.Provider
	collector metricsCollector
}

func NewMetricsDecorator(
	next weather.Client,
	provider models.Provider,
	collector metricsCollector,
) *MetricsDecorator {
	return &MetricsDecorator{next: next, provider: provider, collector: collector}
}

func (m *MetricsDecorator) Fetch(ctx context.Context, q weather.Query) (models.WeatherReading, error) {
	start := time.Now()
	data, err := m.next.Fetch(ctx, q)
	m.collector.ObserveLatency(m.provider.String(), time.Since(start))
	m.collector.IncrementCounter(m.provider.String(), weather.Outcome(err))
	return data, err
}
