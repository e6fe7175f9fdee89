package weather

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-now/internal/models"
)

// Query is what the user asked for.
type Query struct {
	City  string
	Units models.Units
	Lang  string
}

type Client interface {
	Fetch(ctx context.Context, q Query) (models.WeatherReading, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewClient returns the client for provider p.
func NewClient(
	p models.Provider,
	apiKey, apiURL string,
	httpClient HTTPClient,
	logger zerolog.Logger,
) (Client, error) {
	switch p {
	case models.OpenWeatherMap:
		return NewClientOpenWeatherMap(apiKey, apiURL, httpClient, logger), nil
	case models.WeatherAPI:
		return NewClientWeatherAPI(apiKey, apiURL, httpClient, logger), nil
	case models.WeatherBit:
		return NewClientWeatherBit(apiKey, apiURL, httpClient, logger), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", p)
	}
}

// Service performs exactly one lookup against one provider. There is no
// fallback to other providers and no retry.
type Service struct {
	logger   zerolog.Logger
	provider models.Provider
	client   Client
}

func NewService(logger zerolog.Logger, provider models.Provider, client Client) *Service {
	return &Service{logger: logger, provider: provider, client: client}
}

func (s *Service) GetByCity(ctx context.Context, q Query) (models.WeatherReading, error) {
	q.City = strings.TrimSpace(q.City)
	if q.City == "" {
		return models.WeatherReading{}, ErrEmptyCity
	}
	if q.Units == "" {
		q.Units = models.Metric
	}

	start := time.Now()
	s.logger.Info().
		Ctx(ctx).
		Str("provider", s.provider.String()).
		Str("city", q.City).
		Str("units", q.Units.String()).
		Msg("calling Fetch")

	data, err := s.client.Fetch(ctx, q)
	if err != nil {
		s.logger.Warn().
			Ctx(ctx).
			Str("provider", s.provider.String()).
			Str("city", q.City).
			Str("outcome", Outcome(err)).
			Err(err).
			Msg("fetch failed")
		return models.WeatherReading{}, err
	}

	data.Units = q.Units
	data.Provider = s.provider

	s.logger.Info().
		Ctx(ctx).
		Str("provider", s.provider.String()).
		Str("city", data.City).
		Dur("duration", time.Since(start)).
		Msg("fetch succeeded")
	return data, nil
}
