package app

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"go.uber.org/zap"

	"github.com/Nazarious-ucu/weather-now/internal/config"
	handlerWeather "github.com/Nazarious-ucu/weather-now/internal/handlers/weather"
	"github.com/Nazarious-ucu/weather-now/internal/models"
	loggerT "github.com/Nazarious-ucu/weather-now/internal/services/logger"
	metricsSvc "github.com/Nazarious-ucu/weather-now/internal/services/metrics"
	serviceWeather "github.com/Nazarious-ucu/weather-now/internal/services/weather"
	"github.com/Nazarious-ucu/weather-now/internal/services/weather/decorators"
	fLogger "github.com/Nazarious-ucu/weather-now/pkg/logger"
)

// Options is one lookup as requested on the command line.
type Options struct {
	City     string
	Units    models.Units
	Provider models.Provider
	Lang     string
	Format   handlerWeather.Format
	APIKey   string
}

// ServiceContainer holds the dependencies built for a single run.
type ServiceContainer struct {
	Handler      *handlerWeather.Handler
	closeHTTPLog func() error
}

// App ties together config, logger, and metrics for one lookup.
type App struct {
	cfg config.Config
	l   zerolog.Logger
	m   *metricsSvc.Metrics
	out io.Writer
}

// New prepares an App that prints its report to out.
func New(cfg config.Config, logger zerolog.Logger, met *metricsSvc.Metrics, out io.Writer) *App {
	return &App{
		cfg: cfg,
		l:   logger,
		m:   met,
		out: out,
	}
}

// Run validates the key, performs the lookup and prints the report.
func (a *App) Run(ctx context.Context, opts Options) error {
	a.cfg.OverrideAPIKey(opts.Provider, opts.APIKey)

	// Fail before anything touches the network.
	apiKey, apiURL, err := a.cfg.Provider(opts.Provider)
	if err != nil {
		a.l.Debug().Err(err).Str("provider", opts.Provider.String()).Msg("provider not configured")
		return err
	}

	srvContainer, err := a.init(opts, apiKey, apiURL)
	if err != nil {
		return err
	}
	defer a.shutdown(srvContainer)

	return srvContainer.Handler.ShowWeather(ctx, serviceWeather.Query{
		City:  opts.City,
		Units: opts.Units,
		Lang:  opts.Lang,
	})
}

// init sets up HTTP tracing, the provider client, metrics and the handler.
func (a *App) init(opts Options, apiKey, apiURL string) (ServiceContainer, error) {
	a.l.Debug().
		Str("provider", opts.Provider.String()).
		Str("api_url", apiURL).
		Str("units", opts.Units.String()).
		Msg("initializing weather lookup")

	fileLogger, closeHTTPLog, err := fLogger.NewFileLogger(a.cfg.Log.HTTPLogPath)
	if err != nil {
		a.l.Error().Err(err).Str("path", a.cfg.Log.HTTPLogPath).Msg("failed to create HTTP log, tracing disabled")
		fileLogger, closeHTTPLog = zap.NewNop(), func() error { return nil }
	}

	// HTTP client logging
	roundTripper := loggerT.NewRoundTripper(fileLogger)
	httpLogClient := &http.Client{Transport: roundTripper}

	client, err := serviceWeather.NewClient(opts.Provider, apiKey, apiURL, httpLogClient, a.l)
	if err != nil {
		_ = closeHTTPLog()
		return ServiceContainer{}, err
	}
	measured := decorators.NewMetricsDecorator(client, opts.Provider, a.m)
	weatherService := serviceWeather.NewService(a.l, opts.Provider, measured)

	return ServiceContainer{
		Handler:      handlerWeather.NewHandler(weatherService, a.out, opts.Format),
		closeHTTPLog: closeHTTPLog,
	}, nil
}

// shutdown closes the HTTP log and exports metrics when configured.
func (a *App) shutdown(srvContainer ServiceContainer) {
	if err := srvContainer.closeHTTPLog(); err != nil {
		a.l.Error().Err(err).Str("path", a.cfg.Log.HTTPLogPath).Msg("failed to close HTTP log")
	}

	if a.cfg.MetricsFile == "" {
		return
	}
	if err := a.m.WriteTextfile(a.cfg.MetricsFile); err != nil {
		a.l.Error().Err(err).Str("path", a.cfg.MetricsFile).Msg("failed to write metrics file")
		return
	}
	a.l.Debug().Str("path", a.cfg.MetricsFile).Msg("metrics written")
}
