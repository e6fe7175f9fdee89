// Package cli turns command-line arguments into a weather lookup and maps
// the outcome onto a process exit code.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Nazarious-ucu/weather-now/internal/app"
	"github.com/Nazarious-ucu/weather-now/internal/config"
	handlerWeather "github.com/Nazarious-ucu/weather-now/internal/handlers/weather"
	"github.com/Nazarious-ucu/weather-now/internal/models"
	metricsSvc "github.com/Nazarious-ucu/weather-now/internal/services/metrics"
	"github.com/Nazarious-ucu/weather-now/pkg/logger"
)

const serviceName = "weather-now"

type flags struct {
	units    string
	provider string
	lang     string
	apiKey   string
	format   string
	logLevel string
	envFile  string
}

// NewRootCommand builds the weather-now command. The report goes to stdout,
// help to stdout, and diagnostics to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   serviceName + " <city>",
		Short: "Show current weather for a city",
		Long: `Show current weather conditions for a city.

The API key is read from the environment variable of the selected provider:
  openweathermap  OPENWEATHER_API_KEY (default)
  weatherapi      WEATHER_API_KEY
  weatherbit      WEATHER_BIT_API_KEY`,
		Example: `  weather-now "Boston" --units imperial
  weather-now "London,UK" --format detailed
  weather-now Tirana --provider weatherbit --lang sq`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 || strings.TrimSpace(strings.Join(args, " ")) == "" {
				return usageError(fmt.Errorf("missing city name"))
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f, strings.Join(args, " "), cmd.OutOrStdout(), stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	fl := cmd.Flags()
	fl.StringVarP(&f.units, "units", "u", models.Metric.String(), "units: metric, imperial or standard")
	fl.StringVarP(&f.provider, "provider", "p", models.OpenWeatherMap.String(),
		"weather provider: openweathermap, weatherapi or weatherbit")
	fl.StringVarP(&f.lang, "lang", "l", "en", "language for the condition text")
	fl.StringVar(&f.apiKey, "api-key", "", "API key, overrides the provider's environment variable")
	fl.StringVarP(&f.format, "format", "f", string(handlerWeather.FormatLine), "output: line, detailed or json")
	fl.StringVar(&f.logLevel, "log-level", "", "diagnostic log level: debug, info, warn or error (default from WEATHER_LOG_LEVEL)")
	fl.StringVar(&f.envFile, "env-file", "", "load environment variables from this dotenv file first")

	return cmd
}

func run(ctx context.Context, f flags, city string, stdout, stderr io.Writer) error {
	units, err := models.ParseUnits(f.units)
	if err != nil {
		return usageError(err)
	}
	provider, err := models.ParseProvider(f.provider)
	if err != nil {
		return usageError(err)
	}
	format, err := handlerWeather.ParseFormat(f.format)
	if err != nil {
		return usageError(err)
	}

	cfg, err := config.NewConfig(f.envFile)
	if err != nil {
		return &ExitError{Code: ExitConfig, Message: "configuration error: " + err.Error()}
	}

	level := cfg.Log.Level
	if f.logLevel != "" {
		level = f.logLevel
	}
	l, closeLog, err := logger.NewLogger(stderr, level, cfg.Log.FilePath, serviceName)
	if err != nil {
		if f.logLevel != "" {
			return usageError(fmt.Errorf("invalid log level %q: %w", level, err))
		}
		return &ExitError{
			Code:    ExitConfig,
			Message: fmt.Sprintf("configuration error: invalid WEATHER_LOG_LEVEL %q: %v", level, err),
		}
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			_, _ = fmt.Fprintf(stderr, "%s: close log file: %v\n", serviceName, cerr)
		}
	}()

	a := app.New(*cfg, l, metricsSvc.NewMetrics(), stdout)
	return a.Run(ctx, app.Options{
		City:     city,
		Units:    units,
		Provider: provider,
		Lang:     f.lang,
		Format:   format,
		APIKey:   f.apiKey,
	})
}

// Execute runs the command with args and returns the process exit code.
// Errors are reported on stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	code := exitCode(err)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", serviceName, err)
		if code == ExitUsage {
			_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", serviceName)
		}
	}
	return code
}
