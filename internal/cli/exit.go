package cli

import (
	"errors"

	"github.com/Nazarious-ucu/weather-now/internal/config"
	serviceWeather "github.com/Nazarious-ucu/weather-now/internal/services/weather"
)

// Process exit codes.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitUsage        = 2
	ExitConfig       = 3
	ExitCityNotFound = 4
	ExitUnauthorized = 5
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

// exitCode maps a failed run onto its exit code.
func exitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, config.ErrMissingAPIKey):
		return ExitConfig
	case errors.Is(err, serviceWeather.ErrCityNotFound):
		return ExitCityNotFound
	case errors.Is(err, serviceWeather.ErrUnauthorized):
		return ExitUnauthorized
	case errors.Is(err, serviceWeather.ErrEmptyCity):
		return ExitUsage
	default:
		return ExitFailure
	}
}
