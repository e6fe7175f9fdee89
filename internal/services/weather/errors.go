package weather

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrEmptyCity         = errors.New("city must not be empty")
	ErrCityNotFound      = errors.New("city not found")
	ErrUnauthorized      = errors.New("API key rejected by provider")
	ErrUpstream          = errors.New("weather provider error")
	ErrMalformedResponse = errors.New("malformed weather response")
)

// Outcome names the class of err for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrCityNotFound):
		return "not_found"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, ErrUpstream):
		return "upstream_error"
	case errors.Is(err, ErrEmptyCity):
		return "invalid"
	default:
		return "network_error"
	}
}

// statusError maps a non-success provider answer onto the sentinel errors.
// detail is the provider's own message, if any.
func statusError(provider, city string, status int, detail string) error {
	if detail == "" {
		detail = http.StatusText(status)
	}
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %q (%s: %s)", ErrCityNotFound, city, provider, detail)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s: %s", ErrUnauthorized, provider, detail)
	default:
		return fmt.Errorf("%w: %s returned status %d: %s", ErrUpstream, provider, status, detail)
	}
}
