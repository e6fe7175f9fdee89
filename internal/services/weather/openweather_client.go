package weather

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-now/internal/models"
)

const openWeatherMapName = "OpenWeatherMap"

// owmCode is the "cod" field, which OpenWeatherMap sends either as a number
// (success) or as a string (errors).
type owmCode string

func (c *owmCode) UnmarshalJSON(b []byte) error {
	*c = owmCode(bytes.Trim(b, `"`))
	return nil
}

type apiResponse struct {
	Cod     owmCode `json:"cod"`
	Message string  `json:"message"`
	Name    string  `json:"name"`
	Dt      int64   `json:"dt"`
	Sys     struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main *struct {
		Temp      float64  `json:"temp"`
		FeelsLike float64  `json:"feels_like"`
		TempMin   *float64 `json:"temp_min"`
		TempMax   *float64 `json:"temp_max"`
		Pressure  float64  `json:"pressure"`
		Humidity  int      `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// ClientOpenWeatherMap fetches current weather from the OpenWeatherMap API.
type ClientOpenWeatherMap struct {
	APIKey string
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

// NewClientOpenWeatherMap constructs a new OpenWeatherMap client.
func NewClientOpenWeatherMap(apiKey, apiURL string,
	httpClient HTTPClient, logger zerolog.Logger,
) *ClientOpenWeatherMap {
	return &ClientOpenWeatherMap{APIKey: apiKey, apiURL: apiURL, client: httpClient, logger: logger}
}

// Fetch retrieves current conditions for q.City in q.Units.
func (s *ClientOpenWeatherMap) Fetch(ctx context.Context, q Query) (models.WeatherReading, error) {
	params := url.Values{}
	params.Set("q", q.City)
	params.Set("appid", s.APIKey)
	params.Set("units", q.Units.String())
	if q.Lang != "" {
		params.Set("lang", q.Lang)
	}

	s.logger.Debug().
		Ctx(ctx).
		Str("city", q.City).
		Str("units", q.Units.String()).
		Msg("starting OpenWeatherMap request")

	status, body, err := get(ctx, s.client, s.logger, openWeatherMapName, s.apiURL, params)
	if err != nil {
		return models.WeatherReading{}, err
	}

	var raw apiResponse
	decodeErr := json.Unmarshal(body, &raw)

	// The body code wins over the HTTP status when both are present.
	code := status
	if decodeErr == nil && raw.Cod != "" {
		if n, convErr := strconv.Atoi(string(raw.Cod)); convErr == nil {
			code = n
		}
	}
	if status != http.StatusOK || code != http.StatusOK {
		if code == http.StatusOK {
			code = status
		}
		s.logger.Warn().
			Ctx(ctx).
			Str("city", q.City).
			Int("status_code", status).
			Str("cod", string(raw.Cod)).
			Str("message", raw.Message).
			Msg("OpenWeatherMap API returned an error")
		return models.WeatherReading{}, statusError(openWeatherMapName, q.City, code, raw.Message)
	}

	if decodeErr != nil {
		s.logger.Warn().
			Ctx(ctx).
			Err(decodeErr).
			Str("city", q.City).
			Msg("failed to decode OpenWeatherMap response")
		return models.WeatherReading{}, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, openWeatherMapName, decodeErr)
	}
	if raw.Main == nil || len(raw.Weather) == 0 {
		return models.WeatherReading{},
			fmt.Errorf("%w: %s: missing main or weather block", ErrMalformedResponse, openWeatherMapName)
	}

	city := raw.Name
	if city == "" {
		city = q.City
	}

	data := models.WeatherReading{
		City:        city,
		Country:     raw.Sys.Country,
		Temperature: raw.Main.Temp,
		FeelsLike:   raw.Main.FeelsLike,
		TempMin:     raw.Main.TempMin,
		TempMax:     raw.Main.TempMax,
		Humidity:    raw.Main.Humidity,
		Pressure:    raw.Main.Pressure,
		WindSpeed:   raw.Wind.Speed,
		Condition:   raw.Weather[0].Main,
		Description: raw.Weather[0].Description,
	}
	if raw.Dt > 0 {
		observed := time.Unix(raw.Dt, 0).UTC()
		data.ObservedAt = &observed
	}

	return data, nil
}
