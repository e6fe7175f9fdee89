package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-now/internal/models"
)

const weatherBitName = "WeatherBit"

type bitWeatherAPIResponse struct {
	Data []struct {
		CityName    string  `json:"city_name"`
		CountryCode string  `json:"country_code"`
		Ts          int64   `json:"ts"`
		Temp        float64 `json:"temp"`
		AppTemp     float64 `json:"app_temp"`
		Rh          float64 `json:"rh"`
		Pres        float64 `json:"pres"`
		WindSpd     float64 `json:"wind_spd"`
		Weather     struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"data"`
}

type bitWeatherError struct {
	Error string `json:"error"`
}

// weatherBitUnits maps our unit names onto Weatherbit's single-letter codes.
var weatherBitUnits = map[models.Units]string{
	models.Metric:   "M",
	models.Imperial: "I",
	models.Standard: "S",
}

// ClientWeatherBit fetches current weather from the Weatherbit API.
type ClientWeatherBit struct {
	APIKey string
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

// NewClientWeatherBit constructs a new WeatherBit client.
func NewClientWeatherBit(
	apiKey, apiURL string,
	httpClient HTTPClient,
	logger zerolog.Logger,
) *ClientWeatherBit {
	return &ClientWeatherBit{APIKey: apiKey, apiURL: apiURL, client: httpClient, logger: logger}
}

// Fetch retrieves weather data for a given city.
func (s *ClientWeatherBit) Fetch(ctx context.Context, q Query) (models.WeatherReading, error) {
	units, ok := weatherBitUnits[q.Units]
	if !ok {
		units = weatherBitUnits[models.Metric]
	}

	params := url.Values{}
	params.Set("city", q.City)
	params.Set("key", s.APIKey)
	params.Set("units", units)
	if q.Lang != "" {
		params.Set("lang", q.Lang)
	}

	status, body, err := get(ctx, s.client, s.logger, weatherBitName, s.apiURL, params)
	if err != nil {
		return models.WeatherReading{}, err
	}

	// Weatherbit answers an unknown city with 204 and no body.
	if status == http.StatusNoContent {
		status = http.StatusNotFound
	}
	if status != http.StatusOK {
		var apiErr bitWeatherError
		_ = json.Unmarshal(body, &apiErr)
		s.logger.Warn().
			Ctx(ctx).
			Str("city", q.City).
			Int("status_code", status).
			Msg("WeatherBit API returned non-200 status")
		return models.WeatherReading{}, statusError(weatherBitName, q.City, status, apiErr.Error)
	}

	var raw bitWeatherAPIResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		s.logger.Warn().
			Err(err).
			Ctx(ctx).
			Str("city", q.City).
			Msg("failed to decode WeatherBit response")
		return models.WeatherReading{}, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, weatherBitName, err)
	}

	if len(raw.Data) == 0 {
		s.logger.Warn().
			Ctx(ctx).
			Str("city", q.City).
			Msg("no data in WeatherBit response")
		return models.WeatherReading{}, statusError(weatherBitName, q.City, http.StatusNotFound, "empty data")
	}

	entry := raw.Data[0]
	data := models.WeatherReading{
		City:        entry.CityName,
		Country:     entry.CountryCode,
		Temperature: entry.Temp,
		FeelsLike:   entry.AppTemp,
		Humidity:    int(entry.Rh + 0.5),
		Pressure:    entry.Pres,
		WindSpeed:   entry.WindSpd,
		Condition:   entry.Weather.Description,
	}
	if data.City == "" {
		data.City = q.City
	}
	if entry.Ts > 0 {
		observed := time.Unix(entry.Ts, 0).UTC()
		data.ObservedAt = &observed
	}

	return data, nil
}
