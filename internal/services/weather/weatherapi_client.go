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

const (
	weatherAPIName = "WeatherAPI"

	// WeatherAPI answers 400 with this code when q matches no location.
	weatherAPINoLocation = 1006

	kelvinOffset = 273.15
	kphPerMS     = 3.6
)

type weatherAPIResponse struct {
	Location struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"location"`
	Current *struct {
		LastUpdatedEpoch int64   `json:"last_updated_epoch"`
		TempC            float64 `json:"temp_c"`
		TempF            float64 `json:"temp_f"`
		FeelsLikeC       float64 `json:"feelslike_c"`
		FeelsLikeF       float64 `json:"feelslike_f"`
		WindKPH          float64 `json:"wind_kph"`
		WindMPH          float64 `json:"wind_mph"`
		PressureMB       float64 `json:"pressure_mb"`
		Humidity         int     `json:"humidity"`
		Condition        struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

type weatherAPIError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ClientWeatherAPI fetches current weather from WeatherAPI.com.
type ClientWeatherAPI struct {
	APIKey string
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

func NewClientWeatherAPI(apiKey, apiURL string, httpClient HTTPClient, logger zerolog.Logger) *ClientWeatherAPI {
	return &ClientWeatherAPI{APIKey: apiKey, client: httpClient, logger: logger, apiURL: apiURL}
}

// Fetch retrieves current conditions for q.City. WeatherAPI has no units
// parameter; it always sends both scales, so the conversion happens here.
func (s *ClientWeatherAPI) Fetch(ctx context.Context, q Query) (models.WeatherReading, error) {
	params := url.Values{}
	params.Set("key", s.APIKey)
	params.Set("q", q.City)
	if q.Lang != "" {
		params.Set("lang", q.Lang)
	}

	status, body, err := get(ctx, s.client, s.logger, weatherAPIName, s.apiURL, params)
	if err != nil {
		return models.WeatherReading{}, err
	}

	if status != http.StatusOK {
		var apiErr weatherAPIError
		_ = json.Unmarshal(body, &apiErr)
		if apiErr.Error.Code == weatherAPINoLocation {
			status = http.StatusNotFound
		}
		s.logger.Warn().
			Ctx(ctx).
			Str("city", q.City).
			Int("status_code", status).
			Int("api_code", apiErr.Error.Code).
			Msg("WeatherAPI returned non-200 status")
		return models.WeatherReading{}, statusError(weatherAPIName, q.City, status, apiErr.Error.Message)
	}

	var raw weatherAPIResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		s.logger.Warn().
			Ctx(ctx).
			Err(err).
			Str("city", q.City).
			Msg("failed to decode WeatherAPI response")
		return models.WeatherReading{}, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, weatherAPIName, err)
	}
	if raw.Current == nil {
		return models.WeatherReading{}, fmt.Errorf("%w: %s: missing current block", ErrMalformedResponse, weatherAPIName)
	}

	cur := raw.Current
	data := models.WeatherReading{
		City:      raw.Location.Name,
		Country:   raw.Location.Country,
		Humidity:  cur.Humidity,
		Pressure:  cur.PressureMB,
		Condition: cur.Condition.Text,
	}
	if data.City == "" {
		data.City = q.City
	}

	switch q.Units {
	case models.Imperial:
		data.Temperature, data.FeelsLike = cur.TempF, cur.FeelsLikeF
		data.WindSpeed = cur.WindMPH
	case models.Standard:
		data.Temperature, data.FeelsLike = cur.TempC+kelvinOffset, cur.FeelsLikeC+kelvinOffset
		data.WindSpeed = cur.WindKPH / kphPerMS
	default:
		data.Temperature, data.FeelsLike = cur.TempC, cur.FeelsLikeC
		data.WindSpeed = cur.WindKPH / kphPerMS
	}

	if cur.LastUpdatedEpoch > 0 {
		observed := time.Unix(cur.LastUpdatedEpoch, 0).UTC()
		data.ObservedAt = &observed
	}

	return data, nil
}
