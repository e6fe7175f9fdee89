package weather_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-now/internal/models"
	"github.com/Nazarious-ucu/weather-now/internal/services/weather"
)

const weatherAPILondonBody = `{
  "location": {"name": "London", "country": "United Kingdom"},
  "current": {
    "last_updated_epoch": 1718900100,
    "temp_c": 15.0,
    "temp_f": 59.0,
    "feelslike_c": 14.0,
    "feelslike_f": 57.2,
    "wind_kph": 18.0,
    "wind_mph": 11.2,
    "pressure_mb": 1012.0,
    "humidity": 72,
    "condition": {"text": "Partly cloudy"}
  }
}`

func newWeatherAPIClient(m *mockHTTPClient) *weather.ClientWeatherAPI {
	return weather.NewClientWeatherAPI("1234567890", "https://api.test/v1/current.json", m, zerolog.Nop())
}

func TestWeatherAPI_Fetch_Units(t *testing.T) {
	tests := []struct {
		units     models.Units
		temp      float64
		feelsLike float64
		wind      float64
	}{
		{units: models.Metric, temp: 15.0, feelsLike: 14.0, wind: 5.0},
		{units: models.Imperial, temp: 59.0, feelsLike: 57.2, wind: 11.2},
		{units: models.Standard, temp: 288.15, feelsLike: 287.15, wind: 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.units.String(), func(t *testing.T) {
			m := &mockHTTPClient{}
			m.On("Do", mock.MatchedBy(func(r *http.Request) bool {
				q := r.URL.Query()
				return q.Get("key") == "1234567890" && q.Get("q") == "London" && !q.Has("units")
			})).Return(jsonResponse(http.StatusOK, weatherAPILondonBody), nil).Once()
			t.Cleanup(func() {
				m.AssertExpectations(t)
			})

			data, err := newWeatherAPIClient(m).Fetch(context.Background(),
				weather.Query{City: "London", Units: tt.units})
			require.NoError(t, err)

			assert.Equal(t, "London", data.City)
			assert.Equal(t, "United Kingdom", data.Country)
			assert.InDelta(t, tt.temp, data.Temperature, 1e-9)
			assert.InDelta(t, tt.feelsLike, data.FeelsLike, 1e-9)
			assert.InDelta(t, tt.wind, data.WindSpeed, 1e-9)
			assert.Nil(t, data.TempMin, "current conditions carry no range")
			assert.Nil(t, data.TempMax)
			assert.Equal(t, 72, data.Humidity)
			assert.Equal(t, "Partly cloudy", data.Condition)
		})
	}
}

func TestWeatherAPI_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		resp    *http.Response
		wantErr error
	}{
		{
			name: "NoMatchingLocation",
			resp: jsonResponse(http.StatusBadRequest,
				`{"error":{"code":1006,"message":"No matching location found."}}`),
			wantErr: weather.ErrCityNotFound,
		},
		{
			name: "InvalidAPIKey",
			resp: jsonResponse(http.StatusUnauthorized,
				`{"error":{"code":2006,"message":"API key is invalid."}}`),
			wantErr: weather.ErrUnauthorized,
		},
		{
			name: "KeyDisabled",
			resp: jsonResponse(http.StatusForbidden,
				`{"error":{"code":2008,"message":"API key has been disabled."}}`),
			wantErr: weather.ErrUnauthorized,
		},
		{
			name:    "ServerError",
			resp:    jsonResponse(http.StatusInternalServerError, `{"error": "Internal server error"}`),
			wantErr: weather.ErrUpstream,
		},
		{
			name:    "MissingCurrent",
			resp:    jsonResponse(http.StatusOK, `{"location": {"name": "London"}}`),
			wantErr: weather.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockHTTPClient{}
			m.On("Do", mock.Anything).Return(tt.resp, nil).Once()
			t.Cleanup(func() {
				m.AssertExpectations(t)
			})

			data, err := newWeatherAPIClient(m).Fetch(context.Background(),
				weather.Query{City: "UnknownCity", Units: models.Metric})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, models.WeatherReading{}, data)
		})
	}
}
