package weather_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-now/internal/handlers/weather"
	"github.com/Nazarious-ucu/weather-now/internal/models"
	serviceWeather "github.com/Nazarious-ucu/weather-now/internal/services/weather"
)

type mockService struct {
	data  models.WeatherReading
	err   error
	query serviceWeather.Query
}

func (m *mockService) GetByCity(_ context.Context, q serviceWeather.Query) (models.WeatherReading, error) {
	m.query = q
	return m.data, m.err
}

func ptr[T any](v T) *T { return &v }

var boston = models.WeatherReading{
	City:        "Boston",
	Country:     "US",
	Temperature: 72.5,
	FeelsLike:   71.2,
	TempMin:     ptr(70.1),
	TempMax:     ptr(74.8),
	Humidity:    40,
	Pressure:    1016,
	WindSpeed:   8.05,
	Condition:   "Clear",
	Description: "clear sky",
	Units:       models.Imperial,
	Provider:    models.OpenWeatherMap,
	ObservedAt:  ptr(time.Date(2024, 6, 20, 16, 13, 20, 0, time.UTC)),
}

func TestLine(t *testing.T) {
	line := weather.Line(boston)

	assert.Equal(t, "Boston, US: Clear, 72.5°F, humidity 40%", line)
	for _, want := range []string{"Boston", "72.5", "40%", "Clear"} {
		assert.Contains(t, line, want)
	}
}

func TestLine_UnitsOnlyChangeSuffix(t *testing.T) {
	metric := boston
	metric.Units = models.Metric

	imperialLine := weather.Line(boston)
	metricLine := weather.Line(metric)

	assert.Equal(t, strings.Replace(imperialLine, "°F", "°C", 1), metricLine)
}

func TestLine_NoCountry(t *testing.T) {
	r := boston
	r.Country = ""
	r.Units = models.Standard
	r.Temperature = 295.65000000000003

	assert.Equal(t, "Boston: Clear, 295.65K, humidity 40%", weather.Line(r))
}

func TestDetailed(t *testing.T) {
	want := strings.Join([]string{
		"Boston, US: Clear sky",
		"Temp: 72.5°F  (feels like 71.2°F)",
		"Min/Max: 70.1°F / 74.8°F",
		"Humidity: 40%   Pressure: 1016 hPa",
		"Wind: 8.05 mph",
		"Updated: 2024-06-20 16:13 UTC",
		"Source: openweathermap",
	}, "\n")

	assert.Equal(t, want, weather.Detailed(boston))
}

func TestDetailed_FallsBackToCondition(t *testing.T) {
	r := boston
	r.Description = ""
	r.ObservedAt = nil
	r.Provider = ""

	out := weather.Detailed(r)
	assert.True(t, strings.HasPrefix(out, "Boston, US: Clear\n"))
	assert.NotContains(t, out, "Updated:")
	assert.NotContains(t, out, "Source:")
}

func TestDetailed_MissingRange(t *testing.T) {
	r := boston
	r.TempMin = nil
	r.TempMax = nil

	out := weather.Detailed(r)
	assert.Contains(t, out, "Min/Max: ? / ?\n")
	assert.NotContains(t, out, "72.5°F / 72.5°F")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, weather.Render(&buf, boston, weather.FormatJSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Boston", got["city"])
	assert.Equal(t, 72.5, got["temperature"])
	assert.Equal(t, 40.0, got["humidity"])
	assert.Equal(t, "imperial", got["units"])
	assert.Equal(t, 70.1, got["temp_min"])
	assert.Equal(t, "2024-06-20T16:13:20Z", got["observed_at"])
}

func TestRender_JSONOmitsUnreportedFields(t *testing.T) {
	r := boston
	r.TempMin = nil
	r.TempMax = nil
	r.ObservedAt = nil

	var buf bytes.Buffer
	require.NoError(t, weather.Render(&buf, r, weather.FormatJSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.NotContains(t, got, "temp_min")
	assert.NotContains(t, got, "temp_max")
	assert.NotContains(t, got, "observed_at")
	assert.NotContains(t, buf.String(), "0001-01-01")
}

func TestParseFormat(t *testing.T) {
	f, err := weather.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, weather.FormatJSON, f)

	_, err = weather.ParseFormat("yaml")
	assert.Error(t, err)
}

func TestHandler_ShowWeather(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var buf bytes.Buffer
		svc := &mockService{data: boston}
		h := weather.NewHandler(svc, &buf, "")

		q := serviceWeather.Query{City: "Boston", Units: models.Imperial}
		require.NoError(t, h.ShowWeather(context.Background(), q))

		assert.Equal(t, q, svc.query)
		assert.Equal(t, "Boston, US: Clear, 72.5°F, humidity 40%\n", buf.String())
	})

	t.Run("ServiceError", func(t *testing.T) {
		var buf bytes.Buffer
		h := weather.NewHandler(&mockService{err: errors.New("service unavailable")}, &buf, weather.FormatLine)

		err := h.ShowWeather(context.Background(), serviceWeather.Query{City: "Kyiv"})
		require.EqualError(t, err, "service unavailable")
		assert.Empty(t, buf.String())
	})
}
