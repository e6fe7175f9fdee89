package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Nazarious-ucu/weather-now/internal/models"
)

var ErrMissingAPIKey = errors.New("missing API key")

type OpenWeatherMap struct {
	APIKey string `envconfig:"OPENWEATHER_API_KEY"`
	URL    string `envconfig:"OPENWEATHER_API_URL" default:"https://api.openweathermap.org/data/2.5/weather"`
}

type WeatherAPI struct {
	APIKey string `envconfig:"WEATHER_API_KEY"`
	URL    string `envconfig:"WEATHER_API_URL" default:"https://api.weatherapi.com/v1/current.json"`
}

type WeatherBit struct {
	APIKey string `envconfig:"WEATHER_BIT_API_KEY"`
	URL    string `envconfig:"WEATHER_BIT_URL" default:"https://api.weatherbit.io/v2.0/current"`
}

type Log struct {
	Level       string `envconfig:"WEATHER_LOG_LEVEL" default:"error"`
	FilePath    string `envconfig:"WEATHER_LOG_FILE"`
	HTTPLogPath string `envconfig:"WEATHER_HTTP_LOG"`
}

type Config struct {
	OpenWeatherMap OpenWeatherMap
	WeatherAPI     WeatherAPI
	WeatherBit     WeatherBit

	Log Log

	MetricsFile string `envconfig:"WEATHER_METRICS_FILE"`
}

// NewConfig reads the process environment. When envFile is not empty it is
// loaded first; variables already set in the environment win.
func NewConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Provider returns the key and endpoint for p. The key must be present.
func (c *Config) Provider(p models.Provider) (apiKey, apiURL string, err error) {
	var envName string
	switch p {
	case models.OpenWeatherMap:
		apiKey, apiURL, envName = c.OpenWeatherMap.APIKey, c.OpenWeatherMap.URL, "OPENWEATHER_API_KEY"
	case models.WeatherAPI:
		apiKey, apiURL, envName = c.WeatherAPI.APIKey, c.WeatherAPI.URL, "WEATHER_API_KEY"
	case models.WeatherBit:
		apiKey, apiURL, envName = c.WeatherBit.APIKey, c.WeatherBit.URL, "WEATHER_BIT_API_KEY"
	default:
		return "", "", fmt.Errorf("unknown provider %q", p)
	}

	if apiKey == "" {
		return "", "", fmt.Errorf("%w: set %s or pass --api-key", ErrMissingAPIKey, envName)
	}
	return apiKey, apiURL, nil
}

// OverrideAPIKey replaces the key of p, used for the --api-key flag.
func (c *Config) OverrideAPIKey(p models.Provider, key string) {
	if key == "" {
		return
	}
	switch p {
	case models.OpenWeatherMap:
		c.OpenWeatherMap.APIKey = key
	case models.WeatherAPI:
		c.WeatherAPI.APIKey = key
	case models.WeatherBit:
		c.WeatherBit.APIKey = key
	}
}
