package models

import (
	"fmt"
	"strings"
)

// Provider names an upstream weather API.
type Provider string

const (
	OpenWeatherMap Provider = "openweathermap"
	WeatherAPI     Provider = "weatherapi"
	WeatherBit     Provider = "weatherbit"
)

func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case OpenWeatherMap, WeatherAPI, WeatherBit:
		return p, nil
	default:
		return "", fmt.Errorf("unknown provider %q: expected openweathermap, weatherapi or weatherbit", s)
	}
}

func (p Provider) String() string {
	return string(p)
}
