package models

import "time"

// WeatherReading is one provider response reduced to the fields we print.
// Optional fields are nil when the provider does not report them.
type WeatherReading struct {
	City        string     `json:"city"`
	Country     string     `json:"country,omitempty"`
	Temperature float64    `json:"temperature"`
	FeelsLike   float64    `json:"feels_like"`
	TempMin     *float64   `json:"temp_min,omitempty"`
	TempMax     *float64   `json:"temp_max,omitempty"`
	Humidity    int        `json:"humidity"`
	Pressure    float64    `json:"pressure"`
	WindSpeed   float64    `json:"wind_speed"`
	Condition   string     `json:"condition"`
	Description string     `json:"description,omitempty"`
	Units       Units      `json:"units"`
	Provider    Provider   `json:"provider"`
	ObservedAt  *time.Time `json:"observed_at,omitempty"`
}
