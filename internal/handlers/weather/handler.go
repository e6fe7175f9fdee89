package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Nazarious-ucu/weather-now/internal/models"
	serviceWeather "github.com/Nazarious-ucu/weather-now/internal/services/weather"
)

type Format string

const (
	FormatLine     Format = "line"
	FormatDetailed Format = "detailed"
	FormatJSON     Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatLine, FormatDetailed, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q: expected line, detailed or json", s)
	}
}

type weatherGetterService interface {
	GetByCity(ctx context.Context, q serviceWeather.Query) (models.WeatherReading, error)
}

// Handler looks a city up and writes the report to out.
type Handler struct {
	service weatherGetterService
	out     io.Writer
	format  Format
}

func NewHandler(svc weatherGetterService, out io.Writer, format Format) *Handler {
	if format == "" {
		format = FormatLine
	}
	return &Handler{service: svc, out: out, format: format}
}

func (h *Handler) ShowWeather(ctx context.Context, q serviceWeather.Query) error {
	data, err := h.service.GetByCity(ctx, q)
	if err != nil {
		return err
	}
	return Render(h.out, data, h.format)
}

// Render writes r to w in the given format.
func Render(w io.Writer, r models.WeatherReading, f Format) error {
	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(r)
	case FormatDetailed:
		_, err = io.WriteString(w, Detailed(r)+"\n")
	default:
		_, err = io.WriteString(w, Line(r)+"\n")
	}
	return err
}

// Line is the one-line summary, e.g.
// "Boston, US: Clear, 72.5°F, humidity 40%".
func Line(r models.WeatherReading) string {
	t := r.Units.TemperatureSuffix()
	return fmt.Sprintf("%s: %s, %s%s, humidity %d%%",
		place(r), r.Condition, num(r.Temperature), t, r.Humidity)
}

// Detailed is the multi-line report.
func Detailed(r models.WeatherReading) string {
	t := r.Units.TemperatureSuffix()

	desc := r.Description
	if desc == "" {
		desc = r.Condition
	}

	lines := []string{
		fmt.Sprintf("%s: %s", place(r), capitalize(desc)),
		fmt.Sprintf("Temp: %s%s  (feels like %s%s)", num(r.Temperature), t, num(r.FeelsLike), t),
		fmt.Sprintf("Min/Max: %s / %s", optional(r.TempMin, t), optional(r.TempMax, t)),
		fmt.Sprintf("Humidity: %d%%   Pressure: %s hPa", r.Humidity, num(r.Pressure)),
		fmt.Sprintf("Wind: %s %s", num(r.WindSpeed), r.Units.WindSuffix()),
	}
	if r.ObservedAt != nil && !r.ObservedAt.IsZero() {
		lines = append(lines, "Updated: "+r.ObservedAt.UTC().Format("2006-01-02 15:04 UTC"))
	}
	if r.Provider != "" {
		lines = append(lines, "Source: "+r.Provider.String())
	}
	return strings.Join(lines, "\n")
}

func place(r models.WeatherReading) string {
	if r.Country == "" {
		return r.City
	}
	return r.City + ", " + r.Country
}

// num prints at most two decimals and drops trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// optional renders a value the provider may not report, "?" when absent.
func optional(v *float64, suffix string) string {
	if v == nil {
		return "?"
	}
	return num(*v) + suffix
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
