package models

import (
	"fmt"
	"strings"
)

type Units string

const (
	Metric   Units = "metric"
	Imperial Units = "imperial"
	Standard Units = "standard"
)

// ParseUnits accepts the user-facing unit name in any case.
func ParseUnits(s string) (Units, error) {
	switch u := Units(strings.ToLower(strings.TrimSpace(s))); u {
	case Metric, Imperial, Standard:
		return u, nil
	default:
		return "", fmt.Errorf("unknown units %q: expected metric, imperial or standard", s)
	}
}

func (u Units) String() string {
	return string(u)
}

// TemperatureSuffix returns the label printed after a temperature value.
func (u Units) TemperatureSuffix() string {
	switch u {
	case Imperial:
		return "°F"
	case Standard:
		return "K"
	default:
		return "°C"
	}
}

// WindSuffix returns the label printed after a wind speed value.
func (u Units) WindSuffix() string {
	if u == Imperial {
		return "mph"
	}
	return "m/s"
}
