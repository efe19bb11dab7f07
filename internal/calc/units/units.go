// Package units converts values between the pressure, length and temperature
// units the calculators accept. Conversions go through a per-kind base unit
// (psi, inch, degree Fahrenheit) so any registered pair converts.
package units

import (
	"fmt"
	"strings"

	engine "VesselForge/internal/calc/engine"
)

// Quantity kinds.
const (
	KindPressure    = "pressure"
	KindLength      = "length"
	KindTemperature = "temperature"
)

// Factors to the base unit: psi for pressure, inch for length.
var pressureToPsi = map[string]float64{
	"psi": 1.0,
	"kpa": 0.145038,
	"mpa": 145.038,
	"bar": 14.5038,
}

var lengthToInch = map[string]float64{
	"in": 1.0,
	"ft": 12.0,
	"mm": 1.0 / 25.4,
	"cm": 1.0 / 2.54,
	"m":  1000.0 / 25.4,
}

// Convert converts value from one unit to another within a quantity kind.
// Unknown kinds or unit pairs fail with ErrUnsupportedConversion.
func Convert(value float64, from, to, kind string) (float64, error) {
	from = normalize(from)
	to = normalize(to)
	switch normalize(kind) {
	case KindPressure:
		return viaBase(value, from, to, kind, pressureToPsi)
	case KindLength:
		return viaBase(value, from, to, kind, lengthToInch)
	case KindTemperature:
		return convertTemperature(value, from, to)
	}
	return 0, fmt.Errorf("%w: kind %q", engine.ErrUnsupportedConversion, kind)
}

func viaBase(value float64, from, to, kind string, table map[string]float64) (float64, error) {
	f, ok := table[from]
	if !ok {
		return 0, fmt.Errorf("%w: %s unit %q", engine.ErrUnsupportedConversion, kind, from)
	}
	t, ok := table[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s unit %q", engine.ErrUnsupportedConversion, kind, to)
	}
	return value * f / t, nil
}

func convertTemperature(value float64, from, to string) (float64, error) {
	// Through Fahrenheit as the base.
	var f float64
	switch from {
	case "f":
		f = value
	case "c":
		f = value*9.0/5.0 + 32.0
	case "k":
		f = (value-273.15)*9.0/5.0 + 32.0
	default:
		return 0, fmt.Errorf("%w: temperature unit %q", engine.ErrUnsupportedConversion, from)
	}
	switch to {
	case "f":
		return f, nil
	case "c":
		return (f - 32.0) * 5.0 / 9.0, nil
	case "k":
		return (f-32.0)*5.0/9.0 + 273.15, nil
	}
	return 0, fmt.Errorf("%w: temperature unit %q", engine.ErrUnsupportedConversion, to)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "°")
	switch s {
	case "inch", "inches":
		return "in"
	case "feet", "foot":
		return "ft"
	}
	return s
}
