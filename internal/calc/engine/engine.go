package engine

import (
	"errors"
	"fmt"
)

// Inputs is the mapping of named physical quantities a caller supplies.
// Values are JSON-shaped: float64 for numbers, string for categorical fields.
type Inputs map[string]any

// Results is the mapping of derived quantities a calculator returns.
type Results map[string]any

// Calculator is implemented by every code-specific calculator. Both methods
// are pure: no calculator keeps state between calls.
type Calculator interface {
	ValidateInputs(in Inputs) error
	Calculate(in Inputs) (Results, error)
}

// Error kinds. ValidationError and the calculators wrap these so callers can
// test with errors.Is.
var (
	ErrMissingField               = errors.New("missing field")
	ErrInvalidValue               = errors.New("invalid value")
	ErrInvalidStressCondition     = errors.New("invalid stress condition")
	ErrUnsupportedCalculationType = errors.New("unsupported calculation type")
	ErrUnknownCalculatorType      = errors.New("unknown calculator type")
	ErrUnsupportedConversion      = errors.New("unsupported unit conversion")
)

// ValidationError names the first offending field of an input mapping.
type ValidationError struct {
	Field   string
	Kind    error
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Field, e.Kind, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// Missing reports a field absent from the input mapping.
func Missing(field string) error {
	return &ValidationError{Field: field, Kind: ErrMissingField, Message: "required"}
}

// Invalid reports a field with a wrong sign or out-of-range value.
func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Kind: ErrInvalidValue, Message: msg}
}

// Infeasible reports a non-positive formula denominator: the design cannot be
// satisfied at these conditions, so no thickness is returned.
func Infeasible(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidStressCondition, msg)
}

// Float reads a numeric field. Missing fields and non-numeric values both
// report false; calculators decide whether that is an error.
func Float(in Inputs, key string) (float64, bool) {
	v, ok := in[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// PositiveFloat reads a numeric field that must be present and > 0.
func PositiveFloat(in Inputs, key string) (float64, error) {
	v, ok := Float(in, key)
	if !ok {
		return 0, Missing(key)
	}
	if v <= 0 {
		return 0, Invalid(key, "must be positive")
	}
	return v, nil
}

// FloatDefault reads a numeric field, falling back to def when absent or
// non-positive. Used for fields with a conventional default such as joint
// efficiency.
func FloatDefault(in Inputs, key string, def float64) float64 {
	v, ok := Float(in, key)
	if !ok || v <= 0 {
		return def
	}
	return v
}

// String reads a categorical field.
func String(in Inputs, key string) (string, bool) {
	v, ok := in[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringDefault reads a categorical field with a fallback.
func StringDefault(in Inputs, key, def string) string {
	if s, ok := String(in, key); ok && s != "" {
		return s
	}
	return def
}

// CalculationType reads the operation discriminator every calculator
// dispatches on.
func CalculationType(in Inputs) (string, error) {
	s, ok := String(in, "calculation_type")
	if !ok || s == "" {
		return "", Missing("calculation_type")
	}
	return s, nil
}

// UnsupportedType wraps ErrUnsupportedCalculationType with the offending
// discriminator value.
func UnsupportedType(calcType string) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedCalculationType, calcType)
}
