// Package factory resolves a calculator-type key to its concrete
// calculator.
package factory

import (
	"fmt"
	"strings"

	api579 "VesselForge/internal/calc/api579"
	asmediv1 "VesselForge/internal/calc/asmediv1"
	asmediv2 "VesselForge/internal/calc/asmediv2"
	en13445 "VesselForge/internal/calc/en13445"
	engine "VesselForge/internal/calc/engine"
	material "VesselForge/internal/calc/material"
	pipestress "VesselForge/internal/calc/pipestress"
	safety "VesselForge/internal/calc/safety"
	vessel "VesselForge/internal/calc/vessel"
)

var calculators = map[string]engine.Calculator{
	"asme_viii_div1":      asmediv1.Calculator{},
	"asme_viii_div2":      asmediv2.Calculator{},
	"en_13445":            en13445.Calculator{},
	"pressure_vessel":     vessel.Calculator{},
	"pipe_stress":         pipestress.Calculator{},
	"material_properties": material.Calculator{},
	"safety_factors":      safety.Calculator{},
	"api_579":             api579.Calculator{},
}

// aliases map common spellings onto the canonical keys.
var aliases = map[string]string{
	"asme_div1":     "asme_viii_div1",
	"asme_div2":     "asme_viii_div2",
	"en13445":       "en_13445",
	"material":      "material_properties",
	"safety_factor": "safety_factors",
	"api579":        "api_579",
}

// New returns the calculator for a calculator-type key. Keys are
// case-insensitive; spaces and hyphens are treated as underscores.
func New(calculatorType string) (engine.Calculator, error) {
	key := normalize(calculatorType)
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	c, ok := calculators[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", engine.ErrUnknownCalculatorType, calculatorType)
	}
	return c, nil
}

// Types lists the canonical calculator-type keys.
func Types() []string {
	keys := make([]string, 0, len(calculators))
	for k := range calculators {
		keys = append(keys, k)
	}
	return keys
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
