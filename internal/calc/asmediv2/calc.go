// Package asmediv2 implements ASME Section VIII Division 2 design-by-rule
// formulas: shell thickness with the Division 2 pressure coefficient, a
// design-temperature screen against material limits, and the simplified
// fatigue screening of Part 5.
package asmediv2

import (
	"math"

	engine "VesselForge/internal/calc/engine"
	material "VesselForge/internal/calc/material"
)

type Calculator struct{}

func (Calculator) ValidateInputs(in engine.Inputs) error {
	_, err := parse(in)
	return err
}

func (Calculator) Calculate(in engine.Inputs) (engine.Results, error) {
	op, err := parse(in)
	if err != nil {
		return nil, err
	}
	return op()
}

func parse(in engine.Inputs) (func() (engine.Results, error), error) {
	calcType, err := engine.CalculationType(in)
	if err != nil {
		return nil, err
	}
	switch calcType {
	case "cylindrical_shell":
		p, err := parseShell(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return shellThickness(p, false) }, nil
	case "spherical_shell":
		p, err := parseShell(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return shellThickness(p, true) }, nil
	case "fatigue_analysis":
		p, err := parseFatigue(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return fatigueAnalysis(p) }, nil
	}
	return nil, engine.UnsupportedType(calcType)
}

type shellParams struct {
	Pressure           float64
	Radius             float64
	AllowableStress    float64
	JointEfficiency    float64
	CorrosionAllowance float64
	Material           string
	DesignTemperature  float64
	HasTemperature     bool
}

func parseShell(in engine.Inputs) (shellParams, error) {
	var p shellParams
	var err error
	if p.Pressure, err = engine.PositiveFloat(in, "design_pressure"); err != nil {
		return p, err
	}
	if r, ok := engine.Float(in, "inside_radius"); ok && r > 0 {
		p.Radius = r
	} else if d, ok := engine.Float(in, "inside_diameter"); ok && d > 0 {
		p.Radius = d / 2.0
	} else {
		return p, engine.Missing("inside_radius")
	}
	if p.AllowableStress, err = engine.PositiveFloat(in, "allowable_stress"); err != nil {
		return p, err
	}
	p.JointEfficiency = engine.FloatDefault(in, "joint_efficiency", 1.0)
	p.CorrosionAllowance = engine.FloatDefault(in, "corrosion_allowance", 0)
	p.Material, _ = engine.String(in, "material")
	p.DesignTemperature, p.HasTemperature = engine.Float(in, "design_temperature")
	if p.HasTemperature && p.Material != "" {
		if _, ok := material.TemperatureLimit(p.Material); !ok {
			return p, engine.Invalid("material", "unknown material family")
		}
	}
	return p, nil
}

// shellThickness applies the Division 2 formulas. Division 2 uses a single
// 0.5 pressure coefficient in place of Division 1's 0.6 and 0.2.
func shellThickness(p shellParams, spherical bool) (engine.Results, error) {
	se := p.AllowableStress * p.JointEfficiency
	if spherical {
		se *= 2.0
	}
	denom := se - 0.5*p.Pressure
	if denom <= 0 {
		return nil, engine.Infeasible("S*E - 0.5*P must be positive")
	}
	required := p.Pressure * p.Radius / denom
	minimum := required + p.CorrosionAllowance
	sf := se / (p.Pressure * (p.Radius/minimum + 0.5))

	res := engine.Results{
		"required_thickness": required,
		"minimum_thickness":  minimum,
		"safety_factor":      sf,
		"notes":              "ASME VIII Div 2 design-by-rule shell thickness.",
	}
	if p.HasTemperature && p.Material != "" {
		limit, _ := material.TemperatureLimit(p.Material)
		res["temperature_limit"] = limit
		res["within_temperature_limit"] = p.DesignTemperature <= limit
	}
	return res, nil
}

// fatigueStrengths holds screening fatigue strength amplitudes (psi) per
// material family.
var fatigueStrengths = map[string]float64{
	"carbon_steel":    25000,
	"low_alloy_steel": 30000,
	"stainless_steel": 35000,
	"aluminum":        14000,
}

type fatigueParams struct {
	StressAmplitude float64
	Material        string
}

func parseFatigue(in engine.Inputs) (fatigueParams, error) {
	var p fatigueParams
	var err error
	if p.StressAmplitude, err = engine.PositiveFloat(in, "stress_amplitude"); err != nil {
		return p, err
	}
	p.Material = engine.StringDefault(in, "material", "carbon_steel")
	if _, ok := fatigueStrengths[p.Material]; !ok {
		return p, engine.Invalid("material", "unknown material family")
	}
	return p, nil
}

// fatigueAnalysis screens for infinite life, otherwise estimates allowable
// cycles with a cubic S-N approximation anchored at 1e6 cycles.
func fatigueAnalysis(p fatigueParams) (engine.Results, error) {
	strength := fatigueStrengths[p.Material]
	if p.StressAmplitude <= strength {
		return engine.Results{
			"fatigue_strength": strength,
			"infinite_life":    true,
			"notes":            "Stress amplitude at or below the screening fatigue strength.",
		}, nil
	}
	cycles := math.Pow(strength/p.StressAmplitude, 3.0) * 1.0e6
	return engine.Results{
		"fatigue_strength": strength,
		"infinite_life":    false,
		"allowable_cycles": cycles,
		"notes":            "Cubic S-N approximation; a full Part 5 fatigue analysis may govern.",
	}, nil
}
