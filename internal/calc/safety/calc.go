// Package safety derives pressure safety ratios and a fatigue-life estimate
// from a corrected endurance limit.
package safety

import (
	"math"

	engine "VesselForge/internal/calc/engine"
)

// ASME-style minimum margins on burst and yield.
const (
	requiredBurstRatio = 4.0
	requiredYieldRatio = 1.5
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
	case "safety_factors":
		p, err := parseRatios(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return safetyFactors(p) }, nil
	case "fatigue_life":
		p, err := parseFatigue(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return fatigueLife(p) }, nil
	}
	return nil, engine.UnsupportedType(calcType)
}

type ratioParams struct {
	BurstPressure     float64
	YieldPressure     float64
	TestPressure      float64
	DesignPressure    float64
	OperatingPressure float64
}

func parseRatios(in engine.Inputs) (ratioParams, error) {
	var p ratioParams
	var err error
	if p.BurstPressure, err = engine.PositiveFloat(in, "burst_pressure"); err != nil {
		return p, err
	}
	if p.YieldPressure, err = engine.PositiveFloat(in, "yield_pressure"); err != nil {
		return p, err
	}
	if p.TestPressure, err = engine.PositiveFloat(in, "test_pressure"); err != nil {
		return p, err
	}
	if p.DesignPressure, err = engine.PositiveFloat(in, "design_pressure"); err != nil {
		return p, err
	}
	if p.OperatingPressure, err = engine.PositiveFloat(in, "operating_pressure"); err != nil {
		return p, err
	}
	return p, nil
}

func safetyFactors(p ratioParams) (engine.Results, error) {
	burst := p.BurstPressure / p.DesignPressure
	yield := p.YieldPressure / p.DesignPressure
	test := p.TestPressure / p.DesignPressure
	design := p.DesignPressure / p.OperatingPressure
	return engine.Results{
		"burst_safety_factor":  burst,
		"yield_safety_factor":  yield,
		"test_ratio":           test,
		"design_margin":        design,
		"meets_asme_burst":     burst >= requiredBurstRatio,
		"meets_asme_yield":     yield >= requiredYieldRatio,
		"asme_compliant":       burst >= requiredBurstRatio && yield >= requiredYieldRatio,
	}, nil
}

type fatigueParams struct {
	EnduranceLimit      float64 // psi, uncorrected
	SurfaceFactor       float64
	SizeFactor          float64
	ReliabilityFactor   float64
	TemperatureFactor   float64
	StressAmplitude     float64 // psi
	ConcentrationFactor float64
}

func parseFatigue(in engine.Inputs) (fatigueParams, error) {
	var p fatigueParams
	var err error
	if p.StressAmplitude, err = engine.PositiveFloat(in, "stress_amplitude"); err != nil {
		return p, err
	}
	if limit, ok := engine.Float(in, "endurance_limit"); ok && limit > 0 {
		p.EnduranceLimit = limit
	} else {
		// Ferrous-metal estimate: half the ultimate tensile strength.
		tensile, err := engine.PositiveFloat(in, "tensile_strength")
		if err != nil {
			return p, engine.Missing("endurance_limit")
		}
		p.EnduranceLimit = 0.5 * tensile
	}
	p.SurfaceFactor = engine.FloatDefault(in, "surface_finish_factor", 0.9)
	p.SizeFactor = engine.FloatDefault(in, "size_factor", 0.9)
	p.ReliabilityFactor = engine.FloatDefault(in, "reliability_factor", 0.897)
	p.TemperatureFactor = engine.FloatDefault(in, "temperature_factor", 1.0)
	p.ConcentrationFactor = engine.FloatDefault(in, "stress_concentration_factor", 1.0)
	return p, nil
}

// fatigueLife compares the effective stress amplitude against the Marin
// corrected endurance limit, then falls back to a cubic S-N estimate.
func fatigueLife(p fatigueParams) (engine.Results, error) {
	corrected := p.EnduranceLimit * p.SurfaceFactor * p.SizeFactor *
		p.ReliabilityFactor * p.TemperatureFactor
	effective := p.StressAmplitude * p.ConcentrationFactor

	res := engine.Results{
		"corrected_endurance_limit": corrected,
		"effective_stress":          effective,
	}
	if effective <= corrected {
		res["infinite_life"] = true
		return res, nil
	}
	res["infinite_life"] = false
	res["predicted_cycles"] = math.Pow(corrected/effective, 3.0) * 1.0e6
	return res, nil
}
