// Package pipestress implements general pipe stress checks: thermal
// expansion, pressure stress and support spacing. Pressures are psi, pipe
// dimensions inches, lengths of runs feet.
package pipestress

import (
	"math"

	engine "VesselForge/internal/calc/engine"
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
	case "thermal_expansion":
		p, err := parseThermal(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return thermalExpansion(p) }, nil
	case "pressure_stress":
		p, err := parsePressure(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return pressureStress(p) }, nil
	case "support_spacing":
		p, err := parseSpacing(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return supportSpacing(p) }, nil
	}
	return nil, engine.UnsupportedType(calcType)
}

type thermalParams struct {
	Length           float64 // ft
	ExpansionCoeff   float64 // in/in/degF
	TemperatureDelta float64 // degF
	ElasticModulus   float64 // psi
}

func parseThermal(in engine.Inputs) (thermalParams, error) {
	var p thermalParams
	var err error
	if p.Length, err = engine.PositiveFloat(in, "pipe_length"); err != nil {
		return p, err
	}
	var ok bool
	if p.TemperatureDelta, ok = engine.Float(in, "temperature_change"); !ok {
		return p, engine.Missing("temperature_change")
	}
	// Carbon steel defaults.
	p.ExpansionCoeff = engine.FloatDefault(in, "expansion_coefficient", 6.5e-6)
	p.ElasticModulus = engine.FloatDefault(in, "elastic_modulus", 27.9e6)
	return p, nil
}

// Runs longer than about an inch of growth need engineered flexibility
// (loops or joints); this is the common rule of thumb.
const flexibilityThresholdIn = 1.0

func thermalExpansion(p thermalParams) (engine.Results, error) {
	growth := p.Length * 12.0 * p.ExpansionCoeff * p.TemperatureDelta
	stress := p.ElasticModulus * p.ExpansionCoeff * p.TemperatureDelta
	return engine.Results{
		"expansion_in":         growth,
		"expansion_stress":     stress,
		"flexibility_required": math.Abs(growth) > flexibilityThresholdIn,
		"notes":                "Fully restrained expansion stress; actual layouts relieve part of it.",
	}, nil
}

type pressureParams struct {
	Pressure        float64
	OutsideDiameter float64
	WallThickness   float64
	AllowableStress float64
	JointEfficiency float64
	DeratingFactor  float64
}

func parsePressure(in engine.Inputs) (pressureParams, error) {
	var p pressureParams
	var err error
	if p.Pressure, err = engine.PositiveFloat(in, "design_pressure"); err != nil {
		return p, err
	}
	if p.OutsideDiameter, err = engine.PositiveFloat(in, "outside_diameter"); err != nil {
		return p, err
	}
	if p.WallThickness, err = engine.PositiveFloat(in, "wall_thickness"); err != nil {
		return p, err
	}
	if p.AllowableStress, err = engine.PositiveFloat(in, "allowable_stress"); err != nil {
		return p, err
	}
	p.JointEfficiency = engine.FloatDefault(in, "joint_efficiency", 1.0)
	p.DeratingFactor = engine.FloatDefault(in, "temperature_derating_factor", 1.0)
	return p, nil
}

// pressureStress is the Barlow hoop stress with the longitudinal component
// at half of it, checked against the derated allowable.
func pressureStress(p pressureParams) (engine.Results, error) {
	hoop := p.Pressure * p.OutsideDiameter / (2.0 * p.WallThickness)
	longitudinal := hoop / 2.0
	limit := p.AllowableStress * p.JointEfficiency * p.DeratingFactor
	return engine.Results{
		"hoop_stress":         hoop,
		"longitudinal_stress": longitudinal,
		"allowable_limit":     limit,
		"is_adequate":         hoop <= limit,
	}, nil
}

type spacingParams struct {
	OutsideDiameter  float64 // in
	WallThickness    float64 // in
	PipeWeight       float64 // lb/ft
	FluidWeight      float64 // lb/ft
	InsulationWeight float64 // lb/ft
	BendingStress    float64 // psi, allowable
}

func parseSpacing(in engine.Inputs) (spacingParams, error) {
	var p spacingParams
	var err error
	if p.OutsideDiameter, err = engine.PositiveFloat(in, "outside_diameter"); err != nil {
		return p, err
	}
	if p.WallThickness, err = engine.PositiveFloat(in, "wall_thickness"); err != nil {
		return p, err
	}
	if p.WallThickness*2.0 >= p.OutsideDiameter {
		return p, engine.Invalid("wall_thickness", "must be less than the pipe radius")
	}
	if p.PipeWeight, err = engine.PositiveFloat(in, "pipe_weight"); err != nil {
		return p, err
	}
	if p.FluidWeight, err = engine.PositiveFloat(in, "fluid_weight"); err != nil {
		return p, err
	}
	p.InsulationWeight = engine.FloatDefault(in, "insulation_weight", 0)
	p.BendingStress = engine.FloatDefault(in, "allowable_bending_stress", 15000)
	return p, nil
}

// supportSpacing treats the span as a simply supported beam under the total
// distributed weight: M = w*L^2/8 <= S*Z.
func supportSpacing(p spacingParams) (engine.Results, error) {
	di := p.OutsideDiameter - 2.0*p.WallThickness
	inertia := math.Pi / 64.0 * (math.Pow(p.OutsideDiameter, 4) - math.Pow(di, 4))
	sectionModulus := 2.0 * inertia / p.OutsideDiameter

	totalWeight := p.PipeWeight + p.FluidWeight + p.InsulationWeight // lb/ft
	wPerInch := totalWeight / 12.0

	maxSpanIn := math.Sqrt(8.0 * p.BendingStress * sectionModulus / wPerInch)
	maxSpanFt := maxSpanIn / 12.0
	return engine.Results{
		"moment_of_inertia":      inertia,
		"section_modulus":        sectionModulus,
		"total_weight_per_ft":    totalWeight,
		"maximum_spacing_ft":     maxSpanFt,
		"recommended_spacing_ft": 0.8 * maxSpanFt,
		"notes":                  "Simply supported span governed by bending stress.",
	}, nil
}
