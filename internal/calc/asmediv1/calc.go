// Package asmediv1 implements ASME Section VIII Division 1 design formulas
// for shells, heads, external pressure resistance and nozzle reinforcement.
// All pressures are psi, lengths inches, temperatures degrees Fahrenheit.
package asmediv1

import (
	"math"

	engine "VesselForge/internal/calc/engine"
)

// Standard plate thicknesses (in) used by the autodesign feature.
var StandardPlateThicknesses = []float64{
	0.1875, 0.25, 0.3125, 0.375, 0.4375, 0.5, 0.625, 0.75, 0.875,
	1.0, 1.125, 1.25, 1.5, 1.75, 2.0,
}

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

// parse resolves the operation and validates its fields, returning a closure
// that performs the computation. Validation failures name the first offending
// field.
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
		return func() (engine.Results, error) { return cylindricalShell(p) }, nil
	case "spherical_shell":
		p, err := parseShell(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return sphericalShell(p) }, nil
	case "head_thickness":
		p, err := parseHead(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return headThickness(p) }, nil
	case "external_pressure":
		p, err := parseExternal(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return externalPressure(p) }, nil
	case "nozzle_reinforcement":
		p, err := parseNozzle(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return nozzleReinforcement(p) }, nil
	}
	return nil, engine.UnsupportedType(calcType)
}

type shellParams struct {
	Pressure           float64
	Radius             float64
	AllowableStress    float64
	JointEfficiency    float64
	CorrosionAllowance float64
}

func parseShell(in engine.Inputs) (shellParams, error) {
	var p shellParams
	var err error
	if p.Pressure, err = engine.PositiveFloat(in, "design_pressure"); err != nil {
		return p, err
	}
	if p.Radius, err = radiusOf(in); err != nil {
		return p, err
	}
	if p.AllowableStress, err = engine.PositiveFloat(in, "allowable_stress"); err != nil {
		return p, err
	}
	p.JointEfficiency = engine.FloatDefault(in, "joint_efficiency", 1.0)
	p.CorrosionAllowance = engine.FloatDefault(in, "corrosion_allowance", 0)
	return p, nil
}

// radiusOf accepts an inside radius directly or derives it from a diameter.
func radiusOf(in engine.Inputs) (float64, error) {
	if r, ok := engine.Float(in, "inside_radius"); ok && r > 0 {
		return r, nil
	}
	if d, ok := engine.Float(in, "inside_diameter"); ok && d > 0 {
		return d / 2.0, nil
	}
	return 0, engine.Missing("inside_radius")
}

// cylindricalShell implements UG-27(c)(1):
// t = P*R / (S*E - 0.6*P).
func cylindricalShell(p shellParams) (engine.Results, error) {
	denom := p.AllowableStress*p.JointEfficiency - 0.6*p.Pressure
	if denom <= 0 {
		return nil, engine.Infeasible("S*E - 0.6*P must be positive")
	}
	required := p.Pressure * p.Radius / denom
	minimum := required + p.CorrosionAllowance
	// Safety factor at the full (corroded-inclusive) thickness.
	sf := p.AllowableStress * p.JointEfficiency /
		(p.Pressure * (p.Radius/minimum + 0.6))
	return engine.Results{
		"required_thickness": required,
		"minimum_thickness":  minimum,
		"safety_factor":      sf,
		"notes":              "ASME VIII Div 1 UG-27 cylindrical shell, circumferential stress governs.",
	}, nil
}

// sphericalShell implements UG-27(d):
// t = P*R / (2*S*E - 0.2*P).
func sphericalShell(p shellParams) (engine.Results, error) {
	denom := 2.0*p.AllowableStress*p.JointEfficiency - 0.2*p.Pressure
	if denom <= 0 {
		return nil, engine.Infeasible("2*S*E - 0.2*P must be positive")
	}
	required := p.Pressure * p.Radius / denom
	minimum := required + p.CorrosionAllowance
	sf := 2.0 * p.AllowableStress * p.JointEfficiency /
		(p.Pressure * (p.Radius/minimum + 0.2))
	return engine.Results{
		"required_thickness": required,
		"minimum_thickness":  minimum,
		"safety_factor":      sf,
		"notes":              "ASME VIII Div 1 UG-27 spherical shell.",
	}, nil
}

type headParams struct {
	Pressure           float64
	Diameter           float64
	AllowableStress    float64
	JointEfficiency    float64
	CorrosionAllowance float64
	HeadType           string
	AspectRatio        float64
	KnuckleRadius      float64
	CrownRadius        float64
}

func parseHead(in engine.Inputs) (headParams, error) {
	var p headParams
	var err error
	if p.Pressure, err = engine.PositiveFloat(in, "design_pressure"); err != nil {
		return p, err
	}
	if p.Diameter, err = engine.PositiveFloat(in, "inside_diameter"); err != nil {
		return p, err
	}
	if p.AllowableStress, err = engine.PositiveFloat(in, "allowable_stress"); err != nil {
		return p, err
	}
	p.JointEfficiency = engine.FloatDefault(in, "joint_efficiency", 1.0)
	p.CorrosionAllowance = engine.FloatDefault(in, "corrosion_allowance", 0)
	p.HeadType = engine.StringDefault(in, "head_type", "ellipsoidal")
	p.AspectRatio = engine.FloatDefault(in, "aspect_ratio", 2.0)
	switch p.HeadType {
	case "ellipsoidal", "hemispherical":
	case "torispherical":
		if p.KnuckleRadius, err = engine.PositiveFloat(in, "knuckle_radius"); err != nil {
			return p, err
		}
		if p.CrownRadius, err = engine.PositiveFloat(in, "crown_radius"); err != nil {
			return p, err
		}
	default:
		return p, engine.Invalid("head_type", "must be ellipsoidal, torispherical or hemispherical")
	}
	return p, nil
}

func headFactor(p headParams) float64 {
	switch p.HeadType {
	case "torispherical":
		return 0.885 / (1.0 + p.KnuckleRadius/p.CrownRadius)
	case "hemispherical":
		return 0.5
	}
	// Ellipsoidal: K = 1.0 for the standard 2:1 head.
	if p.AspectRatio == 2.0 {
		return 1.0
	}
	return math.Max(1.0, p.AspectRatio/2.0)
}

func headThickness(p headParams) (engine.Results, error) {
	k := headFactor(p)
	denom := 2.0*p.AllowableStress*p.JointEfficiency - 0.2*p.Pressure
	if denom <= 0 {
		return nil, engine.Infeasible("2*S*E - 0.2*P must be positive")
	}
	required := p.Pressure * p.Diameter * k / denom
	minimum := required + p.CorrosionAllowance
	return engine.Results{
		"head_type":          p.HeadType,
		"head_factor":        k,
		"required_thickness": required,
		"minimum_thickness":  minimum,
		"notes":              "ASME VIII Div 1 UG-32 formed head.",
	}, nil
}

type externalParams struct {
	OutsideDiameter  float64
	WallThickness    float64
	UnsupportedLen   float64
	YieldStrength    float64
	ElasticModulus   float64
	ExternalPressure float64
}

func parseExternal(in engine.Inputs) (externalParams, error) {
	var p externalParams
	var err error
	if p.OutsideDiameter, err = engine.PositiveFloat(in, "outside_diameter"); err != nil {
		return p, err
	}
	if p.WallThickness, err = engine.PositiveFloat(in, "wall_thickness"); err != nil {
		return p, err
	}
	if p.UnsupportedLen, err = engine.PositiveFloat(in, "unsupported_length"); err != nil {
		return p, err
	}
	if p.YieldStrength, err = engine.PositiveFloat(in, "yield_strength"); err != nil {
		return p, err
	}
	if p.ExternalPressure, err = engine.PositiveFloat(in, "external_pressure"); err != nil {
		return p, err
	}
	p.ElasticModulus = engine.FloatDefault(in, "elastic_modulus", 29.0e6)
	return p, nil
}

// externalPressure is a closed-form approximation of the UG-28 procedure,
// not the full code charts. Thick shells (Do/t < 10) are yield-governed,
// thinner shells use an elastic buckling estimate with a design factor of 3.
func externalPressure(p externalParams) (engine.Results, error) {
	doOverT := p.OutsideDiameter / p.WallThickness
	lOverDo := p.UnsupportedLen / p.OutsideDiameter

	var allowable float64
	var regime string
	if doOverT < 10.0 {
		allowable = 2.0 * p.YieldStrength / (3.0 * doOverT)
		regime = "thick_wall_yield"
	} else {
		allowable = 2.6 * p.ElasticModulus * math.Pow(p.WallThickness/p.OutsideDiameter, 2.5) /
			(lOverDo * 3.0)
		regime = "elastic_buckling"
	}

	return engine.Results{
		"do_over_t":                   doOverT,
		"l_over_do":                   lOverDo,
		"governing_regime":            regime,
		"allowable_external_pressure": allowable,
		"is_adequate":                 allowable >= p.ExternalPressure,
		"safety_factor":               allowable / p.ExternalPressure,
		"notes":                       "Simplified external pressure check; full UG-28 chart procedure not performed.",
	}, nil
}

type nozzleParams struct {
	Pressure        float64
	VesselRadius    float64
	AllowableStress float64
	JointEfficiency float64
	NozzleDiameter  float64
	ShellThickness  float64
	NozzleThickness float64
}

func parseNozzle(in engine.Inputs) (nozzleParams, error) {
	var p nozzleParams
	var err error
	if p.Pressure, err = engine.PositiveFloat(in, "design_pressure"); err != nil {
		return p, err
	}
	if p.VesselRadius, err = radiusOf(in); err != nil {
		return p, err
	}
	if p.AllowableStress, err = engine.PositiveFloat(in, "allowable_stress"); err != nil {
		return p, err
	}
	if p.NozzleDiameter, err = engine.PositiveFloat(in, "nozzle_diameter"); err != nil {
		return p, err
	}
	if p.ShellThickness, err = engine.PositiveFloat(in, "shell_thickness"); err != nil {
		return p, err
	}
	if p.NozzleThickness, err = engine.PositiveFloat(in, "nozzle_thickness"); err != nil {
		return p, err
	}
	p.JointEfficiency = engine.FloatDefault(in, "joint_efficiency", 1.0)
	return p, nil
}

// nozzleReinforcement performs a UG-37 style area replacement check. The
// available area counts excess shell wall plus nozzle wall within 2.5t of
// the shell surface on both sides.
func nozzleReinforcement(p nozzleParams) (engine.Results, error) {
	denom := p.AllowableStress*p.JointEfficiency - 0.6*p.Pressure
	if denom <= 0 {
		return nil, engine.Infeasible("S*E - 0.6*P must be positive")
	}
	shellRequired := p.Pressure * p.VesselRadius / denom
	nozzleRequired := p.Pressure * (p.NozzleDiameter / 2.0) / denom

	areaRequired := p.NozzleDiameter * shellRequired
	areaShell := p.NozzleDiameter * (p.ShellThickness - shellRequired)
	if areaShell < 0 {
		areaShell = 0
	}
	areaNozzle := 5.0 * p.ShellThickness * (p.NozzleThickness - nozzleRequired)
	if areaNozzle < 0 {
		areaNozzle = 0
	}
	available := areaShell + areaNozzle

	ratio := available / areaRequired
	deficit := areaRequired - available
	if deficit < 0 {
		deficit = 0
	}
	return engine.Results{
		"required_area":              areaRequired,
		"available_shell_area":       areaShell,
		"available_nozzle_area":      areaNozzle,
		"available_area":             available,
		"reinforcement_ratio":        ratio,
		"reinforcement_pad_required": ratio < 1.0,
		"pad_area_required":          deficit,
		"notes":                      "Simplified UG-37 area replacement; pad, weld and limit-of-reinforcement details not evaluated.",
	}, nil
}
