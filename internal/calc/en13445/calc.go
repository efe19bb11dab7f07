// Package en13445 implements EN 13445-3 design formulas for shells and
// heads. Unlike the ASME packages this one works in metric units: pressures
// in MPa, lengths in mm, temperatures in degrees Celsius.
package en13445

import (
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
	}
	return nil, engine.UnsupportedType(calcType)
}

type shellParams struct {
	Pressure           float64 // MPa
	Diameter           float64 // mm
	DesignStress       float64 // MPa, nominal design stress f
	JointCoefficient   float64 // z
	CorrosionAllowance float64 // mm
}

func parseShell(in engine.Inputs) (shellParams, error) {
	var p shellParams
	var err error
	if p.Pressure, err = engine.PositiveFloat(in, "design_pressure"); err != nil {
		return p, err
	}
	if p.Diameter, err = engine.PositiveFloat(in, "inside_diameter"); err != nil {
		return p, err
	}
	if p.DesignStress, err = engine.PositiveFloat(in, "nominal_design_stress"); err != nil {
		return p, err
	}
	p.JointCoefficient = engine.FloatDefault(in, "joint_coefficient", 1.0)
	p.CorrosionAllowance = engine.FloatDefault(in, "corrosion_allowance", 0)
	return p, nil
}

// cylindricalShell implements EN 13445-3 7.4.2: e = P*D / (2*f*z - P).
func cylindricalShell(p shellParams) (engine.Results, error) {
	denom := 2.0*p.DesignStress*p.JointCoefficient - p.Pressure
	if denom <= 0 {
		return nil, engine.Infeasible("2*f*z - P must be positive")
	}
	required := p.Pressure * p.Diameter / denom
	minimum := required + p.CorrosionAllowance
	sf := 2.0 * p.DesignStress * p.JointCoefficient /
		(p.Pressure * (p.Diameter/minimum + 1.0))
	return engine.Results{
		"required_thickness": required,
		"minimum_thickness":  minimum,
		"safety_factor":      sf,
		"notes":              "EN 13445-3 cylindrical shell, thicknesses in mm.",
	}, nil
}

// sphericalShell implements EN 13445-3 7.4.3: e = P*D / (4*f*z - P).
func sphericalShell(p shellParams) (engine.Results, error) {
	denom := 4.0*p.DesignStress*p.JointCoefficient - p.Pressure
	if denom <= 0 {
		return nil, engine.Infeasible("4*f*z - P must be positive")
	}
	required := p.Pressure * p.Diameter / denom
	minimum := required + p.CorrosionAllowance
	sf := 4.0 * p.DesignStress * p.JointCoefficient /
		(p.Pressure * (p.Diameter/minimum + 1.0))
	return engine.Results{
		"required_thickness": required,
		"minimum_thickness":  minimum,
		"safety_factor":      sf,
		"notes":              "EN 13445-3 spherical shell, thicknesses in mm.",
	}, nil
}

type headParams struct {
	shellParams
	HeadType string
}

func parseHead(in engine.Inputs) (headParams, error) {
	var p headParams
	var err error
	if p.shellParams, err = parseShell(in); err != nil {
		return p, err
	}
	p.HeadType = engine.StringDefault(in, "head_type", "ellipsoidal")
	switch p.HeadType {
	case "ellipsoidal", "torispherical", "hemispherical":
	default:
		return p, engine.Invalid("head_type", "must be ellipsoidal, torispherical or hemispherical")
	}
	return p, nil
}

// betaFactors are the EN head shape factors.
var betaFactors = map[string]float64{
	"ellipsoidal":   1.0,
	"torispherical": 1.77,
	"hemispherical": 0.5,
}

func headThickness(p headParams) (engine.Results, error) {
	beta := betaFactors[p.HeadType]
	denom := 2.0*p.DesignStress*p.JointCoefficient - p.Pressure
	if denom <= 0 {
		return nil, engine.Infeasible("2*f*z - P must be positive")
	}
	required := p.Pressure * p.Diameter * beta / denom
	minimum := required + p.CorrosionAllowance
	return engine.Results{
		"head_type":          p.HeadType,
		"beta_factor":        beta,
		"required_thickness": required,
		"minimum_thickness":  minimum,
		"notes":              "EN 13445-3 formed head, thicknesses in mm.",
	}, nil
}
