// Package material derives allowable stresses and code derating factors from
// basic material properties. Lookup tables are static ordered breakpoints.
package material

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
	case "allowable_stress":
		yield, err := engine.PositiveFloat(in, "yield_strength")
		if err != nil {
			return nil, err
		}
		tensile, err := engine.PositiveFloat(in, "tensile_strength")
		if err != nil {
			return nil, err
		}
		code := engine.StringDefault(in, "design_code", "asme_viii_div1")
		return func() (engine.Results, error) { return allowableStress(yield, tensile, code) }, nil
	case "temperature_derating":
		temp, ok := engine.Float(in, "design_temperature")
		if !ok {
			return nil, engine.Missing("design_temperature")
		}
		return func() (engine.Results, error) { return temperatureDerating(temp) }, nil
	case "joint_efficiency":
		joint := engine.StringDefault(in, "joint_type", "butt")
		radiography := engine.StringDefault(in, "radiography", "none")
		return func() (engine.Results, error) { return jointEfficiency(joint, radiography) }, nil
	case "temperature_limits":
		mat, ok := engine.String(in, "material")
		if !ok || mat == "" {
			return nil, engine.Missing("material")
		}
		temp, ok := engine.Float(in, "design_temperature")
		if !ok {
			return nil, engine.Missing("design_temperature")
		}
		return func() (engine.Results, error) { return temperatureLimits(mat, temp) }, nil
	}
	return nil, engine.UnsupportedType(calcType)
}

func allowableStress(yield, tensile float64, code string) (engine.Results, error) {
	// Division 1 style design margins; other codes get a conservative pair.
	yieldFactor, tensileFactor := 2.0, 4.0
	if code == "asme_viii_div1" || code == "asme_b31_3" {
		yieldFactor, tensileFactor = 1.5, 3.5
	}
	fromYield := yield / yieldFactor
	fromTensile := tensile / tensileFactor
	allowable := fromYield
	governing := "yield_strength"
	if fromTensile < fromYield {
		allowable = fromTensile
		governing = "tensile_strength"
	}
	return engine.Results{
		"allowable_stress":   allowable,
		"from_yield":         fromYield,
		"from_tensile":       fromTensile,
		"governing_criteria": governing,
		"design_code":        code,
	}, nil
}

// deratingBreakpoints maps an upper temperature bound (degF, inclusive) to a
// strength retention factor. Ordered ascending; temperatures above the last
// bound use finalDeratingFactor.
var deratingBreakpoints = []struct {
	MaxTemp float64
	Factor  float64
}{
	{100, 1.00},
	{200, 0.95},
	{300, 0.90},
	{400, 0.85},
	{500, 0.80},
	{600, 0.70},
	{700, 0.65},
}

const finalDeratingFactor = 0.60

// DeratingFactor returns the stepped strength-retention factor for a design
// temperature in degrees Fahrenheit.
func DeratingFactor(temp float64) float64 {
	for _, bp := range deratingBreakpoints {
		if temp <= bp.MaxTemp {
			return bp.Factor
		}
	}
	return finalDeratingFactor
}

func temperatureDerating(temp float64) (engine.Results, error) {
	return engine.Results{
		"design_temperature": temp,
		"derating_factor":    DeratingFactor(temp),
	}, nil
}

// jointEfficiencies is the UW-12 style table keyed by joint type then
// radiography level.
var jointEfficiencies = map[string]map[string]float64{
	"butt": {"full": 1.00, "spot": 0.85, "none": 0.70},
	"lap":  {"full": 0.80, "spot": 0.70, "none": 0.60},
}

const defaultJointEfficiency = 0.70

// JointEfficiency looks up the weld joint efficiency. Unknown joint types or
// radiography levels fall back to the conservative default without failing.
func JointEfficiency(jointType, radiography string) float64 {
	byRadiography, ok := jointEfficiencies[jointType]
	if !ok {
		return defaultJointEfficiency
	}
	e, ok := byRadiography[radiography]
	if !ok {
		return defaultJointEfficiency
	}
	return e
}

func jointEfficiency(jointType, radiography string) (engine.Results, error) {
	return engine.Results{
		"joint_type":       jointType,
		"radiography":      radiography,
		"joint_efficiency": JointEfficiency(jointType, radiography),
	}, nil
}

// temperatureLimitsByFamily holds the maximum recommended design temperature
// (degF) per material family.
var temperatureLimitsByFamily = map[string]float64{
	"carbon_steel":    800,
	"low_alloy_steel": 1000,
	"stainless_steel": 1500,
	"nickel_alloy":    1800,
	"aluminum":        400,
	"titanium":        600,
}

// TemperatureLimit returns the design temperature limit for a material
// family, with ok=false for unknown families.
func TemperatureLimit(material string) (float64, bool) {
	limit, ok := temperatureLimitsByFamily[material]
	return limit, ok
}

func temperatureLimits(mat string, temp float64) (engine.Results, error) {
	limit, ok := TemperatureLimit(mat)
	if !ok {
		return nil, engine.Invalid("material", "unknown material family")
	}
	return engine.Results{
		"material":           mat,
		"temperature_limit":  limit,
		"design_temperature": temp,
		"within_limit":       temp <= limit,
		"margin":             limit - temp,
	}, nil
}
