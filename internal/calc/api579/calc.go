// Package api579 implements Level 1 style API 579-1 fitness-for-service
// screens for general metal loss, local metal loss and pitting damage.
// Each screen yields an ordered rating that drives the recommended action.
package api579

import (
	engine "VesselForge/internal/calc/engine"
)

// Ratings, ordered from best to worst.
const (
	RatingAcceptable      = "Level 1 - Acceptable"
	RatingMonitor         = "Level 1 - Monitor"
	RatingDetailedAssess  = "Level 2 - Detailed Assessment Required"
	RatingImmediateAction = "Level 2 - Immediate Action"
	RatingRepairRequired  = "Repair Required"
)

var recommendedActions = map[string]string{
	RatingAcceptable:      "Continue operation; maintain the current inspection plan.",
	RatingMonitor:         "Continue operation with shortened inspection intervals.",
	RatingDetailedAssess:  "Perform a Level 2 assessment before the next inspection.",
	RatingImmediateAction: "Remove from service or reduce pressure immediately.",
	RatingRepairRequired:  "Repair the damaged area before continued operation.",
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

func parse(in engine.Inputs) (func() (engine.Results, error), error) {
	calcType, err := engine.CalculationType(in)
	if err != nil {
		return nil, err
	}
	switch calcType {
	case "general_metal_loss":
		p, err := parseGeneral(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return generalMetalLoss(p) }, nil
	case "local_metal_loss":
		p, err := parseLocal(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return localMetalLoss(p) }, nil
	case "pitting":
		p, err := parsePitting(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return pittingDamage(p) }, nil
	}
	return nil, engine.UnsupportedType(calcType)
}

type generalParams struct {
	OriginalThickness float64
	CurrentThickness  float64
	CorrosionRate     float64
	Pressure          float64
	Radius            float64
	AllowableStress   float64
	JointEfficiency   float64
}

func parseGeneral(in engine.Inputs) (generalParams, error) {
	var p generalParams
	var err error
	if p.OriginalThickness, err = engine.PositiveFloat(in, "original_thickness"); err != nil {
		return p, err
	}
	if p.CurrentThickness, err = engine.PositiveFloat(in, "current_thickness"); err != nil {
		return p, err
	}
	if p.CurrentThickness > p.OriginalThickness {
		return p, engine.Invalid("current_thickness", "cannot exceed original thickness")
	}
	if p.CorrosionRate, err = engine.PositiveFloat(in, "corrosion_rate"); err != nil {
		return p, err
	}
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
	return p, nil
}

// generalMetalLoss rates uniform wall loss. The required thickness comes
// from the Division 1 cylindrical formula; the rating combines the measured
// thickness ratio with thickness adequacy.
func generalMetalLoss(p generalParams) (engine.Results, error) {
	denom := p.AllowableStress*p.JointEfficiency - 0.6*p.Pressure
	if denom <= 0 {
		return nil, engine.Infeasible("S*E - 0.6*P must be positive")
	}
	required := p.Pressure * p.Radius / denom

	ratio := p.CurrentThickness / p.OriginalThickness
	adequate := p.CurrentThickness >= required

	remaining := (p.CurrentThickness - required) / p.CorrosionRate
	if remaining < 0 {
		remaining = 0
	}

	var rating string
	switch {
	case adequate && ratio >= 0.90:
		rating = RatingAcceptable
	case adequate && ratio >= 0.80:
		rating = RatingMonitor
	case adequate:
		rating = RatingDetailedAssess
	default:
		rating = RatingImmediateAction
	}

	return engine.Results{
		"thickness_ratio":            ratio,
		"minimum_required_thickness": required,
		"thickness_adequate":         adequate,
		"remaining_life_years":       remaining,
		"rating":                     rating,
		"recommended_action":         recommendedActions[rating],
	}, nil
}

type localParams struct {
	DefectLength       float64
	DefectWidth        float64
	RemainingThickness float64
	RequiredThickness  float64
	InsideDiameter     float64
}

func parseLocal(in engine.Inputs) (localParams, error) {
	var p localParams
	var err error
	if p.DefectLength, err = engine.PositiveFloat(in, "defect_length"); err != nil {
		return p, err
	}
	if p.DefectWidth, err = engine.PositiveFloat(in, "defect_width"); err != nil {
		return p, err
	}
	if p.RemainingThickness, err = engine.PositiveFloat(in, "remaining_thickness"); err != nil {
		return p, err
	}
	if p.RequiredThickness, err = engine.PositiveFloat(in, "minimum_required_thickness"); err != nil {
		return p, err
	}
	if p.InsideDiameter, err = engine.PositiveFloat(in, "inside_diameter"); err != nil {
		return p, err
	}
	return p, nil
}

// localMetalLoss rates an isolated thin area by its footprint relative to
// the shell and the remaining thickness at the defect.
func localMetalLoss(p localParams) (engine.Results, error) {
	areaRatio := p.DefectLength * p.DefectWidth / (p.InsideDiameter * p.InsideDiameter)
	adequate := p.RemainingThickness >= p.RequiredThickness

	var rating string
	switch {
	case adequate && areaRatio <= 0.10:
		rating = RatingAcceptable
	case adequate && areaRatio <= 0.25:
		rating = RatingDetailedAssess
	default:
		rating = RatingRepairRequired
	}

	return engine.Results{
		"defect_area_ratio":  areaRatio,
		"thickness_adequate": adequate,
		"rating":             rating,
		"recommended_action": recommendedActions[rating],
	}, nil
}

type pittingParams struct {
	PitDepth         float64
	PitDiameter      float64
	PitSpacing       float64
	NominalThickness float64
}

func parsePitting(in engine.Inputs) (pittingParams, error) {
	var p pittingParams
	var err error
	if p.PitDepth, err = engine.PositiveFloat(in, "pit_depth"); err != nil {
		return p, err
	}
	if p.PitDiameter, err = engine.PositiveFloat(in, "pit_diameter"); err != nil {
		return p, err
	}
	if p.PitSpacing, err = engine.PositiveFloat(in, "pit_spacing"); err != nil {
		return p, err
	}
	if p.NominalThickness, err = engine.PositiveFloat(in, "nominal_thickness"); err != nil {
		return p, err
	}
	if p.PitDepth >= p.NominalThickness {
		return p, engine.Invalid("pit_depth", "cannot reach through the wall")
	}
	return p, nil
}

// pittingDamage rates scattered pitting by depth ratio and how widely the
// pits are spaced relative to their size.
func pittingDamage(p pittingParams) (engine.Results, error) {
	depthRatio := p.PitDepth / p.NominalThickness
	spacingRatio := p.PitSpacing / p.PitDiameter

	var rating string
	switch {
	case depthRatio <= 0.25 && spacingRatio >= 3.0:
		rating = RatingAcceptable
	case depthRatio <= 0.50 && spacingRatio >= 1.5:
		rating = RatingMonitor
	default:
		rating = RatingDetailedAssess
	}

	return engine.Results{
		"pit_depth_ratio":    depthRatio,
		"pit_spacing_ratio":  spacingRatio,
		"rating":             rating,
		"recommended_action": recommendedActions[rating],
	}, nil
}
