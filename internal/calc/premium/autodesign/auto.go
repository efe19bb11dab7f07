// Package autodesign selects the smallest standard plate thickness that
// satisfies the ASME VIII Division 1 cylindrical shell requirement.
package autodesign

import (
	"fmt"

	asmediv1 "VesselForge/internal/calc/asmediv1"
	engine "VesselForge/internal/calc/engine"
)

type ShellAutoInput struct {
	DesignPressure     float64 `json:"design_pressure"`
	InsideRadius       float64 `json:"inside_radius"`
	AllowableStress    float64 `json:"allowable_stress"`
	JointEfficiency    float64 `json:"joint_efficiency"`
	CorrosionAllowance float64 `json:"corrosion_allowance"`
}

type ShellAutoResult struct {
	RequiredThickness float64 `json:"required_thickness"`
	MinimumThickness  float64 `json:"minimum_thickness"`
	SelectedThickness float64 `json:"selected_thickness"`
	SafetyFactor      float64 `json:"safety_factor"`
	Notes             string  `json:"notes"`
}

// Shell runs the Division 1 cylindrical calculation and rounds the minimum
// thickness up to a standard plate size.
func Shell(in ShellAutoInput) (ShellAutoResult, error) {
	var c asmediv1.Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type":    "cylindrical_shell",
		"design_pressure":     in.DesignPressure,
		"inside_radius":       in.InsideRadius,
		"allowable_stress":    in.AllowableStress,
		"joint_efficiency":    in.JointEfficiency,
		"corrosion_allowance": in.CorrosionAllowance,
	})
	if err != nil {
		return ShellAutoResult{}, err
	}

	required := res["required_thickness"].(float64)
	minimum := res["minimum_thickness"].(float64)

	selected := 0.0
	for _, plate := range asmediv1.StandardPlateThicknesses {
		if plate >= minimum {
			selected = plate
			break
		}
	}
	if selected == 0 {
		return ShellAutoResult{}, fmt.Errorf("no standard plate covers %.3f in", minimum)
	}

	je := in.JointEfficiency
	if je <= 0 {
		je = 1.0
	}
	sf := in.AllowableStress * je /
		(in.DesignPressure * (in.InsideRadius/selected + 0.6))

	return ShellAutoResult{
		RequiredThickness: required,
		MinimumThickness:  minimum,
		SelectedThickness: selected,
		SafetyFactor:      sf,
		Notes:             "Smallest standard plate at or above the corroded minimum.",
	}, nil
}
