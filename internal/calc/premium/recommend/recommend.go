// Package recommend sizes a reinforcement pad for a nozzle whose area
// replacement check came up short.
package recommend

import (
	"fmt"
	"math"
)

type PadRecommendInput struct {
	NozzleDiameter  float64 `json:"nozzle_diameter"`
	PadAreaRequired float64 `json:"pad_area_required"`
	PadThickness    float64 `json:"pad_thickness"`
}

type PadRecommendResult struct {
	PadThickness     float64 `json:"pad_thickness"`
	PadWidth         float64 `json:"pad_width"`
	PadOuterDiameter float64 `json:"pad_outer_diameter"`
	Notes            string  `json:"notes"`
}

// Pad sizes an annular pad supplying the missing reinforcement area. The
// pad contributes area on both sides of the opening, so each side carries
// half the deficit.
func Pad(in PadRecommendInput) (PadRecommendResult, error) {
	if in.NozzleDiameter <= 0 || in.PadAreaRequired <= 0 {
		return PadRecommendResult{}, fmt.Errorf("invalid input")
	}
	if in.PadThickness <= 0 {
		in.PadThickness = 0.375
	}
	width := in.PadAreaRequired / (2.0 * in.PadThickness)
	// Keep the pad practical: at least half an inch each side, and round
	// the outer diameter up to the next quarter inch.
	if width < 0.5 {
		width = 0.5
	}
	outer := math.Ceil((in.NozzleDiameter+2.0*width)*4.0) / 4.0
	return PadRecommendResult{
		PadThickness:     in.PadThickness,
		PadWidth:         width,
		PadOuterDiameter: outer,
		Notes:            "Annular reinforcement pad sized for the area deficit.",
	}, nil
}
