// Package vessel covers general pressure-vessel checks that are not tied to
// a single design code: wind and seismic loads on a vertical vessel and a
// simplified fitness-for-service screen.
package vessel

import (
	"math"

	engine "VesselForge/internal/calc/engine"
)

// Fitness-for-service ratings, ordered from best to worst.
const (
	RatingFit     = "fit_for_service"
	RatingMonitor = "monitor"
	RatingRepair  = "repair_required"
	RatingReplace = "replace"
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
	case "wind_load":
		p, err := parseWind(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return windLoad(p) }, nil
	case "seismic_load":
		p, err := parseSeismic(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return seismicLoad(p) }, nil
	case "fitness_for_service":
		p, err := parseFFS(in)
		if err != nil {
			return nil, err
		}
		return func() (engine.Results, error) { return fitnessForService(p) }, nil
	}
	return nil, engine.UnsupportedType(calcType)
}

type windParams struct {
	WindSpeed           float64 // mph
	ExposureCoefficient float64
	ImportanceFactor    float64
	GustFactor          float64
	ForceCoefficient    float64
	ProjectedArea       float64 // ft^2
	Height              float64 // ft
}

func parseWind(in engine.Inputs) (windParams, error) {
	var p windParams
	var err error
	if p.WindSpeed, err = engine.PositiveFloat(in, "wind_speed"); err != nil {
		return p, err
	}
	if p.ProjectedArea, err = engine.PositiveFloat(in, "projected_area"); err != nil {
		return p, err
	}
	if p.Height, err = engine.PositiveFloat(in, "vessel_height"); err != nil {
		return p, err
	}
	p.ExposureCoefficient = engine.FloatDefault(in, "exposure_coefficient", 1.0)
	p.ImportanceFactor = engine.FloatDefault(in, "importance_factor", 1.0)
	p.GustFactor = engine.FloatDefault(in, "gust_factor", 0.85)
	p.ForceCoefficient = engine.FloatDefault(in, "force_coefficient", 0.8)
	return p, nil
}

// windLoad follows the ASCE 7 velocity-pressure form:
// q = 0.00256*Ce*I*V^2, F = q*Gf*Cf*A, M = F*H/2.
func windLoad(p windParams) (engine.Results, error) {
	q := 0.00256 * p.ExposureCoefficient * p.ImportanceFactor * p.WindSpeed * p.WindSpeed
	force := q * p.GustFactor * p.ForceCoefficient * p.ProjectedArea
	moment := force * p.Height / 2.0
	return engine.Results{
		"velocity_pressure":  q,
		"wind_force":         force,
		"overturning_moment": moment,
		"notes":              "Uniform wind pressure with resultant at mid-height.",
	}, nil
}

type seismicParams struct {
	SeismicCoefficient float64
	ImportanceFactor   float64
	OperatingWeight    float64 // lb
	ResponseModifier   float64
	Height             float64 // ft
}

func parseSeismic(in engine.Inputs) (seismicParams, error) {
	var p seismicParams
	var err error
	if p.SeismicCoefficient, err = engine.PositiveFloat(in, "seismic_coefficient"); err != nil {
		return p, err
	}
	if p.OperatingWeight, err = engine.PositiveFloat(in, "operating_weight"); err != nil {
		return p, err
	}
	if p.Height, err = engine.PositiveFloat(in, "vessel_height"); err != nil {
		return p, err
	}
	p.ImportanceFactor = engine.FloatDefault(in, "importance_factor", 1.0)
	p.ResponseModifier = engine.FloatDefault(in, "response_modifier", 3.0)
	return p, nil
}

// seismicLoad is the equivalent-lateral-force base shear with the resultant
// taken at 0.75*H for a uniform vertical vessel.
func seismicLoad(p seismicParams) (engine.Results, error) {
	shear := p.SeismicCoefficient * p.ImportanceFactor * p.OperatingWeight / p.ResponseModifier
	moment := shear * 0.75 * p.Height
	return engine.Results{
		"base_shear":         shear,
		"overturning_moment": moment,
		"notes":              "Equivalent lateral force method.",
	}, nil
}

type ffsParams struct {
	CurrentThickness float64
	MinimumThickness float64
	CorrosionRate    float64 // in/yr
	RequiredLife     float64 // yr
}

func parseFFS(in engine.Inputs) (ffsParams, error) {
	var p ffsParams
	var err error
	if p.CurrentThickness, err = engine.PositiveFloat(in, "current_thickness"); err != nil {
		return p, err
	}
	if p.MinimumThickness, err = engine.PositiveFloat(in, "minimum_required_thickness"); err != nil {
		return p, err
	}
	if p.CorrosionRate, err = engine.PositiveFloat(in, "corrosion_rate"); err != nil {
		return p, err
	}
	p.RequiredLife = engine.FloatDefault(in, "required_remaining_life", 10.0)
	return p, nil
}

// recommendations keyed by rating.
var ffsRecommendations = map[string][]string{
	RatingFit: {
		"Continue operation at current conditions.",
		"Maintain the existing inspection program.",
	},
	RatingMonitor: {
		"Continue operation with increased inspection frequency.",
		"Trend wall thickness to confirm the corrosion rate.",
	},
	RatingRepair: {
		"Plan repair or re-rate at the next turnaround.",
		"Evaluate a reduced maximum allowable working pressure.",
	},
	RatingReplace: {
		"Remove from service; wall thickness is below the required minimum.",
		"Perform a Level 2/3 assessment before any continued operation.",
	},
}

func fitnessForService(p ffsParams) (engine.Results, error) {
	remaining := (p.CurrentThickness - p.MinimumThickness) / p.CorrosionRate
	if remaining < 0 {
		remaining = 0
	}
	adequate := p.CurrentThickness >= p.MinimumThickness

	var rating string
	switch {
	case adequate && remaining >= p.RequiredLife:
		rating = RatingFit
	case adequate && remaining >= 0.5*p.RequiredLife:
		rating = RatingMonitor
	case adequate:
		rating = RatingRepair
	default:
		rating = RatingReplace
	}

	// Next inspection at a third of remaining life, capped at five years.
	interval := math.Min(5.0, remaining/3.0)
	if rating == RatingReplace {
		interval = 0
	} else if interval < 0.5 {
		interval = 0.5
	}

	return engine.Results{
		"remaining_life_years":  remaining,
		"thickness_adequate":    adequate,
		"rating":                rating,
		"next_inspection_years": interval,
		"recommendations":       ffsRecommendations[rating],
	}, nil
}
