package vessel

import (
	"math"
	"testing"

	engine "VesselForge/internal/calc/engine"
)

func almost(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("got %v, want %v (tol %v)", got, want, tol)
	}
}

func TestWindLoad(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type": "wind_load",
		"wind_speed":       90.0,
		"projected_area":   200.0,
		"vessel_height":    40.0,
	})
	if err != nil {
		t.Fatal(err)
	}
	// q = 0.00256 * 90^2 = 20.736
	almost(t, res["velocity_pressure"].(float64), 20.736, 0.001)
	// F = q * 0.85 * 0.8 * 200
	almost(t, res["wind_force"].(float64), 2820.096, 0.01)
	almost(t, res["overturning_moment"].(float64), 56401.92, 0.1)
}

func TestSeismicLoad(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type":    "seismic_load",
		"seismic_coefficient": 0.2,
		"operating_weight":    100000.0,
		"vessel_height":       40.0,
		"response_modifier":   3.0,
	})
	if err != nil {
		t.Fatal(err)
	}
	almost(t, res["base_shear"].(float64), 6666.667, 0.01)
	almost(t, res["overturning_moment"].(float64), 200000.0, 0.5)
}

func ffsInputs(current float64) engine.Inputs {
	return engine.Inputs{
		"calculation_type":           "fitness_for_service",
		"current_thickness":          current,
		"minimum_required_thickness": 0.300,
		"corrosion_rate":             0.010,
		"required_remaining_life":    10.0,
	}
}

func TestFitnessForServiceRatings(t *testing.T) {
	cases := []struct {
		current float64
		rating  string
	}{
		{0.500, RatingFit},     // 20 yr remaining
		{0.360, RatingMonitor}, // 6 yr remaining
		{0.310, RatingRepair},  // 1 yr remaining
		{0.290, RatingReplace}, // below minimum
	}
	var c Calculator
	for _, tc := range cases {
		res, err := c.Calculate(ffsInputs(tc.current))
		if err != nil {
			t.Fatalf("current=%v: %v", tc.current, err)
		}
		if got := res["rating"].(string); got != tc.rating {
			t.Errorf("current=%v: rating %q, want %q", tc.current, got, tc.rating)
		}
		recs := res["recommendations"].([]string)
		if len(recs) == 0 {
			t.Errorf("current=%v: no recommendations", tc.current)
		}
	}
}

// A thinner wall must never rate better, all else equal.
func TestFitnessForServiceMonotonic(t *testing.T) {
	rank := map[string]int{
		RatingFit:     0,
		RatingMonitor: 1,
		RatingRepair:  2,
		RatingReplace: 3,
	}
	var c Calculator
	prev := -1
	for current := 0.60; current >= 0.25; current -= 0.01 {
		res, err := c.Calculate(ffsInputs(current))
		if err != nil {
			t.Fatalf("current=%v: %v", current, err)
		}
		r := rank[res["rating"].(string)]
		if r < prev {
			t.Fatalf("current=%v: rating improved as thickness dropped", current)
		}
		prev = r
	}
}

func TestNextInspectionInterval(t *testing.T) {
	var c Calculator

	res, err := c.Calculate(ffsInputs(0.500)) // 20 yr remaining, capped
	if err != nil {
		t.Fatal(err)
	}
	almost(t, res["next_inspection_years"].(float64), 5.0, 1e-9)

	res, err = c.Calculate(ffsInputs(0.290)) // replace: immediate
	if err != nil {
		t.Fatal(err)
	}
	almost(t, res["next_inspection_years"].(float64), 0.0, 1e-9)
}
