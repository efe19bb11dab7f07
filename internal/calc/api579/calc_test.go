package api579

import (
	"errors"
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

func generalInputs(current float64) engine.Inputs {
	return engine.Inputs{
		"calculation_type":   "general_metal_loss",
		"original_thickness": 0.375,
		"current_thickness":  current,
		"corrosion_rate":     0.005,
		"design_pressure":    150.0,
		"inside_radius":      24.0,
		"allowable_stress":   20000.0,
	}
}

func TestGeneralMetalLoss(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(generalInputs(0.250))
	if err != nil {
		t.Fatal(err)
	}
	almost(t, res["thickness_ratio"].(float64), 0.6667, 0.001)
	almost(t, res["minimum_required_thickness"].(float64), 0.1808, 0.001)
	// (0.250 - 0.1808) / 0.005
	almost(t, res["remaining_life_years"].(float64), 13.84, 0.05)
	// Ratio below 0.80 with adequate thickness: Level 2 review.
	if got := res["rating"].(string); got != RatingDetailedAssess {
		t.Errorf("rating = %q, want %q", got, RatingDetailedAssess)
	}
	if res["recommended_action"].(string) == "" {
		t.Error("missing recommended action")
	}
}

func TestGeneralMetalLossRatings(t *testing.T) {
	cases := []struct {
		current float64
		rating  string
	}{
		{0.360, RatingAcceptable},     // ratio 0.96
		{0.310, RatingMonitor},        // ratio 0.83
		{0.250, RatingDetailedAssess}, // ratio 0.67, still adequate
		{0.170, RatingImmediateAction}, // below required thickness
	}
	var c Calculator
	for _, tc := range cases {
		res, err := c.Calculate(generalInputs(tc.current))
		if err != nil {
			t.Fatalf("current=%v: %v", tc.current, err)
		}
		if got := res["rating"].(string); got != tc.rating {
			t.Errorf("current=%v: rating %q, want %q", tc.current, got, tc.rating)
		}
	}
}

// A lower thickness ratio must never produce a better rating.
func TestGeneralMetalLossMonotonic(t *testing.T) {
	rank := map[string]int{
		RatingAcceptable:      0,
		RatingMonitor:         1,
		RatingDetailedAssess:  2,
		RatingImmediateAction: 3,
	}
	var c Calculator
	prev := -1
	for current := 0.375; current >= 0.10; current -= 0.005 {
		res, err := c.Calculate(generalInputs(current))
		if err != nil {
			t.Fatalf("current=%v: %v", current, err)
		}
		r := rank[res["rating"].(string)]
		if r < prev {
			t.Fatalf("current=%v: rating improved as wall thinned", current)
		}
		prev = r
	}
}

func TestGeneralMetalLossInfeasible(t *testing.T) {
	var c Calculator
	in := generalInputs(0.250)
	in["allowable_stress"] = 80.0
	if _, err := c.Calculate(in); !errors.Is(err, engine.ErrInvalidStressCondition) {
		t.Fatalf("want ErrInvalidStressCondition, got %v", err)
	}
}

func TestGeneralMetalLossCurrentAboveOriginal(t *testing.T) {
	var c Calculator
	in := generalInputs(0.400)
	if _, err := c.Calculate(in); !errors.Is(err, engine.ErrInvalidValue) {
		t.Fatalf("want ErrInvalidValue, got %v", err)
	}
}

func TestLocalMetalLoss(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type":           "local_metal_loss",
		"defect_length":              4.0,
		"defect_width":               2.0,
		"remaining_thickness":        0.250,
		"minimum_required_thickness": 0.180,
		"inside_diameter":            48.0,
	})
	if err != nil {
		t.Fatal(err)
	}
	// 8 / 2304
	almost(t, res["defect_area_ratio"].(float64), 0.00347, 0.0001)
	if got := res["rating"].(string); got != RatingAcceptable {
		t.Errorf("rating = %q, want %q", got, RatingAcceptable)
	}
}

func TestLocalMetalLossInadequateThickness(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type":           "local_metal_loss",
		"defect_length":              4.0,
		"defect_width":               2.0,
		"remaining_thickness":        0.120,
		"minimum_required_thickness": 0.180,
		"inside_diameter":            48.0,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := res["rating"].(string); got != RatingRepairRequired {
		t.Errorf("rating = %q, want %q", got, RatingRepairRequired)
	}
}

func TestPittingRatings(t *testing.T) {
	cases := []struct {
		depth, spacing float64
		rating         string
	}{
		{0.050, 2.0, RatingAcceptable},     // 13% deep, widely spaced
		{0.150, 1.0, RatingMonitor},        // 40% deep
		{0.250, 0.6, RatingDetailedAssess}, // 67% deep, dense
	}
	var c Calculator
	for _, tc := range cases {
		res, err := c.Calculate(engine.Inputs{
			"calculation_type":  "pitting",
			"pit_depth":         tc.depth,
			"pit_diameter":      0.5,
			"pit_spacing":       tc.spacing,
			"nominal_thickness": 0.375,
		})
		if err != nil {
			t.Fatalf("depth=%v: %v", tc.depth, err)
		}
		if got := res["rating"].(string); got != tc.rating {
			t.Errorf("depth=%v spacing=%v: rating %q, want %q", tc.depth, tc.spacing, got, tc.rating)
		}
	}
}

func TestPittingThroughWall(t *testing.T) {
	var c Calculator
	_, err := c.Calculate(engine.Inputs{
		"calculation_type":  "pitting",
		"pit_depth":         0.40,
		"pit_diameter":      0.5,
		"pit_spacing":       2.0,
		"nominal_thickness": 0.375,
	})
	if !errors.Is(err, engine.ErrInvalidValue) {
		t.Fatalf("want ErrInvalidValue, got %v", err)
	}
}
