package pipestress

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

func TestThermalExpansion(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type":   "thermal_expansion",
		"pipe_length":        100.0,
		"temperature_change": 200.0,
	})
	if err != nil {
		t.Fatal(err)
	}
	// 100 ft * 12 * 6.5e-6 * 200 = 1.56 in
	almost(t, res["expansion_in"].(float64), 1.56, 0.001)
	almost(t, res["expansion_stress"].(float64), 36270.0, 1.0)
	if !res["flexibility_required"].(bool) {
		t.Error("1.56 in of growth should require flexibility")
	}
}

func TestThermalExpansionShortRun(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type":   "thermal_expansion",
		"pipe_length":        20.0,
		"temperature_change": 100.0,
	})
	if err != nil {
		t.Fatal(err)
	}
	// 0.156 in
	if res["flexibility_required"].(bool) {
		t.Error("short run should not require flexibility")
	}
}

func TestPressureStress(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type": "pressure_stress",
		"design_pressure":  500.0,
		"outside_diameter": 6.625,
		"wall_thickness":   0.280,
		"allowable_stress": 20000.0,
	})
	if err != nil {
		t.Fatal(err)
	}
	hoop := res["hoop_stress"].(float64)
	almost(t, hoop, 5915.18, 0.1)
	almost(t, res["longitudinal_stress"].(float64), hoop/2.0, 1e-9)
	if !res["is_adequate"].(bool) {
		t.Error("hoop stress is well below the allowable")
	}
}

func TestPressureStressWithDerating(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type":            "pressure_stress",
		"design_pressure":             500.0,
		"outside_diameter":            6.625,
		"wall_thickness":              0.280,
		"allowable_stress":            7000.0,
		"temperature_derating_factor": 0.80,
	})
	if err != nil {
		t.Fatal(err)
	}
	// limit = 7000*0.8 = 5600 < 5915 hoop
	if res["is_adequate"].(bool) {
		t.Error("derated allowable should fail the check")
	}
}

func TestSupportSpacing(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type": "support_spacing",
		"outside_diameter": 6.625,
		"wall_thickness":   0.280,
		"pipe_weight":      18.97,
		"fluid_weight":     12.50,
	})
	if err != nil {
		t.Fatal(err)
	}
	maxSpan := res["maximum_spacing_ft"].(float64)
	if maxSpan <= 0 {
		t.Fatalf("non-positive span: %+v", res)
	}
	almost(t, res["recommended_spacing_ft"].(float64), 0.8*maxSpan, 1e-9)
	almost(t, res["total_weight_per_ft"].(float64), 31.47, 1e-9)
}

func TestSupportSpacingBadWall(t *testing.T) {
	var c Calculator
	_, err := c.Calculate(engine.Inputs{
		"calculation_type": "support_spacing",
		"outside_diameter": 6.625,
		"wall_thickness":   4.0,
		"pipe_weight":      18.97,
		"fluid_weight":     12.50,
	})
	if !errors.Is(err, engine.ErrInvalidValue) {
		t.Fatalf("want ErrInvalidValue, got %v", err)
	}
}
