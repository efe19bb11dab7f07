package safety

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

func ratioInputs() engine.Inputs {
	return engine.Inputs{
		"calculation_type":   "safety_factors",
		"burst_pressure":     600.0,
		"yield_pressure":     250.0,
		"test_pressure":      195.0,
		"design_pressure":    150.0,
		"operating_pressure": 125.0,
	}
}

func TestSafetyFactors(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(ratioInputs())
	if err != nil {
		t.Fatal(err)
	}
	almost(t, res["burst_safety_factor"].(float64), 4.0, 1e-9)
	almost(t, res["yield_safety_factor"].(float64), 250.0/150.0, 1e-9)
	almost(t, res["test_ratio"].(float64), 1.3, 1e-9)
	almost(t, res["design_margin"].(float64), 1.2, 1e-9)
	if !res["asme_compliant"].(bool) {
		t.Error("burst 4.0 and yield 1.67 meet the ASME margins")
	}
}

func TestSafetyFactorsNonCompliant(t *testing.T) {
	var c Calculator
	in := ratioInputs()
	in["burst_pressure"] = 500.0 // ratio 3.33 < 4
	res, err := c.Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	if res["asme_compliant"].(bool) {
		t.Error("burst ratio below 4 must not be compliant")
	}
	if res["meets_asme_yield"].(bool) != true {
		t.Error("yield margin still holds")
	}
}

func TestSafetyFactorsMissingField(t *testing.T) {
	var c Calculator
	in := ratioInputs()
	delete(in, "operating_pressure")
	if _, err := c.Calculate(in); !errors.Is(err, engine.ErrMissingField) {
		t.Fatalf("want ErrMissingField, got %v", err)
	}
}

func TestFatigueLifeInfinite(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type":            "fatigue_life",
		"tensile_strength":            80000.0,
		"stress_amplitude":            20000.0,
		"stress_concentration_factor": 1.2,
	})
	if err != nil {
		t.Fatal(err)
	}
	// Se = 40000 * 0.9 * 0.9 * 0.897 = 29062.8; effective = 24000
	almost(t, res["corrected_endurance_limit"].(float64), 29062.8, 0.1)
	almost(t, res["effective_stress"].(float64), 24000.0, 1e-9)
	if !res["infinite_life"].(bool) {
		t.Error("effective stress below corrected endurance, want infinite life")
	}
}

func TestFatigueLifeFinite(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type":            "fatigue_life",
		"tensile_strength":            80000.0,
		"stress_amplitude":            30000.0,
		"stress_concentration_factor": 1.2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res["infinite_life"].(bool) {
		t.Fatal("effective stress above corrected endurance, life must be finite")
	}
	// (29062.8/36000)^3 * 1e6
	almost(t, res["predicted_cycles"].(float64), 526100.0, 500.0)
}

func TestFatigueLifeExplicitEnduranceLimit(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type":      "fatigue_life",
		"endurance_limit":       30000.0,
		"stress_amplitude":      10000.0,
		"surface_finish_factor": 1.0,
		"size_factor":           1.0,
		"reliability_factor":    1.0,
	})
	if err != nil {
		t.Fatal(err)
	}
	almost(t, res["corrected_endurance_limit"].(float64), 30000.0, 1e-9)
}
