package asmediv1

import (
	"errors"
	"math"
	"reflect"
	"testing"

	engine "VesselForge/internal/calc/engine"
)

func almost(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("got %v, want %v (tol %v)", got, want, tol)
	}
}

func fl(t *testing.T, res engine.Results, key string) float64 {
	t.Helper()
	v, ok := res[key].(float64)
	if !ok {
		t.Fatalf("missing or non-numeric %q in %+v", key, res)
	}
	return v
}

func cylindricalInputs() engine.Inputs {
	return engine.Inputs{
		"calculation_type":    "cylindrical_shell",
		"design_pressure":     150.0,
		"inside_radius":       24.0,
		"allowable_stress":    20000.0,
		"joint_efficiency":    1.0,
		"corrosion_allowance": 0.125,
	}
}

func TestCylindricalShell(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(cylindricalInputs())
	if err != nil {
		t.Fatal(err)
	}
	almost(t, fl(t, res, "required_thickness"), 0.1808, 0.001)
	almost(t, fl(t, res, "minimum_thickness"), 0.3058, 0.001)
	if sf := fl(t, res, "safety_factor"); sf <= 1.0 {
		t.Errorf("safety factor %v, want > 1", sf)
	}
	if req, min := fl(t, res, "required_thickness"), fl(t, res, "minimum_thickness"); req >= min {
		t.Errorf("required %v must be below minimum %v", req, min)
	}
}

func TestCylindricalShellFromDiameter(t *testing.T) {
	var c Calculator
	in := cylindricalInputs()
	delete(in, "inside_radius")
	in["inside_diameter"] = 48.0
	res, err := c.Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	almost(t, fl(t, res, "required_thickness"), 0.1808, 0.001)
}

func TestCylindricalShellMissingRadius(t *testing.T) {
	var c Calculator
	in := cylindricalInputs()
	delete(in, "inside_radius")
	in["inside_diameter"] = -10.0
	if _, err := c.Calculate(in); !errors.Is(err, engine.ErrMissingField) {
		t.Fatalf("want ErrMissingField, got %v", err)
	}
}

func TestCylindricalShellIdempotent(t *testing.T) {
	var c Calculator
	a, err := c.Calculate(cylindricalInputs())
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Calculate(cylindricalInputs())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated calls differ: %+v vs %+v", a, b)
	}
}

// Raising design pressure must strictly raise required thickness and lower
// the safety factor while the denominator stays positive.
func TestCylindricalShellMonotonicInPressure(t *testing.T) {
	var c Calculator
	prevThickness, prevSF := 0.0, math.Inf(1)
	for p := 50.0; p <= 500.0; p += 50.0 {
		in := cylindricalInputs()
		in["design_pressure"] = p
		res, err := c.Calculate(in)
		if err != nil {
			t.Fatalf("P=%v: %v", p, err)
		}
		thickness := fl(t, res, "required_thickness")
		sf := fl(t, res, "safety_factor")
		if thickness <= prevThickness {
			t.Fatalf("P=%v: thickness %v not increasing (prev %v)", p, thickness, prevThickness)
		}
		if sf >= prevSF {
			t.Fatalf("P=%v: safety factor %v not decreasing (prev %v)", p, sf, prevSF)
		}
		prevThickness, prevSF = thickness, sf
	}
}

func TestCylindricalShellInfeasible(t *testing.T) {
	var c Calculator
	in := cylindricalInputs()
	in["allowable_stress"] = 80.0 // S*E - 0.6*P = 80 - 90 < 0
	res, err := c.Calculate(in)
	if !errors.Is(err, engine.ErrInvalidStressCondition) {
		t.Fatalf("want ErrInvalidStressCondition, got %v", err)
	}
	if res != nil {
		t.Fatalf("no result mapping expected on failure, got %+v", res)
	}
}

func TestSphericalShell(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type":    "spherical_shell",
		"design_pressure":     200.0,
		"inside_radius":       30.0,
		"allowable_stress":    20000.0,
		"joint_efficiency":    0.85,
		"corrosion_allowance": 0.125,
	})
	if err != nil {
		t.Fatal(err)
	}
	almost(t, fl(t, res, "required_thickness"), 0.1767, 0.001)
	almost(t, fl(t, res, "minimum_thickness"), 0.3017, 0.001)
}

func TestHeadFactors(t *testing.T) {
	cases := []struct {
		name string
		in   engine.Inputs
		want float64
	}{
		{"ellipsoidal 2:1", engine.Inputs{"head_type": "ellipsoidal"}, 1.0},
		{"ellipsoidal 3:1", engine.Inputs{"head_type": "ellipsoidal", "aspect_ratio": 3.0}, 1.5},
		{"ellipsoidal shallow", engine.Inputs{"head_type": "ellipsoidal", "aspect_ratio": 1.5}, 1.0},
		{"torispherical", engine.Inputs{"head_type": "torispherical", "knuckle_radius": 6.0, "crown_radius": 60.0}, 0.8045},
		{"hemispherical", engine.Inputs{"head_type": "hemispherical"}, 0.5},
	}
	var c Calculator
	for _, tc := range cases {
		in := engine.Inputs{
			"calculation_type": "head_thickness",
			"design_pressure":  150.0,
			"inside_diameter":  48.0,
			"allowable_stress": 20000.0,
		}
		for k, v := range tc.in {
			in[k] = v
		}
		res, err := c.Calculate(in)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		k := fl(t, res, "head_factor")
		if math.Abs(k-tc.want) > 0.001 {
			t.Errorf("%s: head factor %v, want %v", tc.name, k, tc.want)
		}
	}
}

func TestHeadThicknessUnknownType(t *testing.T) {
	var c Calculator
	_, err := c.Calculate(engine.Inputs{
		"calculation_type": "head_thickness",
		"design_pressure":  150.0,
		"inside_diameter":  48.0,
		"allowable_stress": 20000.0,
		"head_type":        "conical",
	})
	if !errors.Is(err, engine.ErrInvalidValue) {
		t.Fatalf("want ErrInvalidValue, got %v", err)
	}
}

func TestExternalPressureThickWall(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type":   "external_pressure",
		"outside_diameter":   24.0,
		"wall_thickness":     3.0,
		"unsupported_length": 96.0,
		"yield_strength":     38000.0,
		"external_pressure":  15.0,
	})
	if err != nil {
		t.Fatal(err)
	}
	if regime := res["governing_regime"]; regime != "thick_wall_yield" {
		t.Fatalf("regime = %v, want thick_wall_yield", regime)
	}
	almost(t, fl(t, res, "allowable_external_pressure"), 3166.67, 0.1)
	if ok := res["is_adequate"].(bool); !ok {
		t.Error("expected adequate design")
	}
}

func TestExternalPressureElastic(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type":   "external_pressure",
		"outside_diameter":   24.0,
		"wall_thickness":     0.25,
		"unsupported_length": 120.0,
		"yield_strength":     38000.0,
		"external_pressure":  15.0,
	})
	if err != nil {
		t.Fatal(err)
	}
	if regime := res["governing_regime"]; regime != "elastic_buckling" {
		t.Fatalf("regime = %v, want elastic_buckling", regime)
	}
	pa := fl(t, res, "allowable_external_pressure")
	almost(t, fl(t, res, "safety_factor"), pa/15.0, 1e-9)
}

func TestNozzleReinforcement(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type": "nozzle_reinforcement",
		"design_pressure":  150.0,
		"inside_radius":    24.0,
		"allowable_stress": 20000.0,
		"nozzle_diameter":  6.0,
		"shell_thickness":  0.5,
		"nozzle_thickness": 0.28,
	})
	if err != nil {
		t.Fatal(err)
	}
	ratio := fl(t, res, "reinforcement_ratio")
	if ratio < 1.0 {
		t.Errorf("ratio %v, expected reinforcement to suffice", ratio)
	}
	if res["reinforcement_pad_required"].(bool) {
		t.Error("pad should not be required")
	}
	almost(t, fl(t, res, "pad_area_required"), 0.0, 1e-9)
}

func TestNozzleReinforcementPadRequired(t *testing.T) {
	var c Calculator
	res, err := c.Calculate(engine.Inputs{
		"calculation_type": "nozzle_reinforcement",
		"design_pressure":  300.0,
		"inside_radius":    36.0,
		"allowable_stress": 17500.0,
		"nozzle_diameter":  12.0,
		"shell_thickness":  0.625,
		"nozzle_thickness": 0.375,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res["reinforcement_pad_required"].(bool) {
		t.Fatalf("expected pad requirement: %+v", res)
	}
	if deficit := fl(t, res, "pad_area_required"); deficit <= 0 {
		t.Errorf("pad area %v, want positive", deficit)
	}
}

func TestUnsupportedCalculationType(t *testing.T) {
	var c Calculator
	_, err := c.Calculate(engine.Inputs{"calculation_type": "flange_rating"})
	if !errors.Is(err, engine.ErrUnsupportedCalculationType) {
		t.Fatalf("want ErrUnsupportedCalculationType, got %v", err)
	}
}

func TestValidateInputsOnly(t *testing.T) {
	var c Calculator
	if err := c.ValidateInputs(cylindricalInputs()); err != nil {
		t.Fatalf("valid inputs rejected: %v", err)
	}
	in := cylindricalInputs()
	delete(in, "design_pressure")
	if err := c.ValidateInputs(in); !errors.Is(err, engine.ErrMissingField) {
		t.Fatalf("want ErrMissingField, got %v", err)
	}
}
