package recommend

import (
	"math"
	"testing"
)

func TestPadSizing(t *testing.T) {
	res, err := Pad(PadRecommendInput{
		NozzleDiameter:  6.0,
		PadAreaRequired: 1.2,
		PadThickness:    0.375,
	})
	if err != nil {
		t.Fatal(err)
	}
	// width = 1.2 / (2*0.375) = 1.6; OD rounded up to quarter inch
	if math.Abs(res.PadWidth-1.6) > 1e-9 {
		t.Errorf("width %v, want 1.6", res.PadWidth)
	}
	if res.PadOuterDiameter != 9.25 {
		t.Errorf("outer diameter %v, want 9.25", res.PadOuterDiameter)
	}
}

func TestPadMinimumWidth(t *testing.T) {
	res, err := Pad(PadRecommendInput{
		NozzleDiameter:  2.0,
		PadAreaRequired: 0.05,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.PadWidth != 0.5 {
		t.Errorf("width %v, want the 0.5 floor", res.PadWidth)
	}
	if res.PadThickness != 0.375 {
		t.Errorf("default pad thickness %v, want 0.375", res.PadThickness)
	}
}

func TestPadInvalid(t *testing.T) {
	if _, err := Pad(PadRecommendInput{NozzleDiameter: 0, PadAreaRequired: 1}); err == nil {
		t.Fatal("expected failure on missing nozzle diameter")
	}
}
