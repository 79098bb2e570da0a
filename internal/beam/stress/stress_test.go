package stress

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"

	"Flexura/internal/beam/model"
)

func TestStressProportionalToMoment(t *testing.T) {
	beam := model.BeamProperties{
		Length: 4, ElasticModulus: 200e9, MomentOfInertia: 2e-6,
		CrossSection: model.CrossSection{Kind: model.Rectangular, Width: 0.1, Height: 0.3},
	}
	moments := []float64{-400, 0, 250, 1000}
	out, err := Map(beam, moments)
	if err != nil {
		t.Fatal(err)
	}
	// σ/M must equal c/I wherever M ≠ 0.
	ratio := 0.15 / 2e-6
	for i, m := range moments {
		chk.Float64(t, "σ = M·c/I", 1e-9, out[i], m*ratio)
	}
}

func TestCircularSection(t *testing.T) {
	beam := model.BeamProperties{
		Length: 2, MomentOfInertia: 5e-7,
		CrossSection: model.CrossSection{Kind: model.Circular, Diameter: 0.2},
	}
	out, err := Map(beam, []float64{100})
	if err != nil {
		t.Fatal(err)
	}
	chk.Float64(t, "circular extreme fiber", 1e-9, out[0], 100*0.1/5e-7)
}

func TestCustomSectionRequiresExtremeFiber(t *testing.T) {
	beam := model.BeamProperties{
		Length: 2, MomentOfInertia: 5e-7,
		CrossSection: model.CrossSection{Kind: model.Custom, Custom: map[string]float64{"area": 0.01}},
	}
	_, err := Map(beam, []float64{100})
	var cfg *model.ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("want ConfigError for missing extreme fiber distance, got %v", err)
	}
}
