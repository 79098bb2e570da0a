// Package stress maps the bending-moment profile to extreme-fiber bending
// stress: σ(x) = M(x)·c/I, with c derived from the cross-section.
package stress

import (
	"Flexura/internal/beam/model"
)

// Map converts a moment profile to the bending-stress profile. It fails
// with a ConfigError when the cross-section does not define its extreme
// fiber distance.
func Map(beam model.BeamProperties, moments []float64) ([]float64, error) {
	c, err := beam.CrossSection.ExtremeFiber()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(moments))
	ratio := c / beam.MomentOfInertia
	for i, m := range moments {
		out[i] = m * ratio
	}
	return out, nil
}
