// Package profile computes internal shear and bending-moment values along
// the span by superposing the contributions of every load and reaction.
//
// Conventions, applied end to end: upward force positive, counter-clockwise
// applied moment positive, sagging internal moment positive. The span is
// sampled on a uniform inclusive grid; at discontinuities the profile takes
// one-sided limits: applied point loads enter the shear strictly left of
// the sample point (left-continuous), reactions and applied moment loads
// enter at position <= x.
package profile

import (
	"github.com/cpmech/gosl/utl"

	"Flexura/internal/beam/model"
)

// Grid returns nPoints positions evenly spaced from 0 to length inclusive.
func Grid(length float64, nPoints int) []float64 {
	return utl.LinSpace(0, length, nPoints)
}

// ShearAt evaluates the internal shear force at x.
func ShearAt(x float64, loads []model.Load, reactions []model.Reaction) float64 {
	var v float64
	for _, r := range reactions {
		if r.Position <= x {
			v += r.VerticalForce
		}
	}
	for _, l := range loads {
		switch ld := l.(type) {
		case model.PointLoad:
			if ld.Position < x {
				v += ld.VerticalComponent()
			}
		case model.DistributedLoad:
			v += ld.ResultantTo(x)
		case model.MomentLoad:
			// couples do not contribute shear
		}
	}
	return v
}

// MomentAt evaluates the internal bending moment at x, sagging positive.
// An external counter-clockwise moment applied left of x lowers the
// internal moment by its magnitude; reaction moments follow the same rule.
func MomentAt(x float64, loads []model.Load, reactions []model.Reaction) float64 {
	var m float64
	for _, r := range reactions {
		if r.Position <= x {
			m += r.VerticalForce*(x-r.Position) - r.Moment
		}
	}
	for _, l := range loads {
		switch ld := l.(type) {
		case model.PointLoad:
			if ld.Position < x {
				m += ld.VerticalComponent() * (x - ld.Position)
			}
		case model.DistributedLoad:
			m += x*ld.ResultantTo(x) - ld.FirstMomentTo(x)
		case model.MomentLoad:
			if ld.Position <= x {
				m -= ld.Signed()
			}
		}
	}
	return m
}

// Sample evaluates both profiles on the uniform grid. The returned slices
// share the grid returned as xs and have length nPoints.
func Sample(length float64, loads []model.Load, reactions []model.Reaction, nPoints int) (xs, shear, moment []float64) {
	xs = Grid(length, nPoints)
	shear = make([]float64, len(xs))
	moment = make([]float64, len(xs))
	for i, x := range xs {
		shear[i] = ShearAt(x, loads, reactions)
		moment[i] = MomentAt(x, loads, reactions)
	}
	return xs, shear, moment
}
