// Package deflect integrates curvature twice along the span to obtain the
// slope and deflection profiles. Curvature is moment over flexural
// rigidity; the two integration constants follow from the support
// conditions (zero deflection at supports, zero slope at fixed ends).
package deflect

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"Flexura/internal/beam/model"
)

// Condition is a homogeneous boundary condition at a position: either
// v(Position)=0 or, when Slope is set, θ(Position)=0.
type Condition struct {
	Position float64
	Slope    bool
}

// ValueAt linearly interpolates the sampled curve ys over xs at x.
// xs must be strictly increasing.
func ValueAt(xs, ys []float64, x float64) float64 {
	n := len(xs)
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if xs[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	t := (x - xs[lo]) / (xs[hi] - xs[lo])
	return ys[lo] + t*(ys[hi]-ys[lo])
}

func cumTrapz(xs, ys []float64) []float64 {
	out := make([]float64, len(xs))
	for i := 1; i < len(xs); i++ {
		out[i] = out[i-1] + (ys[i-1]+ys[i])/2*(xs[i]-xs[i-1])
	}
	return out
}

// Curves integrates the curvature profile twice with trapezoidal cumulative
// integration and fixes the two integration constants from the given
// boundary conditions. It fails when the boundary system is singular (for
// example two deflection conditions at the same position).
func Curves(xs, curvature []float64, conds [2]Condition) (theta, v []float64, err error) {
	thetaRaw := cumTrapz(xs, curvature)
	vRaw := cumTrapz(xs, thetaRaw)

	// v(x) = vRaw(x) + c1·x + c2, θ(x) = θRaw(x) + c1
	a := mat.NewDense(2, 2, nil)
	b := mat.NewVecDense(2, nil)
	for i, c := range conds {
		if c.Slope {
			a.Set(i, 0, 1)
			a.Set(i, 1, 0)
			b.SetVec(i, -ValueAt(xs, thetaRaw, c.Position))
		} else {
			a.Set(i, 0, c.Position)
			a.Set(i, 1, 1)
			b.SetVec(i, -ValueAt(xs, vRaw, c.Position))
		}
	}
	var c mat.VecDense
	if err := c.SolveVec(a, b); err != nil {
		return nil, nil, model.NewNumericalError("boundary condition system is singular")
	}
	c1, c2 := c.AtVec(0), c.AtVec(1)

	theta = make([]float64, len(xs))
	v = make([]float64, len(xs))
	for i := range xs {
		theta[i] = thetaRaw[i] + c1
		v[i] = vRaw[i] + c1*xs[i] + c2
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return nil, nil, model.NewNumericalError("deflection is not finite at x=%g", xs[i])
		}
	}
	return theta, v, nil
}

// ConditionsFor selects the two integration-constant conditions for a
// resolved support set: v=0 at the outermost pair of supports, or v=0 and
// θ=0 at the single fixed support of a cantilever. For fixed-fixed beams
// the discarded θ=0 conditions hold by construction, because the reactions
// already satisfy compatibility.
func ConditionsFor(supports []model.Support) ([2]Condition, error) {
	switch {
	case len(supports) >= 2:
		lo, hi := supports[0].Position, supports[0].Position
		for _, s := range supports[1:] {
			lo = math.Min(lo, s.Position)
			hi = math.Max(hi, s.Position)
		}
		return [2]Condition{{Position: lo}, {Position: hi}}, nil
	case len(supports) == 1:
		p := supports[0].Position
		if !supports[0].Reactions.Moment {
			return [2]Condition{}, model.NewNumericalError(
				"single support at %g cannot fix both integration constants without moment restraint", p)
		}
		return [2]Condition{{Position: p}, {Position: p, Slope: true}}, nil
	default:
		return [2]Condition{}, model.NewNumericalError("no supports to anchor the deflection curve")
	}
}

// Integrate computes the deflection profile for a moment profile sampled on
// xs. It fails with a NumericalError when the flexural rigidity E·I is not
// positive or the boundary system is singular.
func Integrate(beam model.BeamProperties, xs, moments []float64, supports []model.Support) ([]float64, error) {
	ei := beam.ElasticModulus * beam.MomentOfInertia
	if ei <= 0 {
		return nil, model.NewNumericalError("flexural rigidity E·I must be positive, got %g", ei)
	}
	curvature := make([]float64, len(moments))
	for i, m := range moments {
		curvature[i] = m / ei
	}
	conds, err := ConditionsFor(supports)
	if err != nil {
		return nil, err
	}
	_, v, err := Curves(xs, curvature, conds)
	return v, err
}
