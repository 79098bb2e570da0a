// Package statics solves static equilibrium for the support reactions.
// Determinate systems are solved directly from the three planar
// equilibrium equations; indeterminate systems go through a flexibility
// (force) method that superposes unit redundants on a determinate primary
// structure and enforces compatibility at the redundant supports.
//
// Sign convention throughout: upward force positive, counter-clockwise
// moment positive, moments summed about the beam origin.
package statics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"Flexura/internal/beam/boundary"
	"Flexura/internal/beam/model"
)

// Method names reported in the analysis results.
const (
	MethodEquilibrium = "direct-equilibrium"
	MethodFlexibility = "flexibility-superposition"
)

// Solution carries the solved reactions and the method that produced them.
type Solution struct {
	Reactions []model.Reaction
	Method    string
}

// resultants aggregates the external loads: ΣFy, ΣFx and ΣM about the
// origin (couples included, distributed loads reduced exactly).
type resultants struct {
	fy float64
	fx float64
	m  float64
}

func sumLoads(loads []model.Load) resultants {
	var r resultants
	for _, l := range loads {
		switch ld := l.(type) {
		case model.PointLoad:
			f := ld.VerticalComponent()
			r.fy += f
			r.fx += ld.HorizontalComponent()
			r.m += f * ld.Position
		case model.DistributedLoad:
			r.fy += ld.ResultantTo(ld.EndPosition)
			r.m += ld.FirstMomentTo(ld.EndPosition)
		case model.MomentLoad:
			r.m += ld.Signed()
		}
	}
	return r
}

// Solve computes the support reactions for a resolved constraint set.
func Solve(beam model.BeamProperties, rc boundary.ResolvedConstraints, loads []model.Load) (Solution, error) {
	if rc.Determinate() && rc.BeamType != model.Continuous {
		sol, err := solveDeterminate(rc, loads)
		if err != nil {
			return Solution{}, err
		}
		return sol, checkFinite(sol.Reactions)
	}
	sol, err := solveFlexibility(beam, rc, loads)
	if err != nil {
		return Solution{}, err
	}
	return sol, checkFinite(sol.Reactions)
}

func checkFinite(reactions []model.Reaction) error {
	for _, r := range reactions {
		for _, v := range []float64{r.VerticalForce, r.HorizontalForce, r.Moment} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return model.NewSolverError(model.Singular, "reaction at %g is not finite", r.Position)
			}
		}
	}
	return nil
}

func solveDeterminate(rc boundary.ResolvedConstraints, loads []model.Load) (Solution, error) {
	sum := sumLoads(loads)
	switch len(rc.Supports) {
	case 1:
		s := rc.Supports[0]
		if !s.Reactions.Moment {
			return Solution{}, model.NewSolverError(model.Unsupported,
				"a single %q support cannot restrain rotation", s.Kind)
		}
		return Solution{
			Reactions: []model.Reaction{{
				SupportID:       supportID(0),
				Position:        s.Position,
				VerticalForce:   -sum.fy,
				HorizontalForce: -sum.fx,
				Moment:          -(sum.m - sum.fy*s.Position),
			}},
			Method: MethodEquilibrium,
		}, nil
	case 2:
		va, vb, err := twoSupportVerticals(rc.Supports[0].Position, rc.Supports[1].Position, sum)
		if err != nil {
			return Solution{}, err
		}
		reactions := []model.Reaction{
			{SupportID: supportID(0), Position: rc.Supports[0].Position, VerticalForce: va},
			{SupportID: supportID(1), Position: rc.Supports[1].Position, VerticalForce: vb},
		}
		assignHorizontal(reactions, rc.Supports, -sum.fx)
		return Solution{Reactions: reactions, Method: MethodEquilibrium}, nil
	default:
		return Solution{}, model.NewSolverError(model.Unsupported,
			"no determinate formulation for %d supports", len(rc.Supports))
	}
}

// twoSupportVerticals solves ΣFy=0 and ΣM=0 for the two vertical unknowns.
func twoSupportVerticals(xa, xb float64, sum resultants) (float64, float64, error) {
	a := mat.NewDense(2, 2, []float64{
		1, 1,
		xa, xb,
	})
	b := mat.NewVecDense(2, []float64{-sum.fy, -sum.m})
	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return 0, 0, model.NewSolverError(model.Singular,
			"equilibrium system is singular: supports at %g and %g", xa, xb)
	}
	return x.AtVec(0), x.AtVec(1), nil
}

// assignHorizontal puts the whole axial resultant on the first support able
// to carry it. With an axially rigid beam any split is statically
// equivalent; a fixed choice keeps results deterministic.
func assignHorizontal(reactions []model.Reaction, supports []model.Support, h float64) {
	for i, s := range supports {
		if s.Reactions.Horizontal {
			reactions[i].HorizontalForce = h
			return
		}
	}
}

func supportID(i int) string {
	return fmt.Sprintf("S%d", i+1)
}
