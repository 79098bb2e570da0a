package statics

import (
	"gonum.org/v1/gonum/mat"

	"Flexura/internal/beam/boundary"
	"Flexura/internal/beam/deflect"
	"Flexura/internal/beam/model"
	"Flexura/internal/beam/profile"
)

// Grid density for the compatibility integrations. The flexural rigidity
// cancels out of the compatibility equations, so they are integrated with
// E·I = 1.
const compatibilityPoints = 1001

// redundant is one released reaction component of the primary structure:
// either a support moment (condition θ=0) or an interior support vertical
// force (condition v=0).
type redundant struct {
	position float64
	moment   bool
	support  int // index into rc.Supports
}

// asLoad expresses the redundant, scaled by magnitude, as an external
// action on the primary structure.
func (r redundant) asLoad(magnitude float64) model.Load {
	if r.moment {
		return model.MomentLoad{Magnitude: magnitude, Position: r.position, Direction: model.Counterclockwise}
	}
	return model.PointLoad{Magnitude: magnitude, Position: r.position, Direction: model.Up}
}

// solveFlexibility handles statically indeterminate support sets
// (fixed-fixed, fixed-pinned, continuous). The primary structure is the
// simple span on the outermost pair of supports; the released components
// are solved from the compatibility system f·X = -d0, where both the
// flexibility coefficients and the primary displacements come from the
// deflection integrator.
func solveFlexibility(beam model.BeamProperties, rc boundary.ResolvedConstraints, loads []model.Load) (Solution, error) {
	left, right := 0, 0
	for i, s := range rc.Supports {
		if s.Position < rc.Supports[left].Position {
			left = i
		}
		if s.Position > rc.Supports[right].Position {
			right = i
		}
	}
	xL, xR := rc.Supports[left].Position, rc.Supports[right].Position
	if xL == xR {
		return Solution{}, model.NewSolverError(model.Singular,
			"all supports coincide at position %g", xL)
	}

	var redundants []redundant
	for i, s := range rc.Supports {
		if i != left && i != right {
			redundants = append(redundants, redundant{position: s.Position, support: i})
		}
		if s.Reactions.Moment {
			redundants = append(redundants, redundant{position: s.Position, moment: true, support: i})
		}
	}

	x, err := solveCompatibility(beam, loads, redundants, xL, xR)
	if err != nil {
		return Solution{}, err
	}

	// Superpose: the released components act as known external loads on the
	// primary structure; its two verticals follow from equilibrium.
	actions := make([]model.Load, 0, len(loads)+len(redundants))
	actions = append(actions, loads...)
	for j, r := range redundants {
		actions = append(actions, r.asLoad(x[j]))
	}
	sum := sumLoads(actions)
	va, vb, err := twoSupportVerticals(xL, xR, sum)
	if err != nil {
		return Solution{}, err
	}

	reactions := make([]model.Reaction, len(rc.Supports))
	for i, s := range rc.Supports {
		reactions[i] = model.Reaction{SupportID: supportID(i), Position: s.Position}
	}
	reactions[left].VerticalForce = va
	reactions[right].VerticalForce = vb
	for j, r := range redundants {
		if r.moment {
			reactions[r.support].Moment = x[j]
		} else {
			reactions[r.support].VerticalForce = x[j]
		}
	}
	assignHorizontal(reactions, rc.Supports, -sumLoads(loads).fx)
	return Solution{Reactions: reactions, Method: MethodFlexibility}, nil
}

// solveCompatibility builds and solves the flexibility system. Without
// released components (for example a pin-pin span, indeterminate only
// axially) it returns an empty magnitude set.
func solveCompatibility(beam model.BeamProperties, loads []model.Load, redundants []redundant, xL, xR float64) ([]float64, error) {
	n := len(redundants)
	if n == 0 {
		return nil, nil
	}

	d0, err := primaryDisplacements(beam, loads, redundants, xL, xR)
	if err != nil {
		return nil, err
	}
	f := mat.NewDense(n, n, nil)
	for j, r := range redundants {
		col, err := primaryDisplacements(beam, []model.Load{r.asLoad(1)}, redundants, xL, xR)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			f.Set(i, j, col[i])
		}
	}

	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		b.SetVec(i, -d0[i])
	}
	var x mat.VecDense
	if err := x.SolveVec(f, b); err != nil {
		return nil, model.NewSolverError(model.Singular, "compatibility system is singular")
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = x.AtVec(i)
	}
	return out, nil
}

// primaryDisplacements analyses the primary simple span under the given
// load set and evaluates each redundant's compatibility quantity: slope at
// moment redundants, deflection at force redundants.
func primaryDisplacements(beam model.BeamProperties, loads []model.Load, redundants []redundant, xL, xR float64) ([]float64, error) {
	sum := sumLoads(loads)
	va, vb, err := twoSupportVerticals(xL, xR, sum)
	if err != nil {
		return nil, err
	}
	primReactions := []model.Reaction{
		{Position: xL, VerticalForce: va},
		{Position: xR, VerticalForce: vb},
	}
	xs, _, moments := profile.Sample(beam.Length, loads, primReactions, compatibilityPoints)
	theta, v, err := deflect.Curves(xs, moments, [2]deflect.Condition{{Position: xL}, {Position: xR}})
	if err != nil {
		return nil, model.NewSolverError(model.Singular, "compatibility integration failed: %v", err)
	}

	out := make([]float64, len(redundants))
	for i, r := range redundants {
		if r.moment {
			out[i] = deflect.ValueAt(xs, theta, r.position)
		} else {
			out[i] = deflect.ValueAt(xs, v, r.position)
		}
	}
	return out, nil
}
