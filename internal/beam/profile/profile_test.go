package profile

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"Flexura/internal/beam/model"
)

func simpleSpanReactions(va, vb, length float64) []model.Reaction {
	return []model.Reaction{
		{Position: 0, VerticalForce: va},
		{Position: length, VerticalForce: vb},
	}
}

func TestGridSpansBeamInclusive(t *testing.T) {
	xs := Grid(4, 101)
	if len(xs) != 101 {
		t.Fatalf("grid length: got %d, want 101", len(xs))
	}
	if xs[0] != 0 || xs[100] != 4 {
		t.Errorf("grid endpoints: got [%g,%g], want [0,4]", xs[0], xs[100])
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			t.Fatalf("grid not increasing at %d", i)
		}
	}
}

func TestCentralPointLoadProfiles(t *testing.T) {
	loads := []model.Load{model.PointLoad{Magnitude: 1000, Position: 2, Direction: model.Down}}
	reactions := simpleSpanReactions(500, 500, 4)

	xs, shear, moment := Sample(4, loads, reactions, 101)

	// Shear: +500 left of the load, -500 right of it. The sample at the
	// load position takes the left limit.
	chk.Float64(t, "V(1)", 1e-12, ValueAtIndex(xs, shear, 1.0), 500)
	chk.Float64(t, "V(2) left limit", 1e-12, ValueAtIndex(xs, shear, 2.0), 500)
	chk.Float64(t, "V(3)", 1e-12, ValueAtIndex(xs, shear, 3.0), -500)
	// Moment: triangular, peak P·L/4 = 1000 N·m at midspan, zero at ends.
	chk.Float64(t, "M(0)", 1e-12, moment[0], 0)
	chk.Float64(t, "M(2)", 1e-12, ValueAtIndex(xs, moment, 2.0), 1000)
	chk.Float64(t, "M(4)", 1e-9, moment[len(moment)-1], 0)
}

func TestUDLProfiles(t *testing.T) {
	// w = 800 N/m over the whole 4 m span: V(0)=wL/2=1600, V(L/2)=0,
	// M(L/2)=wL²/8=1600.
	loads := []model.Load{model.DistributedLoad{
		StartMagnitude: 800, EndMagnitude: 800, StartPosition: 0, EndPosition: 4, Direction: model.Down,
	}}
	reactions := simpleSpanReactions(1600, 1600, 4)
	xs, shear, moment := Sample(4, loads, reactions, 101)

	chk.Float64(t, "V(0)", 1e-12, shear[0], 1600)
	chk.Float64(t, "V(2)", 1e-9, ValueAtIndex(xs, shear, 2.0), 0)
	chk.Float64(t, "M(2)", 1e-9, ValueAtIndex(xs, moment, 2.0), 1600)
	chk.Float64(t, "M(4)", 1e-9, moment[len(moment)-1], 0)
}

func TestCantileverProfiles(t *testing.T) {
	loads := []model.Load{model.PointLoad{Magnitude: 200, Position: 3, Direction: model.Down}}
	reactions := []model.Reaction{{Position: 0, VerticalForce: 200, Moment: 600}}
	xs, shear, moment := Sample(3, loads, reactions, 61)

	chk.Float64(t, "V(0)", 1e-12, shear[0], 200)
	chk.Float64(t, "V(1.5)", 1e-12, ValueAtIndex(xs, shear, 1.5), 200)
	// Hogging at the root: M(0) = -600, rising linearly to zero at the tip.
	chk.Float64(t, "M(0)", 1e-12, moment[0], -600)
	chk.Float64(t, "M(1.5)", 1e-12, ValueAtIndex(xs, moment, 1.5), -300)
	chk.Float64(t, "M(3)", 1e-9, moment[len(moment)-1], 0)
}

func TestAppliedMomentDropsInternalMoment(t *testing.T) {
	// CCW couple of 200 N·m at x=1 on a 4 m simple span:
	// Ra = +50, Rb = -50; M jumps by -200 across the couple.
	loads := []model.Load{model.MomentLoad{Magnitude: 200, Position: 1, Direction: model.Counterclockwise}}
	reactions := simpleSpanReactions(50, -50, 4)

	mLeft := MomentAt(0.999, loads, reactions)
	mRight := MomentAt(1.001, loads, reactions)
	chk.Float64(t, "M left of couple", 1e-9, mLeft, 50*0.999)
	chk.Float64(t, "M right of couple", 1e-9, mRight, 50*1.001-200)
	chk.Float64(t, "M(4) closes to zero", 1e-9, MomentAt(4, loads, reactions), 0)
}

func TestPartialDistributedLoad(t *testing.T) {
	// Uniform 1000 N/m over [1,3] on a 4 m span; resultant 2000 N at x=2.
	loads := []model.Load{model.DistributedLoad{
		StartMagnitude: 1000, EndMagnitude: 1000, StartPosition: 1, EndPosition: 3, Direction: model.Down,
	}}
	reactions := simpleSpanReactions(1000, 1000, 4)

	chk.Float64(t, "V before load", 1e-12, ShearAt(0.5, loads, reactions), 1000)
	chk.Float64(t, "V at midspan", 1e-12, ShearAt(2, loads, reactions), 0)
	chk.Float64(t, "V after load", 1e-12, ShearAt(3.5, loads, reactions), -1000)
	chk.Float64(t, "M at midspan", 1e-9, MomentAt(2, loads, reactions), 1000*2-1000*0.5)
	chk.Float64(t, "M(4)", 1e-9, MomentAt(4, loads, reactions), 0)
}

// ValueAtIndex fetches the sampled value at an exact grid position.
func ValueAtIndex(xs, vals []float64, x float64) float64 {
	for i, xi := range xs {
		if xi == x {
			return vals[i]
		}
	}
	// fall back to the nearest sample
	best := 0
	for i, xi := range xs {
		if abs(xi-x) < abs(xs[best]-x) {
			best = i
		}
	}
	return vals[best]
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
