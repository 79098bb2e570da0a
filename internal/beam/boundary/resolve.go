// Package boundary validates the structural preconditions of an analysis
// request and resolves the support configuration into the constraint set
// used for equilibrium. Validation is a single ordered pass that collects
// every problem before anything numeric runs.
package boundary

import (
	"fmt"

	"Flexura/internal/beam/model"
)

// Planar statics yields three independent equilibrium equations.
const equilibriumEquations = 3

// ResolvedConstraints is the normalized support set plus its determinacy
// classification.
type ResolvedConstraints struct {
	BeamType model.BeamType
	Supports []model.Support // capability flags normalized from kind
	Unknowns int             // total unknown reaction components
}

// Determinate reports whether the reactions follow from equilibrium alone.
func (rc ResolvedConstraints) Determinate() bool {
	return rc.Unknowns == equilibriumEquations
}

// Resolve checks the support configuration against the beam type, normalizes
// each support's reaction-capability flags from its kind (caller-supplied
// flags are always overwritten) and classifies static determinacy.
func Resolve(beamLength float64, sc model.SupportConditions) (ResolvedConstraints, error) {
	problems := supportProblems(beamLength, sc)
	if len(problems) > 0 {
		return ResolvedConstraints{}, model.NewConfigError(problems...)
	}

	rc := ResolvedConstraints{
		BeamType: sc.Type,
		Supports: make([]model.Support, len(sc.Supports)),
	}
	for i, s := range sc.Supports {
		caps, _ := s.Kind.Capabilities()
		s.Reactions = caps
		rc.Supports[i] = s
		if caps.Vertical {
			rc.Unknowns++
		}
		if caps.Horizontal {
			rc.Unknowns++
		}
		if caps.Moment {
			rc.Unknowns++
		}
	}
	if rc.Unknowns < equilibriumEquations {
		return ResolvedConstraints{}, model.NewConfigError(fmt.Sprintf(
			"support set provides %d reaction components; at least %d are required for stability",
			rc.Unknowns, equilibriumEquations))
	}
	return rc, nil
}

func supportProblems(beamLength float64, sc model.SupportConditions) []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	n := len(sc.Supports)
	switch sc.Type {
	case model.SimplySupported:
		if n != 2 {
			add("simply-supported beam requires exactly 2 supports, got %d", n)
		}
	case model.FixedFixed:
		if n != 2 {
			add("fixed-fixed beam requires exactly 2 supports, got %d", n)
		}
		for i, s := range sc.Supports {
			if s.Kind != model.Fixed {
				add("fixed-fixed beam requires fixed supports, support %d is %q", i, s.Kind)
			}
		}
	case model.Cantilever:
		if n != 1 {
			add("cantilever beam requires exactly 1 support, got %d", n)
		} else if sc.Supports[0].Kind != model.Fixed {
			add("cantilever beam requires a fixed support, got %q", sc.Supports[0].Kind)
		}
	case model.FixedPinned:
		if n != 2 {
			add("fixed-pinned beam requires exactly 2 supports, got %d", n)
		} else {
			fixed := 0
			for _, s := range sc.Supports {
				if s.Kind == model.Fixed {
					fixed++
				}
			}
			if fixed != 1 {
				add("fixed-pinned beam requires exactly one fixed support, got %d", fixed)
			}
		}
	case model.Continuous:
		if n < 3 {
			add("continuous beam requires at least 3 supports, got %d", n)
		}
	default:
		add("unknown beam type %q", sc.Type)
	}

	for i, s := range sc.Supports {
		if _, ok := s.Kind.Capabilities(); !ok {
			add("support %d has unknown kind %q", i, s.Kind)
		}
		if s.Position < 0 {
			add("support %d position %g is negative", i, s.Position)
		}
		if s.Position > beamLength {
			add("support %d position %g exceeds beam length %g", i, s.Position, beamLength)
		}
	}
	return problems
}
