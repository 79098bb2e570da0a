package boundary

import (
	"fmt"

	"Flexura/internal/beam/model"
)

// ValidateRequest runs the full precondition pass over a request: beam
// geometry, cross-section, material, supports, loads and options, in that
// order. It returns nil when the request is sound, otherwise a ConfigError
// aggregating every problem found.
func ValidateRequest(req model.AnalysisRequest) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	b := req.Beam
	if b.Length <= 0 {
		add("beam length must be positive, got %g", b.Length)
	}
	if b.ElasticModulus <= 0 {
		add("elastic modulus must be positive, got %g", b.ElasticModulus)
	}
	if b.MomentOfInertia <= 0 {
		add("moment of inertia must be positive, got %g", b.MomentOfInertia)
	}
	problems = append(problems, sectionProblems(b.CrossSection)...)
	if b.Material.Density <= 0 {
		add("material density must be positive, got %g", b.Material.Density)
	}
	if b.Material.YieldStrength <= 0 {
		add("material yield strength must be positive, got %g", b.Material.YieldStrength)
	}

	problems = append(problems, supportProblems(b.Length, req.Supports)...)
	problems = append(problems, loadProblems(b.Length, req.Loads)...)

	o := req.Options
	if o.NumberOfPoints < 10 || o.NumberOfPoints > 1000 {
		add("number_of_points must be within [10,1000], got %d", o.NumberOfPoints)
	}
	if o.SafetyFactor < 1.0 {
		add("safety_factor must be at least 1.0, got %g", o.SafetyFactor)
	}

	if len(problems) > 0 {
		return model.NewConfigError(problems...)
	}
	return nil
}

func sectionProblems(cs model.CrossSection) []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}
	switch cs.Kind {
	case model.Rectangular:
		if cs.Width <= 0 {
			add("rectangular cross section requires a positive width")
		}
		if cs.Height <= 0 {
			add("rectangular cross section requires a positive height")
		}
	case model.Circular:
		if cs.Diameter <= 0 {
			add("circular cross section requires a positive diameter")
		}
	case model.IBeam:
		if cs.Height <= 0 {
			add("i-beam cross section requires a positive height")
		}
	case model.Custom:
		// extreme fiber distance is checked by the stress mapper, which
		// is the only consumer of custom section properties
	default:
		add("unknown cross section type %q", cs.Kind)
	}
	return problems
}

func loadProblems(beamLength float64, lc model.LoadConditions) []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}
	if len(lc.Loads) == 0 {
		add("at least one load is required")
	}
	for i, l := range lc.Loads {
		switch v := l.(type) {
		case model.PointLoad:
			if v.Magnitude == 0 {
				add("load %d: point load magnitude must be non-zero", i)
			}
			if v.Position < 0 || v.Position > beamLength {
				add("load %d: position %g outside beam [0,%g]", i, v.Position, beamLength)
			}
			if v.Direction != model.Up && v.Direction != model.Down {
				add("load %d: point load direction must be up or down, got %q", i, v.Direction)
			}
			if v.Angle < 0 || v.Angle > 360 {
				add("load %d: angle %g outside [0,360]", i, v.Angle)
			}
		case model.DistributedLoad:
			if v.EndPosition <= v.StartPosition {
				add("load %d: end position %g must be greater than start position %g",
					i, v.EndPosition, v.StartPosition)
			}
			if v.StartPosition < 0 {
				add("load %d: start position %g is negative", i, v.StartPosition)
			}
			if v.EndPosition > beamLength {
				add("load %d: end position %g exceeds beam length %g", i, v.EndPosition, beamLength)
			}
			if v.Direction != model.Up && v.Direction != model.Down {
				add("load %d: distributed load direction must be up or down, got %q", i, v.Direction)
			}
		case model.MomentLoad:
			if v.Magnitude == 0 {
				add("load %d: moment magnitude must be non-zero", i)
			}
			if v.Position < 0 || v.Position > beamLength {
				add("load %d: position %g outside beam [0,%g]", i, v.Position, beamLength)
			}
			if v.Direction != model.Clockwise && v.Direction != model.Counterclockwise {
				add("load %d: moment direction must be clockwise or counterclockwise, got %q", i, v.Direction)
			}
		}
	}
	return problems
}
