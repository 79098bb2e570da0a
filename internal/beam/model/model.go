// Package model holds the immutable input entities of a beam analysis:
// beam geometry, cross-section, material, supports and loads. The types
// mirror the JSON schema of the API one to one; they own no computation
// beyond derived section properties.
package model

type BeamType string

const (
	SimplySupported BeamType = "simply-supported"
	Cantilever      BeamType = "cantilever"
	FixedFixed      BeamType = "fixed-fixed"
	FixedPinned     BeamType = "fixed-pinned"
	Continuous      BeamType = "continuous"
)

type SupportKind string

const (
	Pin    SupportKind = "pin"
	Roller SupportKind = "roller"
	Fixed  SupportKind = "fixed"
)

type SectionKind string

const (
	Rectangular SectionKind = "rectangular"
	Circular    SectionKind = "circular"
	IBeam       SectionKind = "i-beam"
	Custom      SectionKind = "custom"
)

// CrossSection describes the beam section. Which dimensions are required
// depends on Kind; Custom carries opaque numeric properties instead.
type CrossSection struct {
	Kind     SectionKind        `json:"type"`
	Width    float64            `json:"width,omitempty"`
	Height   float64            `json:"height,omitempty"`
	Diameter float64            `json:"diameter,omitempty"`
	Custom   map[string]float64 `json:"custom_properties,omitempty"`
}

// ExtremeFiberKey is the custom-section property holding the distance from
// the neutral axis to the extreme fiber (m).
const ExtremeFiberKey = "extreme_fiber_distance"

// ExtremeFiber returns the distance c from the neutral axis to the extreme
// fiber, used to map bending moment to bending stress.
func (c CrossSection) ExtremeFiber() (float64, error) {
	switch c.Kind {
	case Rectangular, IBeam:
		if c.Height <= 0 {
			return 0, configErrorf("cross section %q requires a positive height", c.Kind)
		}
		return c.Height / 2, nil
	case Circular:
		if c.Diameter <= 0 {
			return 0, configErrorf("cross section %q requires a positive diameter", c.Kind)
		}
		return c.Diameter / 2, nil
	case Custom:
		v, ok := c.Custom[ExtremeFiberKey]
		if !ok || v <= 0 {
			return 0, configErrorf("custom cross section requires property %q", ExtremeFiberKey)
		}
		return v, nil
	default:
		return 0, configErrorf("unknown cross section type %q", c.Kind)
	}
}

type Material struct {
	Name          string  `json:"name"`
	Density       float64 `json:"density"`        // kg/m³
	YieldStrength float64 `json:"yield_strength"` // Pa
}

// BeamProperties is the immutable description of the beam under analysis.
type BeamProperties struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Length          float64      `json:"length"`            // m
	ElasticModulus  float64      `json:"elastic_modulus"`   // Pa
	MomentOfInertia float64      `json:"moment_of_inertia"` // m⁴
	CrossSection    CrossSection `json:"cross_section"`
	Material        Material     `json:"material"`
}

// ReactionCaps are the reaction components a support can develop. They are
// fully determined by the support kind; any caller-supplied values are
// overwritten during boundary resolution.
type ReactionCaps struct {
	Vertical   bool `json:"vertical"`
	Horizontal bool `json:"horizontal"`
	Moment     bool `json:"moment"`
}

// Capabilities returns the reaction components for a support kind:
// pin carries vertical+horizontal, roller vertical only, fixed all three.
func (k SupportKind) Capabilities() (ReactionCaps, bool) {
	switch k {
	case Pin:
		return ReactionCaps{Vertical: true, Horizontal: true}, true
	case Roller:
		return ReactionCaps{Vertical: true}, true
	case Fixed:
		return ReactionCaps{Vertical: true, Horizontal: true, Moment: true}, true
	}
	return ReactionCaps{}, false
}

type Support struct {
	Position  float64      `json:"position"` // m from the left end
	Kind      SupportKind  `json:"type"`
	Reactions ReactionCaps `json:"reactions"`
}

type SupportConditions struct {
	Type     BeamType  `json:"type"`
	Supports []Support `json:"supports"`
}

// Reaction is the solved force set a support exerts on the beam.
// Sign convention: upward force and counter-clockwise moment positive.
type Reaction struct {
	SupportID       string  `json:"support_id"`
	Position        float64 `json:"position"`
	VerticalForce   float64 `json:"vertical_force"`   // N
	HorizontalForce float64 `json:"horizontal_force"` // N
	Moment          float64 `json:"moment"`           // N·m
}
