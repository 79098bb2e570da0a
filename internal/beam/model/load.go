package model

import (
	"encoding/json"
	"fmt"
	"math"
)

type LoadKind string

const (
	PointKind       LoadKind = "point"
	DistributedKind LoadKind = "distributed"
	MomentKind      LoadKind = "moment"
)

type Direction string

const (
	Up               Direction = "up"
	Down             Direction = "down"
	Clockwise        Direction = "clockwise"
	Counterclockwise Direction = "counterclockwise"
)

// Load is a closed union over the three load kinds. The only
// implementations are PointLoad, DistributedLoad and MomentLoad; consumers
// dispatch with an exhaustive type switch.
type Load interface {
	Kind() LoadKind
}

// PointLoad is a concentrated force. Angle tilts the line of action away
// from the vertical (degrees); at angle 0 the load is purely vertical.
type PointLoad struct {
	Magnitude float64   `json:"magnitude"` // N
	Position  float64   `json:"position"`  // m
	Direction Direction `json:"direction"`
	Angle     float64   `json:"angle"` // degrees, 0..360
}

// DistributedLoad is a linearly varying line load between two positions.
type DistributedLoad struct {
	StartMagnitude float64   `json:"start_magnitude"` // N/m
	EndMagnitude   float64   `json:"end_magnitude"`   // N/m
	StartPosition  float64   `json:"start_position"`  // m
	EndPosition    float64   `json:"end_position"`    // m
	Direction      Direction `json:"direction"`
}

// MomentLoad is a concentrated couple.
type MomentLoad struct {
	Magnitude float64   `json:"magnitude"` // N·m
	Position  float64   `json:"position"`  // m
	Direction Direction `json:"direction"`
}

func (PointLoad) Kind() LoadKind       { return PointKind }
func (DistributedLoad) Kind() LoadKind { return DistributedKind }
func (MomentLoad) Kind() LoadKind      { return MomentKind }

func (d Direction) verticalSign() float64 {
	if d == Up {
		return 1
	}
	return -1
}

// VerticalComponent is the signed vertical force, upward positive.
func (l PointLoad) VerticalComponent() float64 {
	return l.Direction.verticalSign() * l.Magnitude * math.Cos(l.Angle*math.Pi/180)
}

// HorizontalComponent is the signed axial force, toward increasing x positive.
func (l PointLoad) HorizontalComponent() float64 {
	return l.Direction.verticalSign() * l.Magnitude * math.Sin(l.Angle*math.Pi/180)
}

// Signed returns the couple with counter-clockwise positive.
func (l MomentLoad) Signed() float64 {
	if l.Direction == Counterclockwise {
		return l.Magnitude
	}
	return -l.Magnitude
}

// StartIntensity and EndIntensity are the signed end intensities, upward
// positive.
func (l DistributedLoad) StartIntensity() float64 {
	return l.Direction.verticalSign() * l.StartMagnitude
}

func (l DistributedLoad) EndIntensity() float64 {
	return l.Direction.verticalSign() * l.EndMagnitude
}

// IntensityAt evaluates the signed line-load intensity at position x,
// clamped to zero outside the loaded range.
func (l DistributedLoad) IntensityAt(x float64) float64 {
	if x < l.StartPosition || x > l.EndPosition || l.EndPosition <= l.StartPosition {
		return 0
	}
	t := (x - l.StartPosition) / (l.EndPosition - l.StartPosition)
	return l.StartIntensity() + t*(l.EndIntensity()-l.StartIntensity())
}

// ResultantTo integrates the signed intensity from the start of the load up
// to min(x, end). The full trapezoid resultant is ResultantTo(EndPosition).
func (l DistributedLoad) ResultantTo(x float64) float64 {
	a, b := l.StartPosition, l.EndPosition
	if x <= a || b <= a {
		return 0
	}
	t := math.Min(x, b)
	u := t - a
	k := (l.EndIntensity() - l.StartIntensity()) / (b - a)
	return l.StartIntensity()*u + k*u*u/2
}

// FirstMomentTo integrates intensity·position from the start of the load up
// to min(x, end), about the beam origin. Dividing by ResultantTo gives the
// centroid of the loaded portion.
func (l DistributedLoad) FirstMomentTo(x float64) float64 {
	a, b := l.StartPosition, l.EndPosition
	if x <= a || b <= a {
		return 0
	}
	t := math.Min(x, b)
	u := t - a
	k := (l.EndIntensity() - l.StartIntensity()) / (b - a)
	w1 := l.StartIntensity()
	return w1*(a*u+u*u/2) + k*(a*u*u/2+u*u*u/3)
}

type LoadConditions struct {
	Loads []Load `json:"loads"`
}

// envelope mirrors the wire form of a load: the union of all fields plus
// the discriminating "type" tag.
type envelope struct {
	Type           LoadKind  `json:"type"`
	Magnitude      float64   `json:"magnitude,omitempty"`
	Position       float64   `json:"position,omitempty"`
	Direction      Direction `json:"direction,omitempty"`
	Angle          float64   `json:"angle,omitempty"`
	StartMagnitude float64   `json:"start_magnitude,omitempty"`
	EndMagnitude   float64   `json:"end_magnitude,omitempty"`
	StartPosition  float64   `json:"start_position,omitempty"`
	EndPosition    float64   `json:"end_position,omitempty"`
}

func (lc *LoadConditions) UnmarshalJSON(data []byte) error {
	var raw struct {
		Loads []envelope `json:"loads"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	lc.Loads = make([]Load, 0, len(raw.Loads))
	for i, e := range raw.Loads {
		switch e.Type {
		case PointKind:
			dir := e.Direction
			if dir == "" {
				dir = Down
			}
			lc.Loads = append(lc.Loads, PointLoad{
				Magnitude: e.Magnitude, Position: e.Position, Direction: dir, Angle: e.Angle,
			})
		case DistributedKind:
			dir := e.Direction
			if dir == "" {
				dir = Down
			}
			lc.Loads = append(lc.Loads, DistributedLoad{
				StartMagnitude: e.StartMagnitude, EndMagnitude: e.EndMagnitude,
				StartPosition: e.StartPosition, EndPosition: e.EndPosition, Direction: dir,
			})
		case MomentKind:
			dir := e.Direction
			if dir == "" {
				dir = Clockwise
			}
			lc.Loads = append(lc.Loads, MomentLoad{
				Magnitude: e.Magnitude, Position: e.Position, Direction: dir,
			})
		default:
			return fmt.Errorf("loads[%d]: unknown load type %q", i, e.Type)
		}
	}
	return nil
}

func (lc LoadConditions) MarshalJSON() ([]byte, error) {
	raw := struct {
		Loads []envelope `json:"loads"`
	}{Loads: make([]envelope, 0, len(lc.Loads))}
	for _, l := range lc.Loads {
		switch v := l.(type) {
		case PointLoad:
			raw.Loads = append(raw.Loads, envelope{
				Type: PointKind, Magnitude: v.Magnitude, Position: v.Position,
				Direction: v.Direction, Angle: v.Angle,
			})
		case DistributedLoad:
			raw.Loads = append(raw.Loads, envelope{
				Type: DistributedKind, StartMagnitude: v.StartMagnitude, EndMagnitude: v.EndMagnitude,
				StartPosition: v.StartPosition, EndPosition: v.EndPosition, Direction: v.Direction,
			})
		case MomentLoad:
			raw.Loads = append(raw.Loads, envelope{
				Type: MomentKind, Magnitude: v.Magnitude, Position: v.Position, Direction: v.Direction,
			})
		}
	}
	return json.Marshal(raw)
}
