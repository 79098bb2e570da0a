package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestSupportKindCapabilities(t *testing.T) {
	tests := []struct {
		kind SupportKind
		want ReactionCaps
		ok   bool
	}{
		{Pin, ReactionCaps{Vertical: true, Horizontal: true}, true},
		{Roller, ReactionCaps{Vertical: true}, true},
		{Fixed, ReactionCaps{Vertical: true, Horizontal: true, Moment: true}, true},
		{SupportKind("hinge"), ReactionCaps{}, false},
	}
	for _, tc := range tests {
		got, ok := tc.kind.Capabilities()
		if ok != tc.ok || got != tc.want {
			t.Errorf("%s: got %+v ok=%v, want %+v ok=%v", tc.kind, got, ok, tc.want, tc.ok)
		}
	}
}

func TestExtremeFiber(t *testing.T) {
	tests := []struct {
		name    string
		cs      CrossSection
		want    float64
		wantErr bool
	}{
		{"rectangular", CrossSection{Kind: Rectangular, Width: 0.2, Height: 0.4}, 0.2, false},
		{"circular", CrossSection{Kind: Circular, Diameter: 0.3}, 0.15, false},
		{"i-beam", CrossSection{Kind: IBeam, Height: 0.5}, 0.25, false},
		{"custom ok", CrossSection{Kind: Custom, Custom: map[string]float64{ExtremeFiberKey: 0.12}}, 0.12, false},
		{"custom missing", CrossSection{Kind: Custom, Custom: map[string]float64{"area": 1}}, 0, true},
		{"rectangular no height", CrossSection{Kind: Rectangular, Width: 0.2}, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.cs.ExtremeFiber()
			if tc.wantErr {
				var cfg *ConfigError
				if !errors.As(err, &cfg) {
					t.Fatalf("want ConfigError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %g, want %g", got, tc.want)
			}
		})
	}
}

func TestLoadConditionsJSONRoundTrip(t *testing.T) {
	raw := []byte(`{"loads":[
		{"type":"point","magnitude":1000,"position":2,"direction":"down"},
		{"type":"distributed","start_magnitude":500,"end_magnitude":800,"start_position":0,"end_position":3,"direction":"down"},
		{"type":"moment","magnitude":200,"position":1,"direction":"counterclockwise"}
	]}`)
	var lc LoadConditions
	if err := json.Unmarshal(raw, &lc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(lc.Loads) != 3 {
		t.Fatalf("got %d loads, want 3", len(lc.Loads))
	}
	if _, ok := lc.Loads[0].(PointLoad); !ok {
		t.Errorf("load 0: want PointLoad, got %T", lc.Loads[0])
	}
	if _, ok := lc.Loads[1].(DistributedLoad); !ok {
		t.Errorf("load 1: want DistributedLoad, got %T", lc.Loads[1])
	}
	m, ok := lc.Loads[2].(MomentLoad)
	if !ok {
		t.Fatalf("load 2: want MomentLoad, got %T", lc.Loads[2])
	}
	if m.Signed() != 200 {
		t.Errorf("counterclockwise moment: got %g, want +200", m.Signed())
	}

	out, err := json.Marshal(lc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back LoadConditions
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	if len(back.Loads) != 3 || back.Loads[0] != lc.Loads[0] {
		t.Errorf("round trip changed loads: %+v vs %+v", back.Loads, lc.Loads)
	}
}

func TestLoadConditionsUnknownKind(t *testing.T) {
	var lc LoadConditions
	err := json.Unmarshal([]byte(`{"loads":[{"type":"torsion","magnitude":1}]}`), &lc)
	if err == nil {
		t.Fatal("want error for unknown load type")
	}
}

func TestPointLoadComponents(t *testing.T) {
	down := PointLoad{Magnitude: 100, Direction: Down}
	if down.VerticalComponent() != -100 {
		t.Errorf("down load vertical: got %g, want -100", down.VerticalComponent())
	}
	up := PointLoad{Magnitude: 100, Direction: Up}
	if up.VerticalComponent() != 100 {
		t.Errorf("up load vertical: got %g, want 100", up.VerticalComponent())
	}
	tilted := PointLoad{Magnitude: 100, Direction: Down, Angle: 90}
	if v := tilted.VerticalComponent(); v > 1e-10 || v < -1e-10 {
		t.Errorf("load at 90°: vertical component should vanish, got %g", v)
	}
}

func TestDistributedPartialIntegrals(t *testing.T) {
	// Uniform 1000 N/m down over [1,3]: resultant 2000 N down, centroid at 2.
	udl := DistributedLoad{StartMagnitude: 1000, EndMagnitude: 1000, StartPosition: 1, EndPosition: 3, Direction: Down}
	if got := udl.ResultantTo(udl.EndPosition); got != -2000 {
		t.Errorf("resultant: got %g, want -2000", got)
	}
	if got := udl.FirstMomentTo(udl.EndPosition) / udl.ResultantTo(udl.EndPosition); got != 2 {
		t.Errorf("centroid: got %g, want 2", got)
	}
	// Half the load when cut at the middle.
	if got := udl.ResultantTo(2); got != -1000 {
		t.Errorf("partial resultant: got %g, want -1000", got)
	}
	// Triangular 0→600 over [0,3]: resultant 900, centroid at 2.
	tri := DistributedLoad{StartMagnitude: 0, EndMagnitude: 600, StartPosition: 0, EndPosition: 3, Direction: Down}
	if got := tri.ResultantTo(3); got != -900 {
		t.Errorf("triangle resultant: got %g, want -900", got)
	}
	if got := tri.FirstMomentTo(3) / tri.ResultantTo(3); got != 2 {
		t.Errorf("triangle centroid: got %g, want 2", got)
	}
}

func TestAnalysisOptionsDefaults(t *testing.T) {
	var o AnalysisOptions
	if err := json.Unmarshal([]byte(`{}`), &o); err != nil {
		t.Fatal(err)
	}
	want := DefaultOptions()
	if o != want {
		t.Errorf("defaults: got %+v, want %+v", o, want)
	}
	if err := json.Unmarshal([]byte(`{"number_of_points":200,"include_stress":false}`), &o); err != nil {
		t.Fatal(err)
	}
	if o.NumberOfPoints != 200 || o.IncludeStress || !o.IncludeMoment {
		t.Errorf("override: got %+v", o)
	}
}

func TestRequestWithoutOptionsGetsDefaults(t *testing.T) {
	var req AnalysisRequest
	payload := `{"id":"req-1","beam":{"length":4},"loads":{"loads":[]}}`
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatal(err)
	}
	if req.Options != DefaultOptions() {
		t.Errorf("omitted options: got %+v, want %+v", req.Options, DefaultOptions())
	}
	if req.ID != "req-1" || req.Beam.Length != 4 {
		t.Errorf("other fields lost: %+v", req)
	}

	payload = `{"id":"req-2","analysis_options":{"number_of_points":50}}`
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatal(err)
	}
	if req.Options.NumberOfPoints != 50 || req.Options.SafetyFactor != 1.5 {
		t.Errorf("partial options: got %+v", req.Options)
	}
}

func TestConfigErrorAggregates(t *testing.T) {
	err := NewConfigError("first", "second")
	if err.Error() == "" || len(err.Problems) != 2 {
		t.Errorf("aggregate error malformed: %v", err)
	}
}
