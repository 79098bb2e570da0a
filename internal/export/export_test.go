package export

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Flexura/internal/beam/model"
)

func sampleResults() model.AnalysisResults {
	return model.AnalysisResults{
		RequestID: "req-1",
		Beam: model.BeamProperties{
			Length: 4, ElasticModulus: 200e9, MomentOfInertia: 6.67e-5,
			Material: model.Material{Name: "Steel (A36)"},
		},
		Supports: model.SupportConditions{Type: model.SimplySupported},
		Reactions: []model.Reaction{
			{SupportID: "S1", Position: 0, VerticalForce: 500},
			{SupportID: "S2", Position: 4, VerticalForce: 500},
		},
		ShearForces: []model.DataPoint{
			{Position: 0, Value: 500, Unit: model.UnitNewtons},
			{Position: 4, Value: -500, Unit: model.UnitNewtons},
		},
		Moments: []model.DataPoint{
			{Position: 0, Value: 0, Unit: model.UnitNewtonM},
			{Position: 4, Value: 0, Unit: model.UnitNewtonM},
		},
		MaxShear:  model.MaxValues{Value: 500},
		MaxMoment: model.MaxValues{Value: 1000, Position: 2},
	}
}

func TestWorkbookSheets(t *testing.T) {
	f, err := Workbook(sampleResults())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("Summary")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) == 0 || rows[0][0] != "Request" {
		t.Fatalf("summary sheet malformed: %v", rows)
	}

	prows, err := f.GetRows("Profiles")
	if err != nil {
		t.Fatal(err)
	}
	// Header plus one row per shear sample.
	if len(prows) != 3 {
		t.Fatalf("profile rows: got %d", len(prows))
	}
	if prows[0][0] != "Position (m)" {
		t.Errorf("profile header: %v", prows[0])
	}
}

func TestXLSXHandler(t *testing.T) {
	body, err := json.Marshal(sampleResults())
	if err != nil {
		t.Fatal(err)
	}
	h := &Handler{}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.XLSX(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type: got %q", ct)
	}
	// XLSX is a zip container.
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("body is not a zip archive")
	}
}
