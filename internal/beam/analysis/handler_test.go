package analysis

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Flexura/internal/beam/model"
)

func postJSON(t *testing.T, fn http.HandlerFunc, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := &Handler{}
	rec := postJSON(t, h.Analyze, simpleSpanRequest())
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var res model.AnalysisResults
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Reactions) != 2 {
		t.Errorf("reactions: got %d", len(res.Reactions))
	}
	if res.Reactions[0].VerticalForce != 500 {
		t.Errorf("Ra: got %g", res.Reactions[0].VerticalForce)
	}
}

func TestAnalyzeEndpointRejectsMalformedPayload(t *testing.T) {
	h := &Handler{}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rec.Code)
	}
}

func TestAnalyzeEndpointConfigErrorIs400(t *testing.T) {
	bad := simpleSpanRequest()
	bad.Supports.Supports = bad.Supports.Supports[:1]
	h := &Handler{}
	rec := postJSON(t, h.Analyze, bad)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Error || len(body.Errors) == 0 {
		t.Errorf("error body: %+v", body)
	}
}

func TestAnalyzeEndpointSolverErrorIs422(t *testing.T) {
	bad := simpleSpanRequest()
	bad.Supports.Supports[1].Position = 0
	h := &Handler{}
	rec := postJSON(t, h.Analyze, bad)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestValidateEndpoint(t *testing.T) {
	bad := simpleSpanRequest()
	bad.Beam.Length = 0
	h := &Handler{}
	rec := postJSON(t, h.Validate, bad)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var out model.ValidationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.IsValid || len(out.Errors) == 0 {
		t.Errorf("validation result: %+v", out)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	h := &Handler{}

	rec := httptest.NewRecorder()
	h.BeamTypes(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	var types map[string][]beamTypeInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &types); err != nil {
		t.Fatal(err)
	}
	if len(types["beam_types"]) != 5 {
		t.Errorf("beam types: got %d", len(types["beam_types"]))
	}

	rec = httptest.NewRecorder()
	h.Materials(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	var mats map[string][]materialInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &mats); err != nil {
		t.Fatal(err)
	}
	if len(mats["materials"]) != 4 {
		t.Errorf("materials: got %d", len(mats["materials"]))
	}
}
