package batch

import (
	"bytes"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"
)

func sheetUpload(t *testing.T, rows [][]interface{}) (*bytes.Buffer, string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	var sheet bytes.Buffer
	if err := f.Write(&sheet); err != nil {
		t.Fatal(err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "beams.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(sheet.Bytes()); err != nil {
		t.Fatal(err)
	}
	mw.Close()
	return &body, mw.FormDataContentType()
}

func TestImportRunsEachRow(t *testing.T) {
	body, contentType := sheetUpload(t, [][]interface{}{
		{"name", "length_m", "udl_kn_m", "point_kn", "point_pos_m", "e_gpa", "i_cm4", "yield_mpa"},
		{"floor-beam", 6.0, 10.0},
		{"broken", "abc", 10.0},
	})

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	(&Handler{}).Import(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var out ImportResult
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 {
		t.Fatalf("count: got %d", out.Count)
	}

	good := out.Results[0]
	if !good.OK {
		t.Fatalf("good row failed: %s", good.Error)
	}
	// Uniform 10 kN/m over 6 m: peak moment w·L²/8 = 45 kN·m, sampled
	// near midspan.
	if math.Abs(good.MaxMoment-45000) > 450 {
		t.Errorf("max moment: got %g", good.MaxMoment)
	}
	if !good.Safe {
		t.Error("lightly loaded span reported unsafe")
	}

	bad := out.Results[1]
	if bad.OK || bad.Error == "" {
		t.Errorf("bad row not reported: %+v", bad)
	}
}

func TestImportRequiresFile(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	(&Handler{}).Import(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d", rec.Code)
	}
}
