// Package export writes analysis results as an XLSX workbook with a
// summary sheet and a profile sheet.
package export

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"Flexura/internal/beam/model"
)

type Handler struct{}

func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	var res model.AnalysisResults
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	f, err := Workbook(res)
	if err != nil {
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"beam-analysis.xlsx\"")
	if err := f.Write(w); err != nil {
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
}

// Workbook builds the workbook for one analysis.
func Workbook(res model.AnalysisResults) (*excelize.File, error) {
	f := excelize.NewFile()

	summary := "Summary"
	f.SetSheetName("Sheet1", summary)
	rows := [][]interface{}{
		{"Request", res.RequestID},
		{"Beam length (m)", res.Beam.Length},
		{"Elastic modulus (Pa)", res.Beam.ElasticModulus},
		{"Moment of inertia (m^4)", res.Beam.MomentOfInertia},
		{"Material", res.Beam.Material.Name},
		{"Boundary", string(res.Supports.Type)},
		{"Method", res.Method},
		{},
		{"Support", "Position (m)", "V (N)", "H (N)", "M (N*m)"},
	}
	for _, reac := range res.Reactions {
		rows = append(rows, []interface{}{
			reac.SupportID, reac.Position, reac.VerticalForce, reac.HorizontalForce, reac.Moment,
		})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Max shear (N)", res.MaxShear.Value, "at x (m)", res.MaxShear.Position},
		[]interface{}{"Max moment (N*m)", res.MaxMoment.Value, "at x (m)", res.MaxMoment.Position},
		[]interface{}{"Max deflection (m)", res.MaxDeflection.Value, "at x (m)", res.MaxDeflection.Position},
		[]interface{}{"Max stress (Pa)", res.MaxStress.Value, "at x (m)", res.MaxStress.Position},
		[]interface{}{"Structurally safe", res.SafetyCheck.IsStructurallySafe},
	)
	if err := writeRows(f, summary, rows); err != nil {
		return nil, err
	}

	profiles := "Profiles"
	if _, err := f.NewSheet(profiles); err != nil {
		return nil, err
	}
	prows := [][]interface{}{{"Position (m)", "Shear (N)", "Moment (N*m)", "Deflection (m)", "Stress (Pa)"}}
	for i := range res.ShearForces {
		row := []interface{}{res.ShearForces[i].Position, res.ShearForces[i].Value}
		row = append(row, valueAt(res.Moments, i), valueAt(res.Deflections, i), valueAt(res.Stresses, i))
		prows = append(prows, row)
	}
	if err := writeRows(f, profiles, prows); err != nil {
		return nil, err
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func valueAt(points []model.DataPoint, i int) interface{} {
	if i >= len(points) {
		return nil
	}
	return points[i].Value
}
