// Package batch runs many beam analyses from one uploaded XLSX sheet.
// Each data row describes a simply supported span with an optional uniform
// load and an optional central-region point load; rows that fail to parse
// or to solve are reported, not fatal.
package batch

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"Flexura/internal/beam/analysis"
	"Flexura/internal/beam/model"
)

// Row columns, first row is the header:
// name, length_m, udl_kn_m, point_kn, point_pos_m, e_gpa, i_cm4, yield_mpa
const minColumns = 2

type RowResult struct {
	Name          string  `json:"name"`
	OK            bool    `json:"ok"`
	Error         string  `json:"error,omitempty"`
	MaxMoment     float64 `json:"max_moment,omitempty"`     // N·m
	MaxDeflection float64 `json:"max_deflection,omitempty"` // m
	Safe          bool    `json:"safe"`
}

type ImportResult struct {
	Count   int         `json:"count"`
	Results []RowResult `json:"results"`
}

type Handler struct{}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	out := ImportResult{}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < minColumns {
			continue
		}
		out.Results = append(out.Results, runRow(row, i))
	}
	out.Count = len(out.Results)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func runRow(row []string, index int) RowResult {
	req, name, err := parseRow(row, index)
	if err != nil {
		return RowResult{Name: name, OK: false, Error: err.Error()}
	}
	res, err := analysis.Analyze(req)
	if err != nil {
		return RowResult{Name: name, OK: false, Error: err.Error()}
	}
	return RowResult{
		Name:          name,
		OK:            true,
		MaxMoment:     res.MaxMoment.Value,
		MaxDeflection: res.MaxDeflection.Value,
		Safe:          res.SafetyCheck.IsStructurallySafe,
	}
}

func parseRow(row []string, index int) (model.AnalysisRequest, string, error) {
	name := row[0]
	if name == "" {
		name = fmt.Sprintf("row-%d", index)
	}
	span, err := toFloat(row[1])
	if err != nil || span <= 0 {
		return model.AnalysisRequest{}, name, fmt.Errorf("bad span: %q", row[1])
	}

	var loads []model.Load
	if udl := optFloat(row, 2); udl != 0 {
		loads = append(loads, model.DistributedLoad{
			StartMagnitude: udl * 1e3, EndMagnitude: udl * 1e3,
			StartPosition: 0, EndPosition: span, Direction: model.Down,
		})
	}
	if p := optFloat(row, 3); p != 0 {
		pos := optFloat(row, 4)
		if pos <= 0 || pos >= span {
			pos = span / 2
		}
		loads = append(loads, model.PointLoad{Magnitude: p * 1e3, Position: pos, Direction: model.Down})
	}
	if len(loads) == 0 {
		return model.AnalysisRequest{}, name, fmt.Errorf("no loads")
	}

	e := optFloat(row, 5)
	if e == 0 {
		e = 200 // structural steel
	}
	inertia := optFloat(row, 6)
	if inertia == 0 {
		inertia = 8360 // IPE 300
	}
	yield := optFloat(row, 7)
	if yield == 0 {
		yield = 235
	}

	return model.AnalysisRequest{
		ID: name,
		Beam: model.BeamProperties{
			ID:              name,
			Name:            name,
			Length:          span,
			ElasticModulus:  e * 1e9,
			MomentOfInertia: inertia * 1e-8,
			CrossSection:    model.CrossSection{Kind: model.IBeam, Height: 0.3},
			Material:        model.Material{Name: "Steel", Density: 7850, YieldStrength: yield * 1e6},
		},
		Supports: model.SupportConditions{
			Type: model.SimplySupported,
			Supports: []model.Support{
				{Position: 0, Kind: model.Pin},
				{Position: span, Kind: model.Roller},
			},
		},
		Loads:   model.LoadConditions{Loads: loads},
		Options: model.DefaultOptions(),
	}, name, nil
}

func optFloat(row []string, i int) float64 {
	if i >= len(row) || row[i] == "" {
		return 0
	}
	v, err := toFloat(row[i])
	if err != nil {
		return 0
	}
	return v
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(s, "%f", &v)
	return v, err
}
