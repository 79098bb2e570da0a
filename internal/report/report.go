// Package report renders a completed analysis as a PDF document.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/phpdave11/gofpdf"

	"Flexura/internal/beam/model"
)

type Input struct {
	Project string                `json:"project"`
	Author  string                `json:"author"`
	Title   string                `json:"title"`
	Notes   string                `json:"notes"`
	Results model.AnalysisResults `json:"results"`
}

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Beam Analysis Report"
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"beam-report.pdf\"")
	if err := Render(w, input); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

// Render writes the PDF for one analysis to out.
func Render(out io.Writer, input Input) error {
	res := input.Results

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	section(pdf, "Beam")
	pdf.Cell(0, 6, fmt.Sprintf("Length: %.3f m    E: %.3g Pa    I: %.3g m^4",
		res.Beam.Length, res.Beam.ElasticModulus, res.Beam.MomentOfInertia))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Material: %s    Boundary: %s    Method: %s",
		res.Beam.Material.Name, res.Supports.Type, res.Method))
	pdf.Ln(10)

	section(pdf, "Support reactions")
	for _, reac := range res.Reactions {
		pdf.Cell(0, 6, fmt.Sprintf("%s at %.3f m:  V = %.2f N    H = %.2f N    M = %.2f N*m",
			reac.SupportID, reac.Position, reac.VerticalForce, reac.HorizontalForce, reac.Moment))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	section(pdf, "Extremes")
	extremes := []struct {
		label string
		max   model.MaxValues
		unit  string
	}{
		{"Shear", res.MaxShear, "N"},
		{"Moment", res.MaxMoment, "N*m"},
		{"Deflection", res.MaxDeflection, "m"},
		{"Stress", res.MaxStress, "Pa"},
	}
	for _, e := range extremes {
		if e.max.Value == 0 && e.max.Position == 0 {
			continue
		}
		pdf.Cell(0, 6, fmt.Sprintf("%s: %.4g %s at x = %.3f m", e.label, e.max.Value, e.unit, e.max.Position))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	section(pdf, "Safety")
	status := "SAFE"
	if !res.SafetyCheck.IsStructurallySafe {
		status = "NOT SAFE"
	}
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s (safety factor %.2f)", status, res.SafetyCheck.SafetyFactor))
	pdf.Ln(6)
	for _, cp := range res.SafetyCheck.CriticalPoints {
		pdf.Cell(0, 6, fmt.Sprintf("%s at %.3f m: utilization %.0f%% (%s)",
			cp.Type, cp.Position, cp.UtilizationRatio*100, cp.Severity))
		pdf.Ln(6)
	}
	for _, warning := range res.SafetyCheck.Warnings {
		pdf.MultiCell(0, 6, "Warning: "+warning, "", "L", false)
	}
	for _, rec := range res.SafetyCheck.Recommendations {
		pdf.MultiCell(0, 6, "Recommendation: "+rec, "", "L", false)
	}

	if input.Notes != "" {
		pdf.Ln(4)
		section(pdf, "Notes")
		pdf.MultiCell(0, 6, input.Notes, "", "L", false)
	}

	return pdf.Output(out)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
}
