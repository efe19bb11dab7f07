// Package report renders a calculation result as a PDF datasheet.
package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	engine "VesselForge/internal/calc/engine"
	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Project        string         `json:"project"`
	Vessel         string         `json:"vessel"`
	Author         string         `json:"author"`
	Title          string         `json:"title"`
	CalculatorType string         `json:"calculator_type"`
	Inputs         engine.Inputs  `json:"inputs"`
	Results        engine.Results `json:"results"`
	Notes          string         `json:"notes"`
}

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Pressure Vessel Calculation Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Vessel: %s", input.Vessel))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Design code: %s", input.CalculatorType))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	writeMapping(pdf, "Inputs", input.Inputs)
	writeMapping(pdf, "Results", input.Results)

	if input.Notes != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, input.Notes, "", "L", false)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"calculation.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

// writeMapping prints a mapping as label/value lines in key order so the
// same calculation always renders the same document.
func writeMapping(pdf *gofpdf.Fpdf, heading string, m map[string]any) {
	if len(m) == 0 {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, heading)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, k := range keys {
		pdf.Cell(0, 5, fmt.Sprintf("%s: %s", k, formatValue(m[k])))
		pdf.Ln(5)
	}
	pdf.Ln(5)
}

func formatValue(v any) string {
	switch n := v.(type) {
	case float64:
		return fmt.Sprintf("%.4f", n)
	case bool:
		if n {
			return "yes"
		}
		return "no"
	case string:
		return n
	}
	return fmt.Sprintf("%v", v)
}
