// Package importer runs ASME VIII Division 1 cylindrical shell calculations
// for every row of an uploaded XLSX workbook. Rows that do not parse or do
// not calculate are skipped rather than failing the whole import.
package importer

import (
	"encoding/json"
	"fmt"
	"net/http"

	asmediv1 "VesselForge/internal/calc/asmediv1"
	engine "VesselForge/internal/calc/engine"
	"github.com/xuri/excelize/v2"
)

type Handler struct{}

type ShellImportResult struct {
	Count   int              `json:"count"`
	Skipped int              `json:"skipped"`
	Results []engine.Results `json:"results"`
}

func (h *Handler) Shells(w http.ResponseWriter, r *http.Request) {
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

	var c asmediv1.Calculator
	out := ShellImportResult{}
	for i := 1; i < len(rows); i++ {
		input, err := parseShellRow(rows[i])
		if err != nil {
			out.Skipped++
			continue
		}
		res, err := c.Calculate(input)
		if err != nil {
			out.Skipped++
			continue
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// parseShellRow expects: design_pressure, inside_radius, allowable_stress,
// joint_efficiency (optional), corrosion_allowance (optional).
func parseShellRow(row []string) (engine.Inputs, error) {
	if len(row) < 3 {
		return nil, fmt.Errorf("bad row")
	}
	pressure, err := toFloat(row[0])
	if err != nil {
		return nil, err
	}
	radius, err := toFloat(row[1])
	if err != nil {
		return nil, err
	}
	stress, err := toFloat(row[2])
	if err != nil {
		return nil, err
	}
	in := engine.Inputs{
		"calculation_type": "cylindrical_shell",
		"design_pressure":  pressure,
		"inside_radius":    radius,
		"allowable_stress": stress,
	}
	if len(row) > 3 && row[3] != "" {
		if v, err := toFloat(row[3]); err == nil {
			in["joint_efficiency"] = v
		}
	}
	if len(row) > 4 && row[4] != "" {
		if v, err := toFloat(row[4]); err == nil {
			in["corrosion_allowance"] = v
		}
	}
	return in, nil
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(s, "%f", &v)
	return v, err
}
