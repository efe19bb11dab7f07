// Package history persists finished calculations per user and serves them
// back: the CRUD collaborator around the calculation engine.
package history

import (
	"encoding/json"
	"net/http"

	auth "VesselForge/internal/auth"
	factory "VesselForge/internal/calc/factory"
	repo "VesselForge/internal/repo"
)

type Handler struct {
	Repo repo.Repository
}

// Run executes a calculation and stores the request and result mappings
// verbatim with a status field.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req factory.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	status := "completed"
	res, calcErr := factory.Run(req)

	inputsJSON, err := json.Marshal(req.Inputs)
	if err != nil {
		http.Error(w, "Invalid inputs", http.StatusBadRequest)
		return
	}
	var resultsJSON []byte
	if calcErr != nil {
		status = "failed"
		resultsJSON, _ = json.Marshal(map[string]string{"error": calcErr.Error()})
	} else {
		resultsJSON, err = json.Marshal(res)
		if err != nil {
			http.Error(w, "Encoding error", http.StatusInternalServerError)
			return
		}
	}

	id, err := h.Repo.SaveCalculation(r.Context(), repo.Calculation{
		UserID:          userID,
		CalculatorType:  req.CalculatorType,
		CalculationType: req.CalculationType,
		Inputs:          inputsJSON,
		Results:         resultsJSON,
		Status:          status,
	})
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	if calcErr != nil {
		http.Error(w, calcErr.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":      id,
		"status":  status,
		"results": res,
	})
}

// List returns the caller's stored calculations, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	calcs, err := h.Repo.ListCalculations(r.Context(), userID)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if calcs == nil {
		calcs = []repo.Calculation{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(calcs)
}
