package factory

import (
	"encoding/json"
	"errors"
	"net/http"

	engine "VesselForge/internal/calc/engine"
)

// Request is the generic calculation envelope: which calculator, which of
// its operations, and the input mapping.
type Request struct {
	CalculatorType  string        `json:"calculator_type"`
	CalculationType string        `json:"calculation_type"`
	Inputs          engine.Inputs `json:"inputs"`
}

type Handler struct{}

// Calc dispatches a Request through the factory.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Run(req)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Run executes one calculation request. The calculation_type field is folded
// into the input mapping so callers may supply it either way.
func Run(req Request) (engine.Results, error) {
	c, err := New(req.CalculatorType)
	if err != nil {
		return nil, err
	}
	in := make(engine.Inputs, len(req.Inputs)+1)
	for k, v := range req.Inputs {
		in[k] = v
	}
	if req.CalculationType != "" {
		in["calculation_type"] = req.CalculationType
	}
	return c.Calculate(in)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidStressCondition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrUnknownCalculatorType),
		errors.Is(err, engine.ErrUnsupportedCalculationType):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
