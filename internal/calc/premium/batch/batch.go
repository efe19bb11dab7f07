// Package batch runs a list of calculation requests through the calculator
// factory in one call. The batch is all-or-nothing: the first failing item
// aborts it so callers never store partial result sets.
package batch

import (
	"fmt"

	engine "VesselForge/internal/calc/engine"
	factory "VesselForge/internal/calc/factory"
)

type Input struct {
	Items []factory.Request `json:"items"`
}

type Result struct {
	Count   int              `json:"count"`
	Results []engine.Results `json:"results"`
}

func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	out := Result{Results: make([]engine.Results, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := factory.Run(item)
		if err != nil {
			return Result{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)
	return out, nil
}
