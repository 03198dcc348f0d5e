package schedule

import "fmt"

// Result pairs a computed schedule with its summary metrics.
type Result struct {
	Schedule *Schedule      `json:"schedule"`
	Summary  SummaryMetrics `json:"summary"`
}

// Compare runs each scenario independently and returns results in input
// order. Scenarios share no state; a failure in any scenario aborts the
// comparison with the scenario identified in the error.
func (e *Engine) Compare(scenarios []Scenario) ([]Result, error) {
	results := make([]Result, 0, len(scenarios))
	for i, scenario := range scenarios {
		computed, err := e.Run(scenario)
		if err != nil {
			return nil, fmt.Errorf("scenario %q (index %d): %w", scenario.Name, i, err)
		}
		summary, err := Summarize(computed)
		if err != nil {
			return nil, fmt.Errorf("scenario %q (index %d): %w", scenario.Name, i, err)
		}
		results = append(results, Result{Schedule: computed, Summary: summary})
	}
	return results, nil
}
