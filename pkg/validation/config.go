package validation

import (
	"fmt"

	"github.com/worawit/housing-loan-planner/pkg/constants"
)

// ScenarioInfo carries the subset of scenario configuration needed for
// non-fatal validation ahead of simulation.
type ScenarioInfo struct {
	Name              string
	Active            bool
	Principal         float64
	TermMonths        int
	AnnualRatePercent float64 // rate applicable to the first period
	MonthlyPayment    float64 // manual payment; 0 when formula-driven
	CalculatePayment  bool
}

// ValidateScenarios inspects scenario definitions and returns human-readable
// warnings for inputs that are legal but likely planning mistakes. Hard
// schedule invariants are enforced separately at policy construction.
func ValidateScenarios(scenarios []ScenarioInfo) []string {
	var warnings []string

	active := 0
	for _, scenario := range scenarios {
		if !scenario.Active {
			continue
		}
		active++

		if scenario.Principal <= 0 {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' has a non-positive principal of %.2f",
				scenario.Name, scenario.Principal))
		}
		if scenario.TermMonths > constants.MaxTermMonths {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' has a %d month term exceeding the %d month maximum",
				scenario.Name, scenario.TermMonths, constants.MaxTermMonths))
		}
		if scenario.CalculatePayment && scenario.MonthlyPayment > 0 {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' declares both a manual payment and calculatePayment; the calculated payment wins",
				scenario.Name))
		}

		if !scenario.CalculatePayment && scenario.Principal > 0 && scenario.MonthlyPayment > 0 {
			firstInterest := scenario.Principal * scenario.AnnualRatePercent /
				(constants.PercentageMultiplier * constants.MonthsPerYear)
			if scenario.MonthlyPayment <= firstInterest {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s' payment %.2f does not cover first month interest %.2f - the loan will not amortize",
					scenario.Name, scenario.MonthlyPayment, firstInterest))
			}
		}
	}

	if active == 0 {
		warnings = append(warnings, "No active scenarios are configured")
	}
	return warnings
}
