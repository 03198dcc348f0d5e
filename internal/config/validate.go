package config

import (
	"github.com/worawit/housing-loan-planner/pkg/validation"
)

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard schedule invariants are enforced later when the
// policies are constructed.
func (conf *Configuration) ValidateConfiguration() []string {
	var scenarios []validation.ScenarioInfo
	for _, scenario := range conf.Scenarios {
		principal := scenario.Principal
		if principal <= 0 {
			principal = scenario.HousePrice - scenario.DownPayment
		}
		termMonths := scenario.TermMonths
		if termMonths == 0 {
			termMonths = scenario.TermYears * 12
		}
		firstRate := scenario.InterestRate
		if len(scenario.RateSchedule) > 0 {
			firstRate = scenario.RateSchedule[0].Rate
		}

		scenarios = append(scenarios, validation.ScenarioInfo{
			Name:              scenario.Name,
			Active:            scenario.Active,
			Principal:         principal,
			TermMonths:        termMonths,
			AnnualRatePercent: firstRate,
			MonthlyPayment:    scenario.MonthlyPayment,
			CalculatePayment:  scenario.CalculatePayment,
		})
	}

	return validation.ValidateScenarios(scenarios)
}
