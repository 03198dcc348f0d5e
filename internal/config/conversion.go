package config

import (
	"fmt"

	"github.com/worawit/housing-loan-planner/internal/schedule"
	"github.com/worawit/housing-loan-planner/pkg/constants"
	"github.com/worawit/housing-loan-planner/pkg/datetime"
	"github.com/worawit/housing-loan-planner/pkg/loans"
)

// BuildScenarios converts every active scenario into an engine scenario,
// surfacing any schedule invariant violation before simulation starts.
func (conf *Configuration) BuildScenarios() ([]schedule.Scenario, error) {
	var scenarios []schedule.Scenario
	for i := range conf.Scenarios {
		if !conf.Scenarios[i].Active {
			continue
		}
		converted, err := conf.Scenarios[i].ToEngineScenario(conf.StartDate)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", conf.Scenarios[i].Name, err)
		}
		scenarios = append(scenarios, converted)
	}
	return scenarios, nil
}

// ToEngineScenario converts one scenario definition into the engine's input
// form. Policy constructors validate their schedules here, so malformed
// tables fail before any period is simulated.
func (s *Scenario) ToEngineScenario(startDate string) (schedule.Scenario, error) {
	principal := s.Principal
	if principal <= 0 {
		principal = s.HousePrice - s.DownPayment
	}

	termMonths := s.TermMonths
	if termMonths == 0 {
		termMonths = s.TermYears * constants.MonthsPerYear
	}

	rates, err := s.buildRatePolicy(termMonths)
	if err != nil {
		return schedule.Scenario{}, err
	}
	payments, err := s.buildPaymentPolicy(termMonths)
	if err != nil {
		return schedule.Scenario{}, err
	}
	topUps, err := s.buildTopUpPolicy(startDate)
	if err != nil {
		return schedule.Scenario{}, err
	}

	return schedule.Scenario{
		Name:                      s.Name,
		Principal:                 principal,
		TermPeriods:               termMonths,
		StartDate:                 startDate,
		Rates:                     rates,
		Payments:                  payments,
		TopUps:                    topUps,
		AllowNegativeAmortization: s.AllowNegativeAmortization,
		MaxPeriods:                s.MaxPeriods,
	}, nil
}

func (s *Scenario) buildRatePolicy(termMonths int) (*loans.RatePolicy, error) {
	if len(s.RateSchedule) == 0 {
		return loans.NewConstantRate(s.InterestRate / constants.PercentageMultiplier)
	}

	bands := make([]loans.Band, len(s.RateSchedule))
	for i, band := range s.RateSchedule {
		bands[i] = loans.Band{
			Start: (band.StartYear - 1) * constants.MonthsPerYear,
			End:   band.EndYear * constants.MonthsPerYear,
			Value: band.Rate / constants.PercentageMultiplier,
		}
	}
	var onwards *float64
	if s.OnwardsRate != nil {
		converted := *s.OnwardsRate / constants.PercentageMultiplier
		onwards = &converted
	}
	return loans.NewRateTable(bands, onwards, termMonths)
}

func (s *Scenario) buildPaymentPolicy(termMonths int) (*loans.PaymentPolicy, error) {
	if s.CalculatePayment {
		return loans.NewFormulaPayment(), nil
	}

	if len(s.PaymentSchedule) > 0 {
		bands := make([]loans.Band, len(s.PaymentSchedule))
		for i, band := range s.PaymentSchedule {
			bands[i] = loans.Band{
				Start: (band.StartYear - 1) * constants.MonthsPerYear,
				End:   band.EndYear * constants.MonthsPerYear,
				Value: band.Payment,
			}
		}
		return loans.NewPaymentTable(bands, s.OnwardsPayment, termMonths)
	}

	return loans.NewFixedPayment(s.MonthlyPayment)
}

func (s *Scenario) buildTopUpPolicy(startDate string) (*loans.TopUpPolicy, error) {
	var entries []loans.TopUp
	if s.YearlyAddOn > 0 {
		// Applied at the 12th payment of every loan year, matching the
		// original year-end add-on behavior.
		entries = append(entries, loans.TopUp{
			Period:    constants.MonthsPerYear - 1,
			Amount:    s.YearlyAddOn,
			Recurring: true,
			Frequency: constants.MonthsPerYear,
		})
	}

	for _, topUp := range s.TopUps {
		period := topUp.Period
		if topUp.Month != "" {
			before, err := datetime.DateBeforeDate(topUp.Month, startDate)
			if err != nil {
				return nil, err
			}
			if before {
				return nil, &loans.ConfigurationError{Field: "top-up", Period: -1,
					Reason: fmt.Sprintf("month %s precedes the start date %s", topUp.Month, startDate)}
			}
			offset, err := datetime.MonthsBetween(startDate, topUp.Month)
			if err != nil {
				return nil, err
			}
			period = offset
		}
		entries = append(entries, loans.TopUp{
			Period:    period,
			Amount:    topUp.Amount,
			Recurring: topUp.Recurring,
			Frequency: topUp.FrequencyMonths,
		})
	}

	strategy, err := parseTopUpStrategy(s.TopUpStrategy.Strategy)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 && strategy == loans.TopUpNone {
		return nil, nil
	}
	return loans.NewTopUpPolicy(entries, strategy, s.TopUpStrategy.Amount)
}

func parseTopUpStrategy(name string) (loans.TopUpStrategy, error) {
	switch name {
	case "", "none":
		return loans.TopUpNone, nil
	case "additional":
		return loans.TopUpAdditional, nil
	case "fixed":
		return loans.TopUpRaiseTo, nil
	case "percentage":
		return loans.TopUpPercent, nil
	default:
		return loans.TopUpNone, fmt.Errorf("unknown top-up strategy %q", name)
	}
}
