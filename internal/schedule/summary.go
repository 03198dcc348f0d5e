package schedule

import (
	"errors"

	"github.com/worawit/housing-loan-planner/pkg/constants"
)

// ErrEmptySchedule is returned when summarizing a schedule with no periods.
var ErrEmptySchedule = errors.New("cannot summarize an empty schedule")

// SummaryMetrics is a derived read-only view over a completed schedule.
type SummaryMetrics struct {
	TotalInterest  float64 `json:"totalInterest"`
	TotalPrincipal float64 `json:"totalPrincipal"`
	TotalTopUp     float64 `json:"totalTopUp"`
	TotalPaid      float64 `json:"totalPaid"`

	// MonthsToPayoff is the number of simulated periods; 0 when the schedule
	// is incomplete (the loan never paid off under the iteration cap).
	MonthsToPayoff int    `json:"monthsToPayoff"`
	FinalPeriod    int    `json:"finalPeriod"`
	PayoffDate     string `json:"payoffDate,omitempty"`

	// InterestToPrincipal is total interest divided by total principal paid.
	InterestToPrincipal float64 `json:"interestToPrincipal"`
	// EffectiveRatePercent is total interest as a percentage of the original
	// principal over the life of the loan.
	EffectiveRatePercent float64 `json:"effectiveRatePercent"`

	Incomplete bool `json:"incomplete"`
}

// Summarize folds a completed schedule into aggregate metrics in a single
// pass.
func Summarize(s *Schedule) (SummaryMetrics, error) {
	if s == nil || len(s.Records) == 0 {
		return SummaryMetrics{}, ErrEmptySchedule
	}

	var metrics SummaryMetrics
	for _, record := range s.Records {
		metrics.TotalInterest += record.Interest
		metrics.TotalPrincipal += record.Principal
		metrics.TotalTopUp += record.TopUp
	}
	metrics.TotalPaid = metrics.TotalInterest + metrics.TotalPrincipal + metrics.TotalTopUp

	last := s.Records[len(s.Records)-1]
	metrics.FinalPeriod = last.Period
	metrics.Incomplete = s.Incomplete
	if !s.Incomplete {
		metrics.MonthsToPayoff = len(s.Records)
		metrics.PayoffDate = last.Date
	}

	if principal := s.Records[0].OpeningBalance; principal > 0 {
		metrics.EffectiveRatePercent = metrics.TotalInterest / principal * constants.PercentageMultiplier
	}
	if metrics.TotalPrincipal > 0 {
		metrics.InterestToPrincipal = metrics.TotalInterest / metrics.TotalPrincipal
	}

	return metrics, nil
}
