// Package schedule drives the period-by-period amortization simulation and
// reduces completed schedules into summary metrics.
package schedule

import (
	"fmt"
	"time"

	"github.com/worawit/housing-loan-planner/pkg/constants"
	"github.com/worawit/housing-loan-planner/pkg/datetime"
	"github.com/worawit/housing-loan-planner/pkg/loans"
	"github.com/worawit/housing-loan-planner/pkg/mathutil"
	"go.uber.org/zap"
)

// Scenario is the caller-supplied configuration for one simulation run. All
// fields are passed by value into the engine; the engine retains no reference
// to them after Run returns.
type Scenario struct {
	Name        string
	Principal   float64
	TermPeriods int
	StartDate   string // calendar label of period 0, e.g. "2026-01"

	Rates    *loans.RatePolicy
	Payments *loans.PaymentPolicy
	TopUps   *loans.TopUpPolicy // optional

	// AllowNegativeAmortization lets the balance grow when the payment does
	// not cover interest instead of failing fast. The iteration cap bounds
	// the resulting schedule.
	AllowNegativeAmortization bool

	// MaxPeriods is the hard iteration cap; 0 derives a default of twice the
	// declared term.
	MaxPeriods int
}

// PeriodRecord is one simulated period of a schedule.
type PeriodRecord struct {
	Period           int     `json:"period"`
	Date             string  `json:"date"`
	OpeningBalance   float64 `json:"openingBalance"`
	AnnualRate       float64 `json:"annualRate"`
	ScheduledPayment float64 `json:"scheduledPayment"`
	Interest         float64 `json:"interest"`
	Principal        float64 `json:"principal"`
	TopUp            float64 `json:"topUp"`
	ClosingBalance   float64 `json:"closingBalance"`
}

// Schedule is the ordered sequence of simulated periods for one scenario.
// Incomplete marks a run that hit the iteration cap with a balance remaining.
type Schedule struct {
	Name       string         `json:"name"`
	Records    []PeriodRecord `json:"records"`
	Incomplete bool           `json:"incomplete"`
}

// NonAmortizingPaymentError reports a payment that cannot cover the period's
// interest accrual. The simulation aborts at the first offending period
// rather than producing a misleading growing-balance schedule.
type NonAmortizingPaymentError struct {
	Period   int
	Payment  float64
	TopUp    float64
	Interest float64
}

func (e *NonAmortizingPaymentError) Error() string {
	return fmt.Sprintf("payment %.2f plus top-up %.2f does not cover interest %.2f at period %d",
		e.Payment, e.TopUp, e.Interest, e.Period)
}

// Engine computes amortization schedules. It holds no cross-call state; a
// single Engine is safe to share across concurrent invocations.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an engine with the given logger.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Run simulates the scenario period by period until the balance reaches zero
// or the iteration cap is hit.
func (e *Engine) Run(s Scenario) (*Schedule, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	iterationCap := s.MaxPeriods
	if iterationCap == 0 {
		iterationCap = constants.IterationCapFactor * s.TermPeriods
	}

	result := &Schedule{Name: s.Name, Records: make([]PeriodRecord, 0, s.TermPeriods)}
	balance := s.Principal
	var previous loans.PreviousPayment

	for period := 0; ; period++ {
		if period >= iterationCap {
			result.Incomplete = true
			e.logger.Warn(fmt.Sprintf("scenario %s hit the iteration cap of %d periods with %.2f remaining",
				s.Name, iterationCap, balance),
				zap.String("op", "schedule.Run"),
			)
			break
		}

		annualRate := s.Rates.AnnualRateForPeriod(period)
		interest := balance * loans.PeriodRate(annualRate)

		remaining := s.TermPeriods - period
		if remaining < 1 {
			remaining = 1
		}
		payment := s.Payments.PaymentForPeriod(period, balance, annualRate, remaining, previous)
		topUp := s.TopUps.TopUpForPeriod(period, payment)

		if payment+topUp <= interest {
			if !s.AllowNegativeAmortization {
				return nil, &NonAmortizingPaymentError{
					Period:   period,
					Payment:  payment,
					TopUp:    topUp,
					Interest: interest,
				}
			}
			e.logger.Debug(fmt.Sprintf("%s period %d: payment %.2f does not cover interest %.2f, balance grows",
				s.Name, period, payment+topUp, interest),
				zap.String("op", "schedule.Run"),
			)
		}

		// Clamp so the final payment never overshoots the balance.
		principal := mathutil.Min(payment-interest, balance)
		if topUp > 0 && principal+topUp > balance {
			e.logger.Debug(fmt.Sprintf("%s period %d: capping top-up %.2f to prevent overpayment",
				s.Name, period, topUp),
				zap.String("op", "schedule.Run"),
			)
			topUp = balance - principal
		}

		closing := balance - principal - topUp
		if mathutil.IsZero(closing) {
			// We would carry machine error otherwise so just set to 0.
			closing = 0.00
		}

		date, err := datetime.PeriodLabel(s.StartDate, period)
		if err != nil {
			return nil, err
		}

		result.Records = append(result.Records, PeriodRecord{
			Period:           period,
			Date:             date,
			OpeningBalance:   balance,
			AnnualRate:       annualRate,
			ScheduledPayment: payment,
			Interest:         interest,
			Principal:        principal,
			TopUp:            topUp,
			ClosingBalance:   closing,
		})

		previous = loans.PreviousPayment{AnnualRate: annualRate, Amount: payment, Valid: true}
		balance = closing
		if balance <= 0 {
			break
		}
	}

	return result, nil
}

func (s *Scenario) validate() error {
	if s.Principal <= 0 {
		return &loans.ConfigurationError{Field: "principal", Period: -1,
			Reason: fmt.Sprintf("principal %.2f must be positive", s.Principal)}
	}
	if s.TermPeriods <= 0 {
		return &loans.ConfigurationError{Field: "term", Period: -1,
			Reason: fmt.Sprintf("term of %d periods must be positive", s.TermPeriods)}
	}
	if s.TermPeriods > constants.MaxTermMonths {
		return &loans.ConfigurationError{Field: "term", Period: -1,
			Reason: fmt.Sprintf("term of %d periods exceeds the %d period maximum", s.TermPeriods, constants.MaxTermMonths)}
	}
	if s.MaxPeriods < 0 {
		return &loans.ConfigurationError{Field: "maxPeriods", Period: -1,
			Reason: fmt.Sprintf("iteration cap %d is negative", s.MaxPeriods)}
	}
	if s.Rates == nil {
		return &loans.ConfigurationError{Field: "rate schedule", Period: -1, Reason: "no rate policy supplied"}
	}
	if s.Payments == nil {
		return &loans.ConfigurationError{Field: "payment schedule", Period: -1, Reason: "no payment policy supplied"}
	}
	if _, err := time.Parse(datetime.DateTimeLayout, s.StartDate); err != nil {
		return &loans.ConfigurationError{Field: "startDate", Period: -1,
			Reason: fmt.Sprintf("start date %q is not in %s format", s.StartDate, datetime.DateTimeLayout)}
	}
	return nil
}
