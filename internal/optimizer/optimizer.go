// Package optimizer searches for the minimum fixed monthly payment that pays
// a loan off within its declared term.
package optimizer

import (
	"errors"
	"fmt"

	"github.com/worawit/housing-loan-planner/internal/schedule"
	"github.com/worawit/housing-loan-planner/pkg/constants"
	"github.com/worawit/housing-loan-planner/pkg/loans"
	"github.com/worawit/housing-loan-planner/pkg/mathutil"
	"go.uber.org/zap"
)

const (
	maxIterations   = 100
	maxDoubleSearch = 20
)

// Runner evaluates candidate payments against the schedule engine.
type Runner struct {
	logger *zap.Logger
	engine *schedule.Engine
}

// NewRunner constructs a Runner.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, engine: schedule.NewEngine(logger)}
}

// Result summarizes a minimum-payment search.
type Result struct {
	Payment        float64 `json:"payment"`
	MonthsToPayoff int     `json:"monthsToPayoff"`
	TotalInterest  float64 `json:"totalInterest"`
	Iterations     int     `json:"iterations"`
	Converged      bool    `json:"converged"`
}

// MinimumMonthlyPayment binary-searches the smallest fixed payment under which
// the scenario pays off within its declared term. The scenario's own payment
// policy is ignored; its rate schedule and top-ups are honored.
func (r *Runner) MinimumMonthlyPayment(scenario schedule.Scenario) (Result, error) {
	if scenario.TermPeriods <= 0 {
		return Result{}, fmt.Errorf("scenario %q has no declared term to pay off within", scenario.Name)
	}

	// The annuity payment at the highest rate the schedule ever applies is
	// always sufficient, so it makes a sound initial upper bound.
	maxRate := 0.00
	for period := 0; period < scenario.TermPeriods; period++ {
		maxRate = mathutil.Max(maxRate, scenario.Rates.AnnualRateForPeriod(period))
	}
	high := loans.MonthlyPayment(scenario.Principal, loans.PeriodRate(maxRate), scenario.TermPeriods)

	iterations := 0
	feasibleHigh := false
	for i := 0; i < maxDoubleSearch; i++ {
		feasible, err := r.feasible(scenario, high)
		if err != nil {
			return Result{}, err
		}
		iterations++
		if feasible {
			feasibleHigh = true
			break
		}
		high *= 2
	}
	if !feasibleHigh {
		return Result{Iterations: iterations}, fmt.Errorf(
			"scenario %q: no feasible payment found up to %.2f", scenario.Name, high)
	}

	low := 0.00
	for iterations < maxIterations && high-low > constants.CurrencyTolerance {
		mid := (low + high) / 2
		feasible, err := r.feasible(scenario, mid)
		if err != nil {
			return Result{}, err
		}
		if feasible {
			high = mid
		} else {
			low = mid
		}
		iterations++
	}

	payment := mathutil.Round(high + constants.CurrencyTolerance/2)
	final, err := r.evaluate(scenario, payment)
	if err != nil {
		return Result{}, err
	}
	summary, err := schedule.Summarize(final)
	if err != nil {
		return Result{}, err
	}

	r.logger.Debug(fmt.Sprintf("scenario %s: minimum payment %.2f pays off in %d months",
		scenario.Name, payment, summary.MonthsToPayoff),
		zap.String("op", "optimizer.MinimumMonthlyPayment"),
	)

	return Result{
		Payment:        payment,
		MonthsToPayoff: summary.MonthsToPayoff,
		TotalInterest:  summary.TotalInterest,
		Iterations:     iterations,
		Converged:      high-low <= constants.CurrencyTolerance,
	}, nil
}

// feasible reports whether a fixed payment clears the balance within the
// declared term. Non-amortizing payments count as infeasible rather than
// errors during the search.
func (r *Runner) feasible(scenario schedule.Scenario, payment float64) (bool, error) {
	computed, err := r.evaluate(scenario, payment)
	if err != nil {
		var nonAmortizing *schedule.NonAmortizingPaymentError
		var configuration *loans.ConfigurationError
		if errors.As(err, &nonAmortizing) || errors.As(err, &configuration) {
			return false, nil
		}
		return false, err
	}
	return !computed.Incomplete && len(computed.Records) <= scenario.TermPeriods, nil
}

func (r *Runner) evaluate(scenario schedule.Scenario, payment float64) (*schedule.Schedule, error) {
	fixed, err := loans.NewFixedPayment(payment)
	if err != nil {
		return nil, err
	}
	candidate := scenario
	candidate.Payments = fixed
	candidate.AllowNegativeAmortization = false
	return r.engine.Run(candidate)
}
