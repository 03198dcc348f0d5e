// Package loans provides the amortization calculation primitives: the annuity
// payment formula and the rate, payment, and top-up policies consumed by the
// schedule engine.
package loans

import (
	"math"

	"github.com/worawit/housing-loan-planner/pkg/constants"
)

// PeriodRate converts an annual rate (decimal fraction, e.g. 0.06 for 6%) to a
// per-month rate by plain division. This matches the historical calculations
// and is intentionally not a compounding conversion.
func PeriodRate(annualRate float64) float64 {
	return annualRate / constants.MonthsPerYear
}

// MonthlyPayment calculates the fixed payment that fully amortizes principal
// over remainingPeriods at periodRate using the standard annuity formula.
func MonthlyPayment(principal, periodRate float64, remainingPeriods int) float64 {
	if remainingPeriods < 1 {
		remainingPeriods = 1
	}
	if periodRate == 0 {
		// For zero interest, simply divide the principal by the term
		return principal / float64(remainingPeriods)
	}

	power := math.Pow(1.00+periodRate, float64(remainingPeriods))
	discountFactor := (power - 1.00) / power
	return principal * periodRate / discountFactor
}

// ImpliedPeriods is the inverse of MonthlyPayment: the number of periods a
// given payment takes to amortize principal at periodRate. It returns an error
// when the payment does not exceed the first period's interest, since such a
// payment never amortizes.
func ImpliedPeriods(principal, periodRate, payment float64) (float64, error) {
	if payment <= 0 {
		return 0, configErr("payment", -1, "payment %.2f must be positive", payment)
	}
	if periodRate == 0 {
		return principal / payment, nil
	}
	interest := principal * periodRate
	if payment <= interest {
		return 0, configErr("payment", -1,
			"payment %.2f does not cover first period interest %.2f", payment, interest)
	}
	return -math.Log(1.00-principal*periodRate/payment) / math.Log(1.00+periodRate), nil
}
