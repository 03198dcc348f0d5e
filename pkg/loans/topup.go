package loans

import "github.com/worawit/housing-loan-planner/pkg/constants"

// TopUp is an extra principal payment at a named period, optionally recurring
// every Frequency months from that period onward.
type TopUp struct {
	Period    int
	Amount    float64
	Recurring bool
	Frequency int // months between recurrences; defaults to 12 (yearly add-on)
}

// TopUpStrategy adjusts every period's payment relative to the scheduled base
// payment.
type TopUpStrategy int

const (
	// TopUpNone applies no strategy-based top-up.
	TopUpNone TopUpStrategy = iota
	// TopUpAdditional adds a flat amount to every payment.
	TopUpAdditional
	// TopUpRaiseTo tops the payment up to at least a target amount.
	TopUpRaiseTo
	// TopUpPercent adds a percentage of the base payment.
	TopUpPercent
)

// TopUpPolicy resolves the extra principal applied at each period: the sum of
// any declared one-time or recurring top-ups plus the strategy-based amount.
type TopUpPolicy struct {
	entries        []TopUp
	strategy       TopUpStrategy
	strategyAmount float64
}

// NewTopUpPolicy validates the declared top-ups and strategy. Pass TopUpNone
// with a zero amount when only explicit entries apply.
func NewTopUpPolicy(entries []TopUp, strategy TopUpStrategy, strategyAmount float64) (*TopUpPolicy, error) {
	normalized := make([]TopUp, len(entries))
	for i, entry := range entries {
		if entry.Period < 0 {
			return nil, configErr("top-up", entry.Period, "period index is negative")
		}
		if entry.Amount < 0 {
			return nil, configErr("top-up", entry.Period, "amount %.2f is negative", entry.Amount)
		}
		if entry.Recurring && entry.Frequency == 0 {
			entry.Frequency = constants.MonthsPerYear
		}
		if entry.Recurring && entry.Frequency < 0 {
			return nil, configErr("top-up", entry.Period, "frequency %d is negative", entry.Frequency)
		}
		normalized[i] = entry
	}
	if strategyAmount < 0 {
		return nil, configErr("top-up", -1, "strategy amount %.2f is negative", strategyAmount)
	}
	return &TopUpPolicy{entries: normalized, strategy: strategy, strategyAmount: strategyAmount}, nil
}

// TopUpForPeriod resolves the total extra principal for a 0-based period
// index, 0 if none is declared. basePayment is the period's scheduled payment,
// used by the raise-to and percentage strategies.
func (p *TopUpPolicy) TopUpForPeriod(period int, basePayment float64) float64 {
	if p == nil {
		return 0
	}

	amount := 0.00
	for _, entry := range p.entries {
		if entry.Recurring {
			if period >= entry.Period && (period-entry.Period)%entry.Frequency == 0 {
				amount += entry.Amount
			}
		} else if period == entry.Period {
			amount += entry.Amount
		}
	}

	switch p.strategy {
	case TopUpAdditional:
		amount += p.strategyAmount
	case TopUpRaiseTo:
		if p.strategyAmount > basePayment {
			amount += p.strategyAmount - basePayment
		}
	case TopUpPercent:
		amount += basePayment * p.strategyAmount / constants.PercentageMultiplier
	}
	return amount
}
