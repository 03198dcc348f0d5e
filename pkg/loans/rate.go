package loans

// RatePolicy resolves the annual interest rate applicable to a period index.
// It is either a single constant rate or an ordered band table with a trailing
// "onwards" rate for periods beyond the table. All schedule invariants are
// checked at construction so resolution cannot fail mid-simulation.
type RatePolicy struct {
	bands      []Band
	onwards    float64
	hasOnwards bool
}

// NewConstantRate returns a policy that applies a single annual rate to every
// period.
func NewConstantRate(annualRate float64) (*RatePolicy, error) {
	if annualRate < 0 {
		return nil, configErr("rate schedule", -1, "annual rate %.4f is negative", annualRate)
	}
	return &RatePolicy{onwards: annualRate, hasOnwards: true}, nil
}

// NewRateTable returns a policy backed by an ordered band table. onwardsRate
// may be nil, in which case the bands themselves must cover every period up to
// termPeriods.
func NewRateTable(bands []Band, onwardsRate *float64, termPeriods int) (*RatePolicy, error) {
	hasOnwards := onwardsRate != nil
	if hasOnwards && *onwardsRate < 0 {
		return nil, configErr("rate schedule", -1, "onwards rate %.4f is negative", *onwardsRate)
	}
	if err := validateBands("rate schedule", bands, hasOnwards, termPeriods); err != nil {
		return nil, err
	}
	policy := &RatePolicy{bands: bands, hasOnwards: hasOnwards}
	if hasOnwards {
		policy.onwards = *onwardsRate
	}
	return policy, nil
}

// AnnualRateForPeriod resolves the annual rate for a 0-based period index.
func (p *RatePolicy) AnnualRateForPeriod(period int) float64 {
	return lookupBand(p.bands, p.onwards, p.hasOnwards, period)
}

// PeriodRateForPeriod resolves the per-month rate for a 0-based period index.
func (p *RatePolicy) PeriodRateForPeriod(period int) float64 {
	return PeriodRate(p.AnnualRateForPeriod(period))
}
