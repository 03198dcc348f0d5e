package loans

// PaymentKind identifies how a PaymentPolicy resolves the scheduled payment.
type PaymentKind int

const (
	// PaymentFixed returns a caller-supplied constant payment.
	PaymentFixed PaymentKind = iota
	// PaymentTable resolves the payment from an ordered band table.
	PaymentTable
	// PaymentFormula recomputes the annuity payment whenever the rate changes.
	PaymentFormula
)

// PreviousPayment carries the rate and amount resolved for the prior period so
// the formula variant can detect rate changes without hidden state. A fresh
// (zero-value) PreviousPayment marks the first period.
type PreviousPayment struct {
	AnnualRate float64
	Amount     float64
	Valid      bool
}

// PaymentPolicy resolves the scheduled payment amount for a period index,
// independent of interest accrual.
type PaymentPolicy struct {
	kind       PaymentKind
	fixed      float64
	bands      []Band
	onwards    float64
	hasOnwards bool
}

// NewFixedPayment returns a policy with a constant caller-supplied payment.
func NewFixedPayment(amount float64) (*PaymentPolicy, error) {
	if amount <= 0 {
		return nil, configErr("payment schedule", -1, "payment %.2f must be positive", amount)
	}
	return &PaymentPolicy{kind: PaymentFixed, fixed: amount}, nil
}

// NewPaymentTable returns a policy backed by an ordered band table, with the
// same contiguity rules as a rate table.
func NewPaymentTable(bands []Band, onwardsPayment *float64, termPeriods int) (*PaymentPolicy, error) {
	hasOnwards := onwardsPayment != nil
	if hasOnwards && *onwardsPayment < 0 {
		return nil, configErr("payment schedule", -1, "onwards payment %.2f is negative", *onwardsPayment)
	}
	if err := validateBands("payment schedule", bands, hasOnwards, termPeriods); err != nil {
		return nil, err
	}
	policy := &PaymentPolicy{kind: PaymentTable, bands: bands, hasOnwards: hasOnwards}
	if hasOnwards {
		policy.onwards = *onwardsPayment
	}
	return policy, nil
}

// NewFormulaPayment returns a policy that derives the payment from the annuity
// formula: re-amortized over the remaining term against the current balance
// whenever the resolved rate differs from the previous period's rate, stable
// otherwise.
func NewFormulaPayment() *PaymentPolicy {
	return &PaymentPolicy{kind: PaymentFormula}
}

// Kind reports how the policy resolves payments.
func (p *PaymentPolicy) Kind() PaymentKind {
	return p.kind
}

// PaymentForPeriod resolves the scheduled payment for a 0-based period index.
// balance, annualRate, and remainingPeriods only matter for the formula
// variant; prev is the previous period's resolved payment.
func (p *PaymentPolicy) PaymentForPeriod(period int, balance, annualRate float64, remainingPeriods int, prev PreviousPayment) float64 {
	switch p.kind {
	case PaymentTable:
		return lookupBand(p.bands, p.onwards, p.hasOnwards, period)
	case PaymentFormula:
		if prev.Valid && prev.AnnualRate == annualRate {
			return prev.Amount
		}
		return MonthlyPayment(balance, PeriodRate(annualRate), remainingPeriods)
	default:
		return p.fixed
	}
}
