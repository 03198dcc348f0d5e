package loans

import (
	"errors"
	"math"
	"testing"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestNewConstantRate(t *testing.T) {
	policy, err := NewConstantRate(0.04)
	if err != nil {
		t.Fatalf("NewConstantRate() error = %v", err)
	}

	for _, period := range []int{0, 11, 359, 720} {
		if got := policy.AnnualRateForPeriod(period); got != 0.04 {
			t.Errorf("AnnualRateForPeriod(%d) = %v, expected 0.04", period, got)
		}
	}

	if got := policy.PeriodRateForPeriod(0); math.Abs(got-0.04/12) > 1e-12 {
		t.Errorf("PeriodRateForPeriod(0) = %v, expected %v", got, 0.04/12)
	}
}

func TestNewConstantRateNegative(t *testing.T) {
	_, err := NewConstantRate(-0.01)
	var configuration *ConfigurationError
	if !errors.As(err, &configuration) {
		t.Fatalf("NewConstantRate() error = %v, expected ConfigurationError", err)
	}
}

func TestNewRateTableResolution(t *testing.T) {
	// Promotional stepped rates: 2.5% years 1-3, 4% years 4-5, 5.5% onwards.
	bands := []Band{
		{Start: 0, End: 36, Value: 0.025},
		{Start: 36, End: 60, Value: 0.04},
	}
	policy, err := NewRateTable(bands, floatPtr(0.055), 360)
	if err != nil {
		t.Fatalf("NewRateTable() error = %v", err)
	}

	tests := []struct {
		period   int
		expected float64
	}{
		{period: 0, expected: 0.025},
		{period: 35, expected: 0.025},
		{period: 36, expected: 0.04},
		{period: 59, expected: 0.04},
		{period: 60, expected: 0.055}, // onwards rate
		{period: 359, expected: 0.055},
	}
	for _, tt := range tests {
		if got := policy.AnnualRateForPeriod(tt.period); got != tt.expected {
			t.Errorf("AnnualRateForPeriod(%d) = %v, expected %v", tt.period, got, tt.expected)
		}
	}
}

func TestNewRateTableWithoutOnwardsReusesLastBand(t *testing.T) {
	bands := []Band{{Start: 0, End: 120, Value: 0.03}}
	policy, err := NewRateTable(bands, nil, 120)
	if err != nil {
		t.Fatalf("NewRateTable() error = %v", err)
	}
	// Overrun periods past the term reuse the last declared band.
	if got := policy.AnnualRateForPeriod(150); got != 0.03 {
		t.Errorf("AnnualRateForPeriod(150) = %v, expected 0.03", got)
	}
}

func TestNewRateTableConstructionErrors(t *testing.T) {
	tests := []struct {
		name    string
		bands   []Band
		onwards *float64
		term    int
	}{
		{
			name: "gap between bands",
			bands: []Band{
				{Start: 0, End: 12, Value: 0.03},
				{Start: 24, End: 36, Value: 0.04},
			},
			onwards: floatPtr(0.05),
			term:    36,
		},
		{
			name: "overlapping bands",
			bands: []Band{
				{Start: 0, End: 24, Value: 0.03},
				{Start: 12, End: 36, Value: 0.04},
			},
			onwards: floatPtr(0.05),
			term:    36,
		},
		{
			name:    "first band does not start at zero",
			bands:   []Band{{Start: 12, End: 36, Value: 0.03}},
			onwards: floatPtr(0.05),
			term:    36,
		},
		{
			name:    "negative rate",
			bands:   []Band{{Start: 0, End: 36, Value: -0.01}},
			onwards: nil,
			term:    36,
		},
		{
			name:    "uncovered tail with no onwards rate",
			bands:   []Band{{Start: 0, End: 24, Value: 0.03}},
			onwards: nil,
			term:    36,
		},
		{
			name:    "empty band range",
			bands:   []Band{{Start: 0, End: 0, Value: 0.03}},
			onwards: floatPtr(0.05),
			term:    36,
		},
		{
			name:    "empty schedule with no onwards rate",
			bands:   nil,
			onwards: nil,
			term:    36,
		},
		{
			name:    "negative onwards rate",
			bands:   []Band{{Start: 0, End: 36, Value: 0.03}},
			onwards: floatPtr(-0.02),
			term:    36,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRateTable(tt.bands, tt.onwards, tt.term)
			var configuration *ConfigurationError
			if !errors.As(err, &configuration) {
				t.Errorf("NewRateTable() error = %v, expected ConfigurationError", err)
			}
		})
	}
}

func TestNewRateTableEmptyWithOnwards(t *testing.T) {
	policy, err := NewRateTable(nil, floatPtr(0.045), 360)
	if err != nil {
		t.Fatalf("NewRateTable() error = %v", err)
	}
	if got := policy.AnnualRateForPeriod(0); got != 0.045 {
		t.Errorf("AnnualRateForPeriod(0) = %v, expected 0.045", got)
	}
}
