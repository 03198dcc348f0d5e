package loans

import "fmt"

// ConfigurationError reports a malformed rate, payment, or top-up schedule.
// It is returned when a policy is constructed, never mid-simulation.
type ConfigurationError struct {
	Field  string
	Period int // offending period index, -1 when not tied to a period
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Period >= 0 {
		return fmt.Sprintf("invalid %s at period %d: %s", e.Field, e.Period, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func configErr(field string, period int, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Field: field, Period: period, Reason: fmt.Sprintf(format, args...)}
}
