package loans

// Band associates a contiguous half-open period range [Start, End) with a
// value (an annual rate or a payment amount).
type Band struct {
	Start int     // first period covered, inclusive
	End   int     // one past the last period covered
	Value float64
}

// Contains reports whether the band covers the given period index.
func (b Band) Contains(period int) bool {
	return period >= b.Start && period < b.End
}

// validateBands enforces the schedule invariant: bands start at period 0, are
// non-overlapping with no gaps, carry non-negative values, and together with
// an optional onwards value cover every period up to termPeriods.
func validateBands(field string, bands []Band, hasOnwards bool, termPeriods int) error {
	if len(bands) == 0 {
		if !hasOnwards {
			return configErr(field, -1, "no %s declared and no onwards value to fall back on", field)
		}
		return nil
	}

	if bands[0].Start != 0 {
		return configErr(field, 0, "first band starts at period %d, leaving periods before it uncovered", bands[0].Start)
	}
	for i, band := range bands {
		if band.End <= band.Start {
			return configErr(field, band.Start, "band range [%d, %d) is empty", band.Start, band.End)
		}
		if band.Value < 0 {
			return configErr(field, band.Start, "value %.4f is negative", band.Value)
		}
		if i > 0 {
			previous := bands[i-1]
			if band.Start > previous.End {
				return configErr(field, previous.End, "gap between periods %d and %d", previous.End, band.Start)
			}
			if band.Start < previous.End {
				return configErr(field, band.Start, "band starting at period %d overlaps the previous band", band.Start)
			}
		}
	}

	if !hasOnwards && bands[len(bands)-1].End < termPeriods {
		return configErr(field, bands[len(bands)-1].End,
			"periods %d through %d are uncovered and no onwards value is declared",
			bands[len(bands)-1].End, termPeriods-1)
	}
	return nil
}

// lookupBand resolves the value for a period. Periods beyond the declared
// bands use the onwards value; when no onwards value exists the last band is
// reused (only reachable past the term under the iteration cap).
func lookupBand(bands []Band, onwards float64, hasOnwards bool, period int) float64 {
	for _, band := range bands {
		if band.Contains(period) {
			return band.Value
		}
	}
	if hasOnwards {
		return onwards
	}
	return bands[len(bands)-1].Value
}
