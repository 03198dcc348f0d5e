// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/worawit/housing-loan-planner/pkg/constants"
)

// DateTimeLayout is the format used for calendar period labels in configuration
// files and output.
const DateTimeLayout = constants.DateTimeLayout

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// PeriodLabel returns the calendar label for a 0-based period index relative
// to a start date, e.g. PeriodLabel("2026-01", 11) == "2026-12".
func PeriodLabel(startDate string, period int) (string, error) {
	return OffsetDate(startDate, DateTimeLayout, period)
}

// MonthsBetween returns the number of whole months from startDate to date,
// negative when date precedes startDate.
func MonthsBetween(startDate, date string) (int, error) {
	startT, err := time.Parse(DateTimeLayout, startDate)
	if err != nil {
		return 0, err
	}
	dateT, err := time.Parse(DateTimeLayout, date)
	if err != nil {
		return 0, err
	}
	return (dateT.Year()-startT.Year())*constants.MonthsPerYear + int(dateT.Month()) - int(startT.Month()), nil
}

// DateBeforeDate returns true if firstDate is strictly before secondDate.
func DateBeforeDate(firstDate string, secondDate string) (bool, error) {
	firstDateT, err := time.Parse(DateTimeLayout, firstDate)
	if err != nil {
		return false, err
	}
	secondDateT, err := time.Parse(DateTimeLayout, secondDate)
	if err != nil {
		return false, err
	}
	return firstDateT.Before(secondDateT), nil
}
