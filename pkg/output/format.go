// Package output provides utilities for formatting and displaying schedule
// results.
package output

import (
	"fmt"
	"io"

	"github.com/worawit/housing-loan-planner/internal/schedule"
	"github.com/worawit/housing-loan-planner/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable summary
// per scenario, optionally followed by the full period table.
func PrettyFormat(w io.Writer, results []schedule.Result, showSchedule bool) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Schedule.Name)
		summary := result.Summary
		if summary.Incomplete {
			last := result.Schedule.Records[len(result.Schedule.Records)-1]
			_, _ = p.Fprintf(w, "Loan does NOT pay off within the simulated %d periods; %.2f remains\n",
				len(result.Schedule.Records), last.ClosingBalance)
		} else {
			_, _ = p.Fprintf(w, "Months to payoff   | %d (%s)\n", summary.MonthsToPayoff, summary.PayoffDate)
		}
		_, _ = p.Fprintf(w, "Total interest     | %.2f\n", summary.TotalInterest)
		_, _ = p.Fprintf(w, "Total principal    | %.2f\n", summary.TotalPrincipal)
		if mathutil.IsPositive(summary.TotalTopUp) {
			_, _ = p.Fprintf(w, "Total top-ups      | %.2f\n", summary.TotalTopUp)
		}
		_, _ = p.Fprintf(w, "Total paid         | %.2f\n", summary.TotalPaid)
		_, _ = p.Fprintf(w, "Effective rate     | %.2f%%\n", summary.EffectiveRatePercent)

		if showSchedule {
			fmt.Fprintf(w, "\nPeriod | Date    | Opening       | Interest    | Principal   | Top-up      | Closing\n")
			fmt.Fprintf(w, "______ | ____    | _______       | ________    | _________   | ______      | _______\n")
			for _, record := range result.Schedule.Records {
				_, _ = p.Fprintf(w, "%6d | %s | %.2f | %.2f | %.2f | %.2f | %.2f\n",
					record.Period, record.Date, record.OpeningBalance, record.Interest,
					record.Principal, record.TopUp, record.ClosingBalance)
			}
		}
		if i < len(results)-1 {
			fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat writes one row per simulated period in comma-separated value
// format, all scenarios concatenated.
func CsvFormat(w io.Writer, results []schedule.Result) {
	fmt.Fprintf(w, `"scenario","period","date","openingBalance","annualRate","scheduledPayment","interest","principal","topUp","closingBalance"`)
	fmt.Fprintf(w, "\n")
	for _, result := range results {
		for _, record := range result.Schedule.Records {
			fmt.Fprintf(w, `"%s","%d","%s","%.2f","%.6f","%.2f","%.2f","%.2f","%.2f","%.2f"`,
				result.Schedule.Name, record.Period, record.Date, record.OpeningBalance,
				record.AnnualRate, record.ScheduledPayment, record.Interest,
				record.Principal, record.TopUp, record.ClosingBalance)
			fmt.Fprintf(w, "\n")
		}
	}
}
