// Package analytics computes business figures over a commission set.
package analytics

import (
	"time"

	"github.com/example/easel/internal/models"
)

// Summary holds the aggregate figures shown on the dashboard.
type Summary struct {
	TotalCommissions int `json:"total_commissions"`
	Pending          int `json:"pending"`
	InProgress       int `json:"in_progress"`
	Completed        int `json:"completed"`

	// Money actually received: fully paid commissions plus half of half-paid ones.
	TotalEarningsCents int64 `json:"total_earnings_cents"`
	// Sum of all commission prices regardless of payment.
	PotentialCents    int64 `json:"potential_cents"`
	AveragePriceCents int64 `json:"average_price_cents"`

	// Derived from original/completed dates, which are approximate for
	// records loaded from storage.
	AverageDaysToComplete float64 `json:"average_days_to_complete"`
}

// Summarize aggregates the given commissions.
func Summarize(commissions []models.Commission) Summary {
	var s Summary
	var completionDays float64
	var timed int

	for _, c := range commissions {
		s.TotalCommissions++
		s.PotentialCents += c.PriceCents
		s.TotalEarningsCents += EarnedCents(c)

		switch c.Status {
		case models.StatusPending:
			s.Pending++
		case models.StatusInProgress:
			s.InProgress++
		case models.StatusCompleted:
			s.Completed++
			if d, ok := DaysToComplete(c); ok {
				completionDays += d
				timed++
			}
		}
	}

	if s.TotalCommissions > 0 {
		s.AveragePriceCents = s.PotentialCents / int64(s.TotalCommissions)
	}
	if timed > 0 {
		s.AverageDaysToComplete = completionDays / float64(timed)
	}
	return s
}

// EarnedCents returns how much of a commission's price has been received.
func EarnedCents(c models.Commission) int64 {
	switch c.PaymentStatus {
	case models.PaymentFullyPaid:
		return c.PriceCents
	case models.PaymentHalfPaid:
		return c.PriceCents / 2
	default:
		return 0
	}
}

// DaysToComplete returns the days between the original and completed dates.
func DaysToComplete(c models.Commission) (float64, bool) {
	if !c.IsCompleted() || c.OriginalDate.IsZero() || c.CompletedDate.IsZero() {
		return 0, false
	}
	d := c.CompletedDate.Sub(c.OriginalDate)
	if d < 0 {
		return 0, false
	}
	return d.Hours() / 24, true
}

// MonthlyEarnings buckets earned cents by the month commissions were
// completed, or dated when not completed. Keys are "2006-01".
func MonthlyEarnings(commissions []models.Commission) map[string]int64 {
	out := make(map[string]int64)
	for _, c := range commissions {
		earned := EarnedCents(c)
		if earned == 0 {
			continue
		}
		at := c.Date
		if c.IsCompleted() && !c.CompletedDate.IsZero() {
			at = c.CompletedDate
		}
		out[at.In(time.UTC).Format("2006-01")] += earned
	}
	return out
}
