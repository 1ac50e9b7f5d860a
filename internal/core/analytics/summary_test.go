package analytics

import (
	"testing"
	"time"

	"github.com/example/easel/internal/models"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarize(t *testing.T) {
	commissions := []models.Commission{
		{ID: "a", PriceCents: 10000, PaymentStatus: models.PaymentFullyPaid, Status: models.StatusCompleted, Date: day(1), OriginalDate: day(1), CompletedDate: day(11)},
		{ID: "b", PriceCents: 5001, PaymentStatus: models.PaymentHalfPaid, Status: models.StatusInProgress, Date: day(2)},
		{ID: "c", PriceCents: 3000, PaymentStatus: models.PaymentNotPaid, Status: models.StatusPending, Date: day(3)},
		{ID: "d", PriceCents: 2000, PaymentStatus: models.PaymentFullyPaid, Status: models.StatusCompleted, Date: day(5), OriginalDate: day(5), CompletedDate: day(10)},
	}

	s := Summarize(commissions)

	if s.TotalCommissions != 4 || s.Pending != 1 || s.InProgress != 1 || s.Completed != 2 {
		t.Errorf("counts = %+v", s)
	}
	if s.TotalEarningsCents != 10000+2500+2000 {
		t.Errorf("TotalEarningsCents = %d", s.TotalEarningsCents)
	}
	if s.PotentialCents != 20001 {
		t.Errorf("PotentialCents = %d", s.PotentialCents)
	}
	if s.AveragePriceCents != 5000 {
		t.Errorf("AveragePriceCents = %d", s.AveragePriceCents)
	}
	if s.AverageDaysToComplete != 7.5 {
		t.Errorf("AverageDaysToComplete = %v, want 7.5", s.AverageDaysToComplete)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero value", s)
	}
}

func TestDaysToComplete(t *testing.T) {
	tests := []struct {
		name   string
		c      models.Commission
		want   float64
		wantOK bool
	}{
		{"completed", models.Commission{Status: models.StatusCompleted, OriginalDate: day(1), CompletedDate: day(3)}, 2, true},
		{"not completed", models.Commission{Status: models.StatusPending, OriginalDate: day(1), CompletedDate: day(3)}, 0, false},
		{"missing dates", models.Commission{Status: models.StatusCompleted}, 0, false},
		{"inverted dates", models.Commission{Status: models.StatusCompleted, OriginalDate: day(5), CompletedDate: day(3)}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DaysToComplete(tt.c)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("DaysToComplete() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMonthlyEarnings(t *testing.T) {
	commissions := []models.Commission{
		{PriceCents: 1000, PaymentStatus: models.PaymentFullyPaid, Status: models.StatusCompleted, Date: day(1), CompletedDate: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)},
		{PriceCents: 400, PaymentStatus: models.PaymentHalfPaid, Status: models.StatusPending, Date: day(9)},
		{PriceCents: 999, PaymentStatus: models.PaymentNotPaid, Status: models.StatusPending, Date: day(9)},
	}

	got := MonthlyEarnings(commissions)

	if len(got) != 2 || got["2024-04"] != 1000 || got["2024-03"] != 200 {
		t.Errorf("MonthlyEarnings() = %v", got)
	}
}
