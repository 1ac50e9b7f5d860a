// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/example/easel/internal/models"
)

const rule = "────────────────────────────────────────────────────────────────"

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	warnText = color.New(color.FgYellow).SprintFunc()
)

// printSkipped tells the user how many records could not be read.
func printSkipped(out io.Writer, skipped []models.SkipDiagnostic, verbose bool) {
	if len(skipped) == 0 {
		return
	}
	noun := "records"
	if len(skipped) == 1 {
		noun = "record"
	}
	fmt.Fprintln(out, warnText(fmt.Sprintf("! %d %s skipped (unreadable or invalid)", len(skipped), noun)))
	if !verbose {
		return
	}
	for _, d := range skipped {
		where := d.Source
		if where == "" {
			where = d.RecordID
		}
		fmt.Fprintf(out, "  - %s: %s\n", where, d.Reason)
	}
}

// FormatCents renders cents as a decimal amount.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// ParseCents parses a decimal amount such as "49.99" or "50" into cents.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("price cannot be empty")
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if !allDigits(whole) || (hasFrac && (!allDigits(frac) || len(frac) > 2)) {
		return 0, fmt.Errorf("invalid price %q: expected an amount like 49.99", s)
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > models.MaxPriceCents/100 {
		return 0, fmt.Errorf("price %q is too large", s)
	}
	cents := units * 100
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		f, _ := strconv.ParseInt(frac, 10, 64)
		cents += f
	}
	if cents > models.MaxPriceCents {
		return 0, fmt.Errorf("price %q is too large", s)
	}
	return cents, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

func statusText(s models.CommissionStatus) string {
	switch s {
	case models.StatusCompleted:
		return color.New(color.FgGreen).Sprint(s)
	case models.StatusInProgress:
		return color.New(color.FgCyan).Sprint(s)
	default:
		return string(s)
	}
}
