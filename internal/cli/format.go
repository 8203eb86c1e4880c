// Package cli provides the command-line interface for the trade journal.
package cli

import (
	"fmt"
	"strings"
	"time"

	"trade-journal/internal/models"
)

// FormatUSD formats a dollar amount with comma grouping.
func FormatUSD(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	intPart := groupThousands(parts[0])

	result := "$" + intPart + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	return groupThousands(s[:n-3]) + "," + s[n-3:]
}

// FormatMaxValue renders a bounded figure as currency and the unbounded
// sentinel as text.
func FormatMaxValue(v models.MaxValue) string {
	if v.Unbounded {
		return "unbounded"
	}
	return FormatUSD(v.Value)
}

// FormatRiskReward formats a risk-reward ratio.
func FormatRiskReward(rr float64) string {
	return fmt.Sprintf("%.2f", rr)
}

// FormatProbability formats a probability as a percentage, or a dash when
// the estimate is absent.
func FormatProbability(p *float64) string {
	if p == nil {
		return "—"
	}
	return fmt.Sprintf("%.0f%%", *p*100)
}

// FormatStrike formats an optional strike.
func FormatStrike(strike *float64) string {
	if strike == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *strike)
}

// FormatDate formats a timestamp for display.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
