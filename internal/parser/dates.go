package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Broker confirmations write dates as a three-letter month abbreviation
// followed by day and year, with spaces or dashes between the tokens and
// sometimes no separator before the month at all ("COM NPVJAN 16 26").
var dateTokenRe = regexp.MustCompile(`(?i)(JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)[-\s]?(\d{1,2})[-\s,]?\s*(\d{4}|\d{2})`)

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// normalizeDate converts month/day/year tokens to ISO YYYY-MM-DD. Two-digit
// years are interpreted as 2000+yy. Returns "" for tokens that do not form a
// plausible calendar date.
func normalizeDate(month, day, year string) string {
	m, ok := monthNumbers[strings.ToLower(month)]
	if !ok {
		return ""
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return ""
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return ""
	}
	if y < 100 {
		y += 2000
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// findDate returns the first month-token date in text, normalized to ISO
// form, or "" when none is present.
func findDate(text string) string {
	for _, m := range dateTokenRe.FindAllStringSubmatch(text, -1) {
		if iso := normalizeDate(m[1], m[2], m[3]); iso != "" {
			return iso
		}
	}
	return ""
}
