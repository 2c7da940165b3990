package datasets

import (
	"math"
	"strconv"
	"strings"
)

// parseDecimal parses a portal number that may use a decimal comma.
func parseDecimal(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}

// parsePercent parses a percentage-like field. The portal reports "Unknown"
// for clients without usage data; that is treated as 0. A trailing "%" is
// stripped and a decimal comma accepted.
func parsePercent(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "Unknown" {
		return 0, nil
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	return parseDecimal(s)
}

// ratio returns numerator/denominator as a percentage rounded to one
// decimal. A zero denominator yields 0 rather than Inf/NaN, which serialize
// uselessly into CSV.
func ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return math.Round(numerator/denominator*100*10) / 10
}

// formatDecimal renders a value with one decimal place, matching the ratio
// precision.
func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
