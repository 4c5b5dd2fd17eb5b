package utils

import (
	"strconv"
	"strings"
)

// Truncate shortens s to at most n runes, appending "..." when it cut something
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}

// YearOf returns the year component of a catalog date ("2010-07-16" -> "2010"), or "" when
// the date does not start with a plausible four-digit year
func YearOf(date string) string {
	year, _, _ := strings.Cut(strings.TrimSpace(date), "-")
	if len(year) != 4 {
		return ""
	}
	for _, r := range year {
		if r < '0' || r > '9' {
			return ""
		}
	}
	if n, err := strconv.Atoi(year); err != nil || !PlausibleYear(n) {
		return ""
	}
	return year
}
