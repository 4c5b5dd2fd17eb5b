package utils

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	minPlausibleYear = 1870
	maxPlausibleYear = 2100
)

// ParsedCaption is the title and year read from a channel post caption
type ParsedCaption struct {
	Title   string
	Year    int
	Pattern string // name of the pattern that matched
}

// captionPattern extracts a title and year, reporting whether it matched
type captionPattern struct {
	name  string
	parse func(caption string) (string, string, bool)
}

var (
	// "Inception (2010)"
	titleYearRegex = regexp.MustCompile(`(.+?)\((\d{4})\)`)

	// "Pelicula: Inception\nAño: 2010"
	labeledTitleRegex = regexp.MustCompile(`(?i)Pel[ií]cula:\s*(.*?)(?:\n|A[nñ]o:|$)`)
	labeledYearRegex  = regexp.MustCompile(`(?i)A[nñ]o:\s*(\d{4})`)
)

// captionPatterns are tried in order; the first one that matches wins
var captionPatterns = []captionPattern{
	{
		name: "title_year",
		parse: func(caption string) (string, string, bool) {
			m := titleYearRegex.FindStringSubmatch(caption)
			if m == nil {
				return "", "", false
			}
			return m[1], m[2], true
		},
	},
	{
		name: "labeled",
		parse: func(caption string) (string, string, bool) {
			title := labeledTitleRegex.FindStringSubmatch(caption)
			year := labeledYearRegex.FindStringSubmatch(caption)
			if title == nil || year == nil {
				return "", "", false
			}
			return title[1], year[1], true
		},
	},
}

// ParseCaption reads (title, year) from a caption. It returns false when no pattern
// yields both a non-empty title and a plausible year.
func ParseCaption(caption string) (ParsedCaption, bool) {
	for _, pattern := range captionPatterns {
		rawTitle, rawYear, ok := pattern.parse(caption)
		if !ok {
			continue
		}

		title := strings.TrimSpace(rawTitle)
		year, err := strconv.Atoi(rawYear)
		if title == "" || err != nil || !PlausibleYear(year) {
			return ParsedCaption{}, false
		}

		return ParsedCaption{Title: title, Year: year, Pattern: pattern.name}, true
	}

	return ParsedCaption{}, false
}

// PlausibleYear reports whether year could be a release year
func PlausibleYear(year int) bool {
	return year >= minPlausibleYear && year <= maxPlausibleYear
}
