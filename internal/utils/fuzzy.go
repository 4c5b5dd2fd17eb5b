package utils

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/amaumene/cineslime/internal/models"
)

const (
	// DefaultFuzzyThreshold accepts matches scoring at or below it (0 = exact, 1 = unrelated)
	DefaultFuzzyThreshold = 0.4

	// Queries shorter than this are only compared against whole titles
	minPartialRunes = 3
	// Offset at which a partial match has lost a full point of score
	partialDistance = 100.0
	// Each title rune left outside a partial match costs 1/coveragePenalty
	coveragePenalty = 1000.0
)

// FuzzyMatch is an archived record ranked against a query
type FuzzyMatch struct {
	Media *models.Media
	Score float64
}

// FuzzyMatcher ranks archived records by approximate title similarity
type FuzzyMatcher struct {
	threshold float64
}

// NewFuzzyMatcher creates a matcher; a non-positive threshold uses the default
func NewFuzzyMatcher(threshold float64) *FuzzyMatcher {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	return &FuzzyMatcher{threshold: threshold}
}

// Threshold returns the acceptance threshold
func (m *FuzzyMatcher) Threshold() float64 {
	return m.threshold
}

// Match returns records whose title or original title is within the threshold, best first.
// Records must already be grouped by catalog id.
func (m *FuzzyMatcher) Match(query string, corpus []*models.Media) []FuzzyMatch {
	if len(corpus) == 0 {
		return nil
	}

	folded := FoldTitle(query)
	if folded == "" {
		return nil
	}

	var matches []FuzzyMatch
	for _, media := range corpus {
		if media == nil {
			continue
		}
		score := titleScore(folded, FoldTitle(media.Title))
		if media.OriginalTitle != "" {
			score = min(score, titleScore(folded, FoldTitle(media.OriginalTitle)))
		}
		if score <= m.threshold {
			matches = append(matches, FuzzyMatch{Media: media, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score < matches[j].Score
	})

	return matches
}

// TitleScore compares two raw titles on the matcher's 0..1 scale
func TitleScore(query, title string) float64 {
	return titleScore(FoldTitle(query), FoldTitle(title))
}

// titleScore expects folded input. The score is the better of the whole-title edit
// distance and the best window of the title aligned to the query's length.
func titleScore(query, title string) float64 {
	if query == "" || title == "" {
		return 1.0
	}
	if query == title {
		return 0.0
	}

	q := []rune(query)
	t := []rune(title)

	best := float64(levenshtein.ComputeDistance(query, title)) / float64(max(len(q), len(t)))

	if len(q) >= minPartialRunes && len(q) < len(t) {
		uncovered := float64(len(t)-len(q)) / coveragePenalty
		for start := 0; start+len(q) <= len(t); start++ {
			window := string(t[start : start+len(q)])
			score := float64(levenshtein.ComputeDistance(query, window))/float64(len(q)) +
				float64(start)/partialDistance + uncovered
			if score < best {
				best = score
			}
		}
	}

	return min(best, 1.0)
}

// FoldTitle lowercases, strips diacritics and collapses punctuation to single spaces.
// Arbitrary user input (control characters, emoji, invalid UTF-8) folds safely.
func FoldTitle(s string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		stripped = s
	}
	stripped = cases.Fold().String(stripped)

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
