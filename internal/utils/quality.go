package utils

import (
	"strings"

	"github.com/amaumene/cineslime/internal/models"
)

// qualityTags are checked in order, best first
var qualityTags = []struct {
	tag   string
	terms []string
}{
	{tag: "4K", terms: []string{"2160p", "4k", "uhd"}},
	{tag: "1080p", terms: []string{"1080p", "1080"}},
	{tag: "720p", terms: []string{"720p"}},
}

// DetermineQuality extracts the resolution tag from a caption, defaulting to HD
func DetermineQuality(caption string) string {
	captionLower := strings.ToLower(caption)

	for _, q := range qualityTags {
		for _, term := range q.terms {
			if strings.Contains(captionLower, term) {
				return q.tag
			}
		}
	}

	return models.DefaultQuality
}

var languageTags = []struct {
	tag   string
	terms []string
}{
	{tag: "Latino", terms: []string{"latino", "latam"}},
	{tag: "Castellano", terms: []string{"castellano", "españa"}},
	{tag: "Subtitulado", terms: []string{"subtitulado", "sub esp", "vose"}},
}

// DetectLanguage extracts the audio language tag from a caption; "" when absent
func DetectLanguage(caption string) string {
	captionLower := strings.ToLower(caption)

	for _, l := range languageTags {
		for _, term := range l.terms {
			if strings.Contains(captionLower, term) {
				return l.tag
			}
		}
	}

	return ""
}
