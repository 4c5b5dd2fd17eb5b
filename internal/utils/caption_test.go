package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCaption(t *testing.T) {
	tests := []struct {
		name        string
		caption     string
		wantOK      bool
		wantTitle   string
		wantYear    int
		wantPattern string
	}{
		{
			name:        "title with year in parentheses",
			caption:     "Inception (2010)",
			wantOK:      true,
			wantTitle:   "Inception",
			wantYear:    2010,
			wantPattern: "title_year",
		},
		{
			name:        "labeled caption",
			caption:     "Pelicula: Inception\nAño: 2010",
			wantOK:      true,
			wantTitle:   "Inception",
			wantYear:    2010,
			wantPattern: "labeled",
		},
		{
			name:        "labeled caption case insensitive and accented",
			caption:     "PELÍCULA: El Laberinto del Fauno\nAÑO: 2006\nCalidad: 1080p",
			wantOK:      true,
			wantTitle:   "El Laberinto del Fauno",
			wantYear:    2006,
			wantPattern: "labeled",
		},
		{
			name:        "labeled caption without enye",
			caption:     "pelicula: Alien ano: 1979",
			wantOK:      true,
			wantTitle:   "Alien",
			wantYear:    1979,
			wantPattern: "labeled",
		},
		{
			name:        "labeled caption on a single line",
			caption:     "Pelicula: Dune Año: 2021",
			wantOK:      true,
			wantTitle:   "Dune",
			wantYear:    2021,
			wantPattern: "labeled",
		},
		{
			name:        "first pattern wins over the labeled one",
			caption:     "Pelicula: Inception (2010)\nAño: 2011",
			wantOK:      true,
			wantTitle:   "Pelicula: Inception",
			wantYear:    2010,
			wantPattern: "title_year",
		},
		{
			name:        "extra text after year",
			caption:     "Matrix (1999) 1080p Latino",
			wantOK:      true,
			wantTitle:   "Matrix",
			wantYear:    1999,
			wantPattern: "title_year",
		},
		{name: "no year", caption: "Inception", wantOK: false},
		{name: "empty caption", caption: "", wantOK: false},
		{name: "labeled without year", caption: "Pelicula: Inception", wantOK: false},
		{name: "year only", caption: "(2010)", wantOK: false},
		{name: "implausible year", caption: "Inception (0001)", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := ParseCaption(tt.caption)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantTitle, parsed.Title)
			assert.Equal(t, tt.wantYear, parsed.Year)
			assert.Equal(t, tt.wantPattern, parsed.Pattern)
		})
	}
}

func TestParseCaptionPatternsAgree(t *testing.T) {
	a, ok := ParseCaption("Inception (2010)")
	require.True(t, ok)
	b, ok := ParseCaption("Pelicula: Inception\nAño: 2010")
	require.True(t, ok)

	assert.Equal(t, a.Title, b.Title)
	assert.Equal(t, a.Year, b.Year)
}
