package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickBestByYear(t *testing.T) {
	results := []SearchResult{
		{ID: 1, Title: "Dune", ReleaseDate: "1984-12-14"},
		{ID: 2, Title: "Dune", ReleaseDate: "2021-09-15"},
		{ID: 3, Name: "Dune", FirstAirDate: "2000-12-03"},
		{ID: 4, Title: "Dune", ReleaseDate: ""},
	}

	tests := []struct {
		name   string
		year   int
		wantID int64
	}{
		{name: "movie release date", year: 2021, wantID: 2},
		{name: "show first air date", year: 2000, wantID: 3},
		{name: "no year match falls back to first", year: 1999, wantID: 1},
		{name: "zero year picks first", year: 0, wantID: 1},
		{name: "three digit year does not prefix match", year: 202, wantID: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PickBestByYear(results, tt.year)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestPickBestByYearEmpty(t *testing.T) {
	assert.Nil(t, PickBestByYear(nil, 2010))
	assert.Nil(t, PickBestByYear([]SearchResult{}, 2010))
}

func TestPickBestByYearReturnsSliceElement(t *testing.T) {
	results := []SearchResult{{ID: 1}, {ID: 2, ReleaseDate: "2010-07-16"}}
	got := PickBestByYear(results, 2010)
	assert.Same(t, &results[1], got)
}
