package tmdb

import (
	"strconv"

	"github.com/amaumene/cineslime/internal/utils"
)

// PickBestByYear returns the first result released in year, falling back to the first
// result. It returns nil for an empty slice. A year of 0 always picks the first result.
func PickBestByYear(results []SearchResult, year int) *SearchResult {
	if len(results) == 0 {
		return nil
	}
	if year > 0 {
		want := strconv.Itoa(year)
		for i := range results {
			if utils.YearOf(results[i].Date()) == want {
				return &results[i]
			}
		}
	}
	return &results[0]
}
