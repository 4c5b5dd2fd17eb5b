package tmdb

import (
	"fmt"

	"github.com/amaumene/cineslime/internal/models"
)

const imageBaseURL = "https://image.tmdb.org/t/p/w500"

// SearchResult is one movie or show from a search or trending listing
type SearchResult struct {
	ID            int64   `json:"id"`
	MediaType     string  `json:"media_type"`
	Title         string  `json:"title"`          // movies
	Name          string  `json:"name"`           // shows
	OriginalTitle string  `json:"original_title"` // movies
	OriginalName  string  `json:"original_name"`  // shows
	ReleaseDate   string  `json:"release_date"`   // movies
	FirstAirDate  string  `json:"first_air_date"` // shows
	PosterPath    string  `json:"poster_path"`
	VoteAverage   float64 `json:"vote_average"`
	Overview      string  `json:"overview"`
}

// searchResponse is the paged envelope of search and trending endpoints
type searchResponse struct {
	Page    int            `json:"page"`
	Results []SearchResult `json:"results"`
}

// DisplayTitle returns the localized title of a movie or show
func (r *SearchResult) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// DisplayOriginalTitle returns the original-language title
func (r *SearchResult) DisplayOriginalTitle() string {
	if r.OriginalTitle != "" {
		return r.OriginalTitle
	}
	return r.OriginalName
}

// Date returns the release date of a movie or first air date of a show
func (r *SearchResult) Date() string {
	if r.ReleaseDate != "" {
		return r.ReleaseDate
	}
	return r.FirstAirDate
}

// Kind maps the catalog media type, defaulting to movie
func (r *SearchResult) Kind() models.MediaType {
	if kind, ok := models.ParseMediaType(r.MediaType); ok {
		return kind
	}
	return models.MediaTypeMovie
}

// PosterURL returns the w500 poster URL, or "" without a poster
func (r *SearchResult) PosterURL() string {
	return PosterURL(r.PosterPath)
}

// PosterURL builds a w500 image URL from a poster path
func PosterURL(path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + path
}

// Genre of a movie or show
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Person is a creator of a show
type Person struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CastMember of a movie or show
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

// CrewMember of a movie or show
type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Credits appended to a details response
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Provider is a streaming, rental or purchase service
type Provider struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
}

// ProviderRegion lists the providers available in one country
type ProviderRegion struct {
	Link     string     `json:"link"`
	Flatrate []Provider `json:"flatrate"`
	Buy      []Provider `json:"buy"`
	Rent     []Provider `json:"rent"`
}

// WatchProviders appended to a details response, keyed by ISO 3166-1 country
type WatchProviders struct {
	Results map[string]ProviderRegion `json:"results"`
}

// Video is a trailer, teaser or clip
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Videos appended to a details response
type Videos struct {
	Results []Video `json:"results"`
}

// Details is the extended record of one movie or show
type Details struct {
	SearchResult
	Genres          []Genre        `json:"genres"`
	Runtime         int            `json:"runtime"`            // movies, minutes
	NumberOfSeasons int            `json:"number_of_seasons"`  // shows
	CreatedBy       []Person       `json:"created_by"`         // shows
	Credits         Credits        `json:"credits"`
	WatchProviders  WatchProviders `json:"watch/providers"`
	Videos          Videos         `json:"videos"`
}

// Director returns the movie director, or "" when credits carry none
func (d *Details) Director() string {
	for _, member := range d.Credits.Crew {
		if member.Job == "Director" {
			return member.Name
		}
	}
	return ""
}

// TopCast returns the first n cast names in billing order
func (d *Details) TopCast(n int) []string {
	names := make([]string, 0, n)
	for _, member := range d.Credits.Cast {
		if len(names) == n {
			break
		}
		names = append(names, member.Name)
	}
	return names
}

// TrailerURL returns the first YouTube trailer, or "" when there is none
func (d *Details) TrailerURL() string {
	for _, video := range d.Videos.Results {
		if video.Site == "YouTube" && video.Type == "Trailer" && video.Key != "" {
			return fmt.Sprintf("https://www.youtube.com/watch?v=%s", video.Key)
		}
	}
	return ""
}

// Providers is the watch-provider summary of one region
type Providers struct {
	Link     string
	Flatrate []string
	Buy      []string
	Rent     []string
}

// FormatProviders extracts the providers of a region, or nil when the region has none
func FormatProviders(details *Details, region string) *Providers {
	if details == nil || details.WatchProviders.Results == nil {
		return nil
	}
	data, ok := details.WatchProviders.Results[region]
	if !ok {
		return nil
	}

	names := func(providers []Provider) []string {
		out := make([]string, 0, len(providers))
		for _, p := range providers {
			out = append(out, p.ProviderName)
		}
		return out
	}

	return &Providers{
		Link:     data.Link,
		Flatrate: names(data.Flatrate),
		Buy:      names(data.Buy),
		Rent:     names(data.Rent),
	}
}
