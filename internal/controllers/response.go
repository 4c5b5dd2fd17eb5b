package controllers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/amaumene/cineslime/internal/models"
	"github.com/amaumene/cineslime/internal/services/tmdb"
	"github.com/amaumene/cineslime/internal/services/yts"
	"github.com/amaumene/cineslime/internal/utils"
)

const (
	// Synopsis length on discovery and availability cards
	cardOverviewRunes = 300
	// Synopsis length on the details card
	detailsOverviewRunes = 500
	detailsCastSize      = 5
)

// Outcome is the terminal state of a resolution
type Outcome string

const (
	OutcomeLocal        Outcome = "local"         // archived and enriched from the catalog
	OutcomeLocalMinimal Outcome = "local_minimal" // archived, enrichment failed
	OutcomeLocalBare    Outcome = "local_bare"    // archived without a catalog id
	OutcomeDiscovery    Outcome = "discovery"     // not archived, found in the catalog
	OutcomeNotFound     Outcome = "not_found"
	OutcomeError        Outcome = "error"
)

// IsLocal reports whether the outcome points at an archived file
func (o Outcome) IsLocal() bool {
	return o == OutcomeLocal || o == OutcomeLocalMinimal || o == OutcomeLocalBare
}

// Action is a follow-up offered with a response
type Action string

const (
	ActionSend     Action = "send"
	ActionRequest  Action = "request"
	ActionFavorite Action = "favorite"
)

// Item is catalog metadata shaped for presentation
type Item struct {
	TMDBID        int64
	Kind          models.MediaType
	Title         string
	OriginalTitle string
	Year          string
	Rating        float64
	Overview      string
	PosterURL     string

	// Filled from a details fetch only
	Genres     []string
	Runtime    int
	Seasons    int
	Directors  []string // director of a movie, creators of a show
	Cast       []string
	TrailerURL string
	Providers  *tmdb.Providers
}

// TorrentLink is one quality variant on the torrent index
type TorrentLink struct {
	Quality string
	URL     string
}

// Torrent is the external source block attached to movie cards
type Torrent struct {
	Title string
	Year  int
	URL   string
	Links []TorrentLink
}

// Qualities lists the available quality variants
func (t *Torrent) Qualities() []string {
	qualities := make([]string, 0, len(t.Links))
	for _, l := range t.Links {
		qualities = append(qualities, l.Quality)
	}
	return qualities
}

// StreamLink is an embed player for a catalog item
type StreamLink struct {
	Name string
	URL  string
}

// SearchResponse is everything the transport needs to render a resolution
type SearchResponse struct {
	Outcome  Outcome
	Query    string
	Detailed bool          // long details card rather than a short card
	Local    *models.Media // set on local outcomes
	Item     *Item
	Torrent  *Torrent
	Streams  []StreamLink
	Advisory bool // third-party players carry ads
	Actions  []Action
}

// HasAction reports whether action is offered
func (r *SearchResponse) HasAction(action Action) bool {
	for _, a := range r.Actions {
		if a == action {
			return true
		}
	}
	return false
}

func itemFromResult(r *tmdb.SearchResult, overviewRunes int) *Item {
	return &Item{
		TMDBID:        r.ID,
		Kind:          r.Kind(),
		Title:         r.DisplayTitle(),
		OriginalTitle: r.DisplayOriginalTitle(),
		Year:          utils.YearOf(r.Date()),
		Rating:        r.VoteAverage,
		Overview:      utils.Truncate(r.Overview, overviewRunes),
		PosterURL:     r.PosterURL(),
	}
}

func itemFromDetails(d *tmdb.Details, overviewRunes int, region string) *Item {
	item := itemFromResult(&d.SearchResult, overviewRunes)

	for _, g := range d.Genres {
		item.Genres = append(item.Genres, g.Name)
	}
	item.Runtime = d.Runtime
	item.Seasons = d.NumberOfSeasons
	item.Cast = d.TopCast(detailsCastSize)
	item.TrailerURL = d.TrailerURL()
	item.Providers = tmdb.FormatProviders(d, region)

	if item.Kind == models.MediaTypeMovie {
		if director := d.Director(); director != "" {
			item.Directors = []string{director}
		}
	} else {
		for _, p := range d.CreatedBy {
			item.Directors = append(item.Directors, p.Name)
		}
	}

	return item
}

func torrentFromMovie(m *yts.Movie) *Torrent {
	if m == nil {
		return nil
	}
	t := &Torrent{Title: m.Title, Year: m.Year, URL: m.URL}
	for _, tr := range m.Torrents {
		t.Links = append(t.Links, TorrentLink{Quality: tr.Quality, URL: tr.URL})
	}
	return t
}

// streamLinks builds one embed URL per mirror, named after the mirror host
func streamLinks(mirrors []string, kind models.MediaType, tmdbID int64) []StreamLink {
	links := make([]StreamLink, 0, len(mirrors))
	for _, mirror := range mirrors {
		name := mirror
		if u, err := url.Parse(mirror); err == nil && u.Host != "" {
			name = strings.TrimPrefix(u.Host, "www.")
		}
		links = append(links, StreamLink{
			Name: name,
			URL:  fmt.Sprintf("%s/embed/%s/%d", mirror, kind, tmdbID),
		})
	}
	return links
}

// kindOf defaults records archived without a kind to movie
func kindOf(media *models.Media) models.MediaType {
	if media.MediaType == "" {
		return models.MediaTypeMovie
	}
	return media.MediaType
}
