package controllers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/cineslime/internal/models"
	"github.com/amaumene/cineslime/internal/services/tmdb"
	"github.com/amaumene/cineslime/internal/services/yts"
)

type searchFixture struct {
	catalog  *fakeCatalog
	torrents *fakeTorrents
	archive  *fakeArchive
	ctrl     *SearchController
}

func newSearchFixture(medias ...*models.Media) *searchFixture {
	f := &searchFixture{
		catalog:  newFakeCatalog(),
		torrents: &fakeTorrents{},
		archive:  &fakeArchive{medias: medias},
	}
	f.ctrl = NewSearchController(testConfig(), f.archive, f.catalog, f.torrents, quietLogger())
	return f
}

func TestResolveLocalHitSkipsCatalogSearch(t *testing.T) {
	f := newSearchFixture(&models.Media{ID: 7, Title: "Inception", TMDBID: int64Ptr(27205), MediaType: models.MediaTypeMovie, FileID: "f1"})
	f.catalog.details[27205] = movieDetails(27205, "Origen", "2010-07-15")
	f.catalog.search["Inceptoin"] = []tmdb.SearchResult{movieResult(1, "Other", "2000-01-01")}

	resp := f.ctrl.Resolve(context.Background(), "Inceptoin")

	assert.Equal(t, OutcomeLocal, resp.Outcome)
	require.NotNil(t, resp.Local)
	assert.Equal(t, uint(7), resp.Local.ID)
	require.NotNil(t, resp.Item)
	assert.Equal(t, "Origen", resp.Item.Title)
	assert.True(t, resp.HasAction(ActionSend))

	search, _ := f.catalog.calls()
	assert.Zero(t, search)
	assert.Zero(t, f.torrents.calls())
}

func TestResolveLocalEnrichmentFailureDegrades(t *testing.T) {
	f := newSearchFixture(&models.Media{ID: 3, Title: "Inception", TMDBID: int64Ptr(27205), FileID: "f1"})

	resp := f.ctrl.Resolve(context.Background(), "Inception")

	assert.Equal(t, OutcomeLocalMinimal, resp.Outcome)
	require.NotNil(t, resp.Local)
	assert.Equal(t, "Inception", resp.Local.Title)
	assert.Nil(t, resp.Item)
	assert.True(t, resp.HasAction(ActionSend))

	search, details := f.catalog.calls()
	assert.Zero(t, search)
	assert.Equal(t, 1, details)
}

func TestResolveLocalWithoutCatalogID(t *testing.T) {
	f := newSearchFixture(&models.Media{ID: 9, Title: "Home Movie", FileID: "f1"})

	resp := f.ctrl.Resolve(context.Background(), "home movie")

	assert.Equal(t, OutcomeLocalBare, resp.Outcome)
	assert.Equal(t, uint(9), resp.Local.ID)
	search, details := f.catalog.calls()
	assert.Zero(t, search)
	assert.Zero(t, details)
}

func TestResolveNotFound(t *testing.T) {
	f := newSearchFixture()

	resp := f.ctrl.Resolve(context.Background(), "Xyzzy Quux")

	assert.Equal(t, OutcomeNotFound, resp.Outcome)
	assert.Equal(t, "Xyzzy Quux", resp.Query)
	search, _ := f.catalog.calls()
	assert.Equal(t, 1, search)
	assert.Zero(t, f.torrents.calls())
}

func TestResolveEmptyQuery(t *testing.T) {
	f := newSearchFixture()
	assert.Equal(t, OutcomeNotFound, f.ctrl.Resolve(context.Background(), "   ").Outcome)
	search, _ := f.catalog.calls()
	assert.Zero(t, search)
}

func TestResolveDiscoveryMovie(t *testing.T) {
	f := newSearchFixture(&models.Media{ID: 1, Title: "Interstellar", TMDBID: int64Ptr(157336), FileID: "f1"})
	f.catalog.search["dune"] = []tmdb.SearchResult{
		movieResult(438631, "Dune", "2021-09-15"),
		movieResult(841, "Dune", "1984-12-14"),
	}
	details := movieDetails(438631, "Dune", "2021-09-15")
	details.VoteAverage = 7.8
	details.Overview = strings.Repeat("á", 400)
	details.Genres = []tmdb.Genre{{Name: "Ciencia ficción"}}
	f.catalog.details[438631] = details
	f.torrents.movie = &yts.Movie{
		Title: "Dune", Year: 2021, URL: "https://yts.mx/movies/dune-2021",
		Torrents: []yts.Torrent{{Quality: "720p", URL: "a"}, {Quality: "2160p", URL: "b"}},
	}

	resp := f.ctrl.Resolve(context.Background(), "dune")

	assert.Equal(t, OutcomeDiscovery, resp.Outcome)
	assert.Equal(t, "dune", resp.Query)
	require.NotNil(t, resp.Item)
	assert.Equal(t, int64(438631), resp.Item.TMDBID)
	assert.Equal(t, "2021", resp.Item.Year)
	assert.InDelta(t, 7.8, resp.Item.Rating, 1e-9)
	assert.Equal(t, []string{"Ciencia ficción"}, resp.Item.Genres)
	assert.Equal(t, 303, len([]rune(resp.Item.Overview)))
	assert.True(t, strings.HasSuffix(resp.Item.Overview, "..."))

	require.NotNil(t, resp.Torrent)
	assert.Equal(t, []string{"720p", "2160p"}, resp.Torrent.Qualities())
	assert.Equal(t, []string{"Dune"}, f.torrents.titles)

	require.Len(t, resp.Streams, 2)
	assert.Equal(t, "https://vidsrc.xyz/embed/movie/438631", resp.Streams[0].URL)
	assert.Equal(t, "vidsrc.xyz", resp.Streams[0].Name)
	assert.Equal(t, "https://vidsrc.to/embed/movie/438631", resp.Streams[1].URL)

	assert.True(t, resp.Advisory)
	assert.True(t, resp.HasAction(ActionRequest))
	assert.True(t, resp.HasAction(ActionFavorite))
	assert.False(t, resp.HasAction(ActionSend))
}

func TestResolveDiscoveryShowSkipsTorrents(t *testing.T) {
	f := newSearchFixture()
	f.catalog.search["dark"] = []tmdb.SearchResult{{ID: 70523, MediaType: "tv", Name: "Dark", FirstAirDate: "2017-12-01"}}
	f.catalog.details[70523] = &tmdb.Details{
		SearchResult:    tmdb.SearchResult{ID: 70523, MediaType: "tv", Name: "Dark", FirstAirDate: "2017-12-01"},
		NumberOfSeasons: 3,
		CreatedBy:       []tmdb.Person{{Name: "Baran bo Odar"}, {Name: "Jantje Friese"}},
	}

	resp := f.ctrl.Resolve(context.Background(), "dark")

	assert.Equal(t, OutcomeDiscovery, resp.Outcome)
	assert.Equal(t, models.MediaTypeTV, resp.Item.Kind)
	assert.Equal(t, 3, resp.Item.Seasons)
	assert.Equal(t, []string{"Baran bo Odar", "Jantje Friese"}, resp.Item.Directors)
	assert.Nil(t, resp.Torrent)
	assert.Zero(t, f.torrents.calls())
	assert.Equal(t, "https://vidsrc.xyz/embed/tv/70523", resp.Streams[0].URL)
}

func TestResolveDiscoveryWithoutDetailsUsesSearchResult(t *testing.T) {
	f := newSearchFixture()
	result := movieResult(603, "Matrix", "1999-03-30")
	result.Overview = "Neo"
	f.catalog.search["matrix"] = []tmdb.SearchResult{result}

	resp := f.ctrl.Resolve(context.Background(), "matrix")

	assert.Equal(t, OutcomeDiscovery, resp.Outcome)
	assert.Equal(t, "Matrix", resp.Item.Title)
	assert.Equal(t, "1999", resp.Item.Year)
	assert.Equal(t, "Neo", resp.Item.Overview)
}

func TestResolvePanicsBecomeErrorOutcome(t *testing.T) {
	t.Run("search", func(t *testing.T) {
		f := newSearchFixture()
		f.catalog.panicSearch = true
		assert.Equal(t, OutcomeError, f.ctrl.Resolve(context.Background(), "dune").Outcome)
	})

	t.Run("concurrent details", func(t *testing.T) {
		f := newSearchFixture()
		f.catalog.search["dune"] = []tmdb.SearchResult{movieResult(438631, "Dune", "2021-09-15")}
		f.catalog.panicDetails = true
		resp := f.ctrl.Resolve(context.Background(), "dune")
		assert.Equal(t, OutcomeError, resp.Outcome)
		assert.Nil(t, resp.Item)
	})
}

func TestResolveArchiveFailureFallsBackToCatalog(t *testing.T) {
	f := newSearchFixture()
	f.archive.loadErr = errors.New("database is locked")
	f.catalog.search["dune"] = []tmdb.SearchResult{movieResult(438631, "Dune", "2021-09-15")}

	resp := f.ctrl.Resolve(context.Background(), "dune")

	assert.Equal(t, OutcomeDiscovery, resp.Outcome)
}

func TestDetailsArchivedOffersFile(t *testing.T) {
	f := newSearchFixture(&models.Media{ID: 4, Title: "Dune", TMDBID: int64Ptr(438631), FileID: "f1"})
	details := movieDetails(438631, "Dune", "2021-09-15")
	details.Overview = strings.Repeat("x", 600)
	f.catalog.details[438631] = details

	resp := f.ctrl.Details(context.Background(), models.MediaTypeMovie, 438631)

	assert.Equal(t, OutcomeLocal, resp.Outcome)
	assert.True(t, resp.Detailed)
	assert.Equal(t, uint(4), resp.Local.ID)
	assert.True(t, resp.HasAction(ActionSend))
	assert.Equal(t, 503, len(resp.Item.Overview))
	assert.Zero(t, f.torrents.calls())
}

func TestDetailsNotArchived(t *testing.T) {
	f := newSearchFixture()
	f.catalog.details[438631] = movieDetails(438631, "Dune", "2021-09-15")
	f.torrents.movie = &yts.Movie{Title: "Dune", URL: "https://yts.mx/movies/dune-2021"}

	resp := f.ctrl.Details(context.Background(), models.MediaTypeMovie, 438631)

	assert.Equal(t, OutcomeDiscovery, resp.Outcome)
	assert.True(t, resp.Detailed)
	require.NotNil(t, resp.Torrent)
	assert.Equal(t, "https://yts.mx/movies/dune-2021", resp.Torrent.URL)
	assert.True(t, resp.HasAction(ActionRequest))
	assert.Len(t, resp.Streams, 2)
}

func TestDetailsUnavailable(t *testing.T) {
	f := newSearchFixture()
	resp := f.ctrl.Details(context.Background(), models.MediaTypeMovie, 1)
	assert.Equal(t, OutcomeError, resp.Outcome)
}

func TestTrendingTopFive(t *testing.T) {
	f := newSearchFixture()
	for i := int64(1); i <= 8; i++ {
		f.catalog.trending = append(f.catalog.trending, movieResult(i, "Movie", "2024-01-01"))
	}

	items := f.ctrl.Trending(context.Background())

	require.Len(t, items, 5)
	assert.Equal(t, int64(1), items[0].TMDBID)
	assert.Equal(t, int64(5), items[4].TMDBID)
}

func TestRandom(t *testing.T) {
	empty := newSearchFixture()
	media, err := empty.ctrl.Random(context.Background())
	require.NoError(t, err)
	assert.Nil(t, media)

	f := newSearchFixture(&models.Media{ID: 1, Title: "Dune", FileID: "f1"})
	media, err = f.ctrl.Random(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Dune", media.Title)
}
