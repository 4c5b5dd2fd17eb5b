package controllers

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/cineslime/internal/config"
	"github.com/amaumene/cineslime/internal/models"
	"github.com/amaumene/cineslime/internal/services/tmdb"
	"github.com/amaumene/cineslime/internal/services/yts"
)

type fakeCatalog struct {
	mu           sync.Mutex
	search       map[string][]tmdb.SearchResult
	details      map[int64]*tmdb.Details
	trending     []tmdb.SearchResult
	panicSearch  bool
	panicDetails bool

	searchCalls  int
	detailsCalls int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		search:  make(map[string][]tmdb.SearchResult),
		details: make(map[int64]*tmdb.Details),
	}
}

func (f *fakeCatalog) SearchMulti(ctx context.Context, query string) []tmdb.SearchResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	if f.panicSearch {
		panic("catalog exploded")
	}
	return f.search[query]
}

func (f *fakeCatalog) GetDetails(ctx context.Context, id int64, kind models.MediaType) *tmdb.Details {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailsCalls++
	if f.panicDetails {
		panic("details exploded")
	}
	return f.details[id]
}

func (f *fakeCatalog) GetTrending(ctx context.Context) []tmdb.SearchResult {
	return f.trending
}

func (f *fakeCatalog) calls() (search, details int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls, f.detailsCalls
}

type fakeTorrents struct {
	mu     sync.Mutex
	movie  *yts.Movie
	titles []string
}

func (f *fakeTorrents) SearchMovie(ctx context.Context, title string) *yts.Movie {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles = append(f.titles, title)
	return f.movie
}

func (f *fakeTorrents) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.titles)
}

// fakeArchive is an in-memory archive index
type fakeArchive struct {
	mu      sync.Mutex
	medias  []*models.Media
	loadErr error
}

func (f *fakeArchive) CreateMedia(media *models.Media) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.medias {
		if m.FileID == media.FileID {
			return models.ErrDuplicate
		}
	}
	media.ID = uint(len(f.medias) + 1)
	f.medias = append(f.medias, media)
	return nil
}

func (f *fakeArchive) find(match func(*models.Media) bool) (*models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.medias {
		if match(m) {
			return m, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeArchive) GetMediaByID(id uint) (*models.Media, error) {
	return f.find(func(m *models.Media) bool { return m.ID == id })
}

func (f *fakeArchive) GetMediaByFileID(fileID string) (*models.Media, error) {
	return f.find(func(m *models.Media) bool { return m.FileID == fileID })
}

func (f *fakeArchive) GetMediaByTMDBID(tmdbID int64) (*models.Media, error) {
	return f.find(func(m *models.Media) bool { return m.HasTMDBID() && *m.TMDBID == tmdbID })
}

func (f *fakeArchive) GetMediasGroupedByTMDBID() ([]*models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return models.GroupByTMDBID(f.medias), nil
}

func (f *fakeArchive) GetRandomMedias(n int) ([]*models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.medias) == 0 {
		return nil, nil
	}
	return f.medias[:1], nil
}

type fakeMessenger struct {
	mu     sync.Mutex
	sent   map[int64]string
	failOn map[int64]bool
}

func (f *fakeMessenger) Notify(ctx context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[chatID] {
		return errors.New("bot was blocked by the user")
	}
	if f.sent == nil {
		f.sent = make(map[int64]string)
	}
	f.sent[chatID] = text
	return nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testConfig() *config.Config {
	return &config.Config{
		AdminUserID:    1,
		TMDBRegion:     "ES",
		StreamMirrors:  []string{"https://vidsrc.xyz", "https://vidsrc.to"},
		FuzzyThreshold: 0.4,
		RateLimitCount: 5,
	}
}

func newTestDatabase(t *testing.T) *models.Database {
	t.Helper()
	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func int64Ptr(v int64) *int64 { return &v }

func movieResult(id int64, title, date string) tmdb.SearchResult {
	return tmdb.SearchResult{ID: id, MediaType: "movie", Title: title, OriginalTitle: title, ReleaseDate: date}
}

func movieDetails(id int64, title, date string) *tmdb.Details {
	return &tmdb.Details{SearchResult: movieResult(id, title, date)}
}
