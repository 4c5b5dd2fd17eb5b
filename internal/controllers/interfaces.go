package controllers

import (
	"context"

	"github.com/amaumene/cineslime/internal/models"
	"github.com/amaumene/cineslime/internal/services/tmdb"
	"github.com/amaumene/cineslime/internal/services/yts"
)

// Catalog is the remote metadata service. Implementations never return transport
// errors; failures come back as empty or nil results.
type Catalog interface {
	SearchMulti(ctx context.Context, query string) []tmdb.SearchResult
	GetDetails(ctx context.Context, id int64, kind models.MediaType) *tmdb.Details
	GetTrending(ctx context.Context) []tmdb.SearchResult
}

// TorrentFinder locates a movie on the external torrent index
type TorrentFinder interface {
	SearchMovie(ctx context.Context, title string) *yts.Movie
}

// Archive is the index of files held in the private channel
type Archive interface {
	CreateMedia(media *models.Media) error
	GetMediaByID(id uint) (*models.Media, error)
	GetMediaByFileID(fileID string) (*models.Media, error)
	GetMediaByTMDBID(tmdbID int64) (*models.Media, error)
	GetMediasGroupedByTMDBID() ([]*models.Media, error)
	GetRandomMedias(n int) ([]*models.Media, error)
}

// UserStore holds users, their favorites and requests, and runtime settings
type UserStore interface {
	UpsertUser(telegramID int64, username, firstName string) (*models.User, error)
	GetUserByTelegramID(telegramID int64) (*models.User, error)
	SetBanned(telegramID int64, banned bool) error
	AllowUser(telegramID int64) error
	ListUserTelegramIDs() ([]int64, error)
	CountUsers() (int64, error)

	AddFavorite(fav *models.Favorite) error
	GetFavorite(userID, tmdbID int64) (*models.Favorite, error)
	ListFavorites(userID int64, limit int) ([]*models.Favorite, error)

	CreateRequest(req *models.Request) error
	GetPendingRequest(userID, tmdbID int64) (*models.Request, error)
	GetRequestByID(id uint) (*models.Request, error)
	UpdateRequestStatus(id uint, status models.RequestStatus) error
	ListPendingRequests(limit int) ([]*models.Request, error)
	CountPendingRequests() (int64, error)

	IsMaintenance() (bool, error)
	ToggleMaintenance() (bool, error)
}

// StatsStore is the read side behind /stats and the status server
type StatsStore interface {
	CountMedias() (int64, error)
	CountMediasByType() (map[models.MediaType]int64, error)
	CountUsers() (int64, error)
	CountPendingRequests() (int64, error)
	IsMaintenance() (bool, error)
}

// Messenger delivers a plain notification to a chat
type Messenger interface {
	Notify(ctx context.Context, chatID int64, text string) error
}
