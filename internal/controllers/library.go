package controllers

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/amaumene/cineslime/internal/models"
)

const favoritesPageSize = 20

var (
	// ErrAlreadyFavorite is returned when the item is already bookmarked
	ErrAlreadyFavorite = errors.New("already in favorites")
	// ErrAlreadyRequested is returned when the user has a pending request for the item
	ErrAlreadyRequested = errors.New("already requested")
)

// LibraryController manages favorites and upload requests
type LibraryController struct {
	users   UserStore
	catalog Catalog
	logger  *logrus.Logger
}

// NewLibraryController creates a new library controller
func NewLibraryController(users UserStore, catalog Catalog, logger *logrus.Logger) *LibraryController {
	return &LibraryController{
		users:   users,
		catalog: catalog,
		logger:  logger,
	}
}

// titleOf names a catalog item, falling back to its id when the catalog is down
func (c *LibraryController) titleOf(ctx context.Context, kind models.MediaType, tmdbID int64) string {
	if details := c.catalog.GetDetails(ctx, tmdbID, kind); details != nil {
		return details.DisplayTitle()
	}
	return fmt.Sprintf("ID %d", tmdbID)
}

// AddFavorite bookmarks a catalog item for a user
func (c *LibraryController) AddFavorite(ctx context.Context, userID int64, kind models.MediaType, tmdbID int64) (*models.Favorite, error) {
	if _, err := c.users.GetFavorite(userID, tmdbID); err == nil {
		return nil, ErrAlreadyFavorite
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check favorites: %w", err)
	}

	fav := &models.Favorite{
		UserID:    userID,
		TMDBID:    tmdbID,
		MediaType: kind,
		Title:     c.titleOf(ctx, kind, tmdbID),
	}
	if err := c.users.AddFavorite(fav); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, ErrAlreadyFavorite
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"tmdb_id": tmdbID,
	}).Info("Favorite added")

	return fav, nil
}

// Favorites returns a user's most recent bookmarks
func (c *LibraryController) Favorites(ctx context.Context, userID int64) ([]*models.Favorite, error) {
	return c.users.ListFavorites(userID, favoritesPageSize)
}

// RequestUpload records that a user wants an item uploaded.
// A pending request for the same item is not duplicated.
func (c *LibraryController) RequestUpload(ctx context.Context, userID int64, kind models.MediaType, tmdbID int64) (*models.Request, error) {
	if _, err := c.users.GetPendingRequest(userID, tmdbID); err == nil {
		return nil, ErrAlreadyRequested
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check requests: %w", err)
	}

	req := &models.Request{
		UserID:    userID,
		TMDBID:    tmdbID,
		MediaType: kind,
		Title:     c.titleOf(ctx, kind, tmdbID),
		Status:    models.RequestStatusPending,
	}
	if err := c.users.CreateRequest(req); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"request_id": req.ID,
		"user_id":    userID,
		"tmdb_id":    tmdbID,
		"title":      req.Title,
	}).Info("Upload requested")

	return req, nil
}
