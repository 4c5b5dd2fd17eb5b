package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/amaumene/cineslime/internal/config"
	"github.com/amaumene/cineslime/internal/metrics"
	"github.com/amaumene/cineslime/internal/models"
	"github.com/amaumene/cineslime/internal/services/tmdb"
	"github.com/amaumene/cineslime/internal/services/yts"
	"github.com/amaumene/cineslime/internal/utils"
)

const trendingSize = 5

// SearchController turns free text into a response: archived files first,
// then the catalog, then the torrent index for movies
type SearchController struct {
	archive       Archive
	catalog       Catalog
	torrents      TorrentFinder
	matcher       *utils.FuzzyMatcher
	streamMirrors []string
	region        string
	tracer        trace.Tracer
	logger        *logrus.Logger
}

// NewSearchController creates a new search controller
func NewSearchController(cfg *config.Config, archive Archive, catalog Catalog, torrents TorrentFinder, logger *logrus.Logger) *SearchController {
	return &SearchController{
		archive:       archive,
		catalog:       catalog,
		torrents:      torrents,
		matcher:       utils.NewFuzzyMatcher(cfg.FuzzyThreshold),
		streamMirrors: cfg.StreamMirrors,
		region:        cfg.TMDBRegion,
		tracer:        otel.Tracer("cineslime/controllers"),
		logger:        logger,
	}
}

// Resolve always returns a response with a terminal outcome
func (c *SearchController) Resolve(ctx context.Context, query string) (resp *SearchResponse) {
	query = strings.TrimSpace(query)

	ctx, span := c.tracer.Start(ctx, "search.Resolve", trace.WithAttributes(attribute.String("query", query)))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			c.logger.WithFields(logrus.Fields{
				"query": query,
				"panic": r,
			}).Error("Search panicked")
			resp = &SearchResponse{Outcome: OutcomeError, Query: query}
		}
		if resp.Outcome == OutcomeError {
			span.SetStatus(codes.Error, "search failed")
		}
		span.SetAttributes(attribute.String("outcome", string(resp.Outcome)))
		metrics.Resolutions.WithLabelValues(string(resp.Outcome)).Inc()
	}()

	if query == "" {
		return &SearchResponse{Outcome: OutcomeNotFound, Query: query}
	}

	corpus, err := c.archive.GetMediasGroupedByTMDBID()
	if err != nil {
		// The catalog can still answer without the archive
		c.logger.WithError(err).WithField("query", query).Error("Failed to load archive index")
	}

	if matches := c.matcher.Match(query, corpus); len(matches) > 0 {
		best := matches[0]
		c.logger.WithFields(logrus.Fields{
			"query":    query,
			"media_id": best.Media.ID,
			"title":    best.Media.Title,
			"score":    best.Score,
		}).Info("Query matched archived file")
		return c.localResponse(ctx, query, best.Media)
	}

	results := c.catalog.SearchMulti(ctx, query)
	if len(results) == 0 {
		c.logger.WithField("query", query).Info("Nothing found locally or in the catalog")
		return &SearchResponse{Outcome: OutcomeNotFound, Query: query}
	}

	resp, err = c.discover(ctx, &results[0], cardOverviewRunes)
	if err != nil {
		c.logger.WithError(err).WithField("query", query).Error("Search failed")
		return &SearchResponse{Outcome: OutcomeError, Query: query}
	}
	resp.Query = query

	return resp
}

// localResponse presents an archived file, enriched when it has a catalog id
func (c *SearchController) localResponse(ctx context.Context, query string, media *models.Media) *SearchResponse {
	resp := &SearchResponse{
		Query:   query,
		Local:   media,
		Actions: []Action{ActionSend},
	}

	if !media.HasTMDBID() {
		resp.Outcome = OutcomeLocalBare
		return resp
	}

	details := c.catalog.GetDetails(ctx, *media.TMDBID, kindOf(media))
	if details == nil {
		c.logger.WithFields(logrus.Fields{
			"media_id": media.ID,
			"tmdb_id":  *media.TMDBID,
		}).Warn("Enrichment failed, presenting archived file as is")
		resp.Outcome = OutcomeLocalMinimal
		return resp
	}

	resp.Outcome = OutcomeLocal
	resp.Item = itemFromDetails(details, cardOverviewRunes, c.region)
	resp.Actions = append(resp.Actions, ActionFavorite)
	return resp
}

// discover builds the card for a catalog result that is not archived. For movies the
// details fetch and the torrent lookup run concurrently.
func (c *SearchController) discover(ctx context.Context, result *tmdb.SearchResult, overviewRunes int) (*SearchResponse, error) {
	kind := result.Kind()

	var (
		details *tmdb.Details
		movie   *yts.Movie
		wg      conc.WaitGroup
	)
	wg.Go(func() {
		details = c.catalog.GetDetails(ctx, result.ID, kind)
	})
	if kind == models.MediaTypeMovie {
		wg.Go(func() {
			movie = c.torrents.SearchMovie(ctx, result.DisplayTitle())
		})
	}
	if recovered := wg.WaitAndRecover(); recovered != nil {
		return nil, fmt.Errorf("lookup panicked: %w", recovered.AsError())
	}

	resp := c.discoveryResponse(result, details, overviewRunes)
	resp.Torrent = torrentFromMovie(movie)
	return resp, nil
}

func (c *SearchController) discoveryResponse(result *tmdb.SearchResult, details *tmdb.Details, overviewRunes int) *SearchResponse {
	var item *Item
	if details != nil {
		item = itemFromDetails(details, overviewRunes, c.region)
	} else {
		c.logger.WithField("tmdb_id", result.ID).Warn("Details unavailable, using search result")
		item = itemFromResult(result, overviewRunes)
	}

	return &SearchResponse{
		Outcome:  OutcomeDiscovery,
		Item:     item,
		Streams:  streamLinks(c.streamMirrors, item.Kind, item.TMDBID),
		Advisory: true,
		Actions:  []Action{ActionRequest, ActionFavorite},
	}
}

// Details builds the long card behind a details button. An archived item offers the
// file; anything else gets the discovery block.
func (c *SearchController) Details(ctx context.Context, kind models.MediaType, tmdbID int64) (resp *SearchResponse) {
	ctx, span := c.tracer.Start(ctx, "search.Details", trace.WithAttributes(
		attribute.Int64("tmdb_id", tmdbID),
		attribute.String("kind", string(kind)),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			c.logger.WithFields(logrus.Fields{"tmdb_id": tmdbID, "panic": r}).Error("Details panicked")
			resp = &SearchResponse{Outcome: OutcomeError, Detailed: true}
		}
	}()

	details := c.catalog.GetDetails(ctx, tmdbID, kind)
	if details == nil {
		span.SetStatus(codes.Error, "details unavailable")
		return &SearchResponse{Outcome: OutcomeError, Detailed: true}
	}

	local, err := c.archive.GetMediaByTMDBID(tmdbID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		c.logger.WithError(err).WithField("tmdb_id", tmdbID).Error("Failed to look up archive")
	}
	if local != nil {
		return &SearchResponse{
			Outcome:  OutcomeLocal,
			Detailed: true,
			Local:    local,
			Item:     itemFromDetails(details, detailsOverviewRunes, c.region),
			Actions:  []Action{ActionSend, ActionFavorite},
		}
	}

	resp = c.discoveryResponse(&details.SearchResult, details, detailsOverviewRunes)
	resp.Detailed = true
	if kind == models.MediaTypeMovie {
		resp.Torrent = torrentFromMovie(c.torrents.SearchMovie(ctx, details.DisplayTitle()))
	}
	return resp
}

// Trending returns the top of this week's trending movies
func (c *SearchController) Trending(ctx context.Context) []*Item {
	results := c.catalog.GetTrending(ctx)
	if len(results) > trendingSize {
		results = results[:trendingSize]
	}

	items := make([]*Item, 0, len(results))
	for i := range results {
		items = append(items, itemFromResult(&results[i], cardOverviewRunes))
	}
	return items
}

// Random picks one archived file; nil when the archive is empty
func (c *SearchController) Random(ctx context.Context) (*models.Media, error) {
	medias, err := c.archive.GetRandomMedias(1)
	if err != nil {
		return nil, fmt.Errorf("failed to sample archive: %w", err)
	}
	if len(medias) == 0 {
		return nil, nil
	}
	return medias[0], nil
}

// Media returns an archived file by local id
func (c *SearchController) Media(ctx context.Context, id uint) (*models.Media, error) {
	return c.archive.GetMediaByID(id)
}
