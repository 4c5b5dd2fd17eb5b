package controllers

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/amaumene/cineslime/internal/metrics"
	"github.com/amaumene/cineslime/internal/models"
	"github.com/amaumene/cineslime/internal/services/tmdb"
	"github.com/amaumene/cineslime/internal/utils"
)

// IngestOutcome is the result of archiving a file
type IngestOutcome string

const (
	IngestCreated   IngestOutcome = "created"
	IngestDuplicate IngestOutcome = "duplicate"
	IngestUnparsed  IngestOutcome = "unparsed"
	IngestFailed    IngestOutcome = "error"
)

// IngestResult reports what happened to one file
type IngestResult struct {
	Outcome IngestOutcome
	Title   string
	Year    int
	Media   *models.Media // the new record, or the existing one on duplicate
}

// IngestController archives files posted to the channel or sent by the admin
type IngestController struct {
	archive Archive
	catalog Catalog
	tracer  trace.Tracer
	logger  *logrus.Logger
}

// NewIngestController creates a new ingest controller
func NewIngestController(archive Archive, catalog Catalog, logger *logrus.Logger) *IngestController {
	return &IngestController{
		archive: archive,
		catalog: catalog,
		tracer:  otel.Tracer("cineslime/controllers"),
		logger:  logger,
	}
}

// Ingest reads title and year from the caption and archives the file
func (c *IngestController) Ingest(ctx context.Context, caption, fileID string) IngestResult {
	parsed, ok := utils.ParseCaption(caption)
	if !ok {
		c.logger.WithField("caption", caption).Debug("Caption has no title and year")
		metrics.Ingestions.WithLabelValues(string(IngestUnparsed)).Inc()
		return IngestResult{Outcome: IngestUnparsed}
	}

	c.logger.WithFields(logrus.Fields{
		"title":   parsed.Title,
		"year":    parsed.Year,
		"pattern": parsed.Pattern,
	}).Debug("Parsed caption")

	return c.Register(ctx, parsed.Title, parsed.Year, fileID, caption)
}

// Register archives a file under an explicit title and year
func (c *IngestController) Register(ctx context.Context, title string, year int, fileID, caption string) (result IngestResult) {
	title = strings.TrimSpace(title)

	ctx, span := c.tracer.Start(ctx, "ingest.Register", trace.WithAttributes(
		attribute.String("title", title),
		attribute.Int("year", year),
	))
	defer span.End()

	defer func() {
		span.SetAttributes(attribute.String("outcome", string(result.Outcome)))
		metrics.Ingestions.WithLabelValues(string(result.Outcome)).Inc()
	}()

	if title == "" || !utils.PlausibleYear(year) || fileID == "" {
		return IngestResult{Outcome: IngestUnparsed, Title: title, Year: year}
	}

	existing, err := c.archive.GetMediaByFileID(fileID)
	switch {
	case err == nil:
		c.logger.WithFields(logrus.Fields{
			"file_id":  fileID,
			"media_id": existing.ID,
		}).Info("File already archived")
		return IngestResult{Outcome: IngestDuplicate, Title: title, Year: year, Media: existing}
	case !errors.Is(err, models.ErrNotFound):
		c.logger.WithError(err).WithField("file_id", fileID).Error("Failed to check archive")
		return IngestResult{Outcome: IngestFailed, Title: title, Year: year}
	}

	media := &models.Media{
		MediaType: models.MediaTypeMovie,
		Title:     title,
		Year:      year,
		FileID:    fileID,
		Quality:   utils.DetermineQuality(caption),
		Language:  utils.DetectLanguage(caption),
		Caption:   caption,
	}

	if best := tmdb.PickBestByYear(c.catalog.SearchMulti(ctx, title), year); best != nil {
		id := best.ID
		media.TMDBID = &id
		media.MediaType = best.Kind()
		media.OriginalTitle = best.DisplayOriginalTitle()
	} else {
		c.logger.WithField("title", title).Warn("No catalog match, archiving without catalog id")
	}

	if err := c.archive.CreateMedia(media); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			// Another update archived the same file meanwhile
			return IngestResult{Outcome: IngestDuplicate, Title: title, Year: year}
		}
		c.logger.WithError(err).WithField("file_id", fileID).Error("Failed to archive file")
		return IngestResult{Outcome: IngestFailed, Title: title, Year: year}
	}

	fields := logrus.Fields{
		"media_id": media.ID,
		"title":    media.Title,
		"year":     media.Year,
		"quality":  media.Quality,
	}
	if media.HasTMDBID() {
		fields["tmdb_id"] = *media.TMDBID
	}
	c.logger.WithFields(fields).Info("File archived")

	return IngestResult{Outcome: IngestCreated, Title: title, Year: year, Media: media}
}
