package yts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/amaumene/cineslime/internal/metrics"
)

const listMoviesPath = "/api/v2/list_movies.json"

var errNoMatch = errors.New("no movies in response")

// Torrent is one quality variant of a movie
type Torrent struct {
	URL     string `json:"url"`
	Hash    string `json:"hash"`
	Quality string `json:"quality"`
	Type    string `json:"type"`
	Size    string `json:"size"`
	Seeds   int    `json:"seeds"`
}

// Movie is the best YTS match for a title
type Movie struct {
	ID       int64     `json:"id"`
	URL      string    `json:"url"`
	Title    string    `json:"title"`
	Year     int       `json:"year"`
	Rating   float64   `json:"rating"`
	Torrents []Torrent `json:"torrents"`
	Mirror   string    `json:"-"` // base URL that answered
}

// Qualities lists the available quality variants in listing order
func (m *Movie) Qualities() []string {
	qualities := make([]string, 0, len(m.Torrents))
	for _, t := range m.Torrents {
		qualities = append(qualities, t.Quality)
	}
	return qualities
}

type listMoviesResponse struct {
	Status string `json:"status"`
	Data   struct {
		MovieCount int     `json:"movie_count"`
		Movies     []Movie `json:"movies"`
	} `json:"data"`
}

// Client looks movies up on an ordered list of YTS mirrors.
// Mirrors are tried strictly in order with one short attempt each.
type Client struct {
	mirrors    []string
	timeout    time.Duration
	httpClient *http.Client
	tracer     trace.Tracer
	logger     *logrus.Logger
}

// NewClient creates a new YTS client over the given mirror base URLs
func NewClient(mirrors []string, timeout time.Duration, logger *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		mirrors:    mirrors,
		timeout:    timeout,
		httpClient: &http.Client{},
		tracer:     otel.Tracer("cineslime/yts"),
		logger:     logger,
	}
}

// SearchMovie returns the most downloaded match from the first mirror that has one,
// or nil when every mirror fails or comes back empty
func (c *Client) SearchMovie(ctx context.Context, title string) *Movie {
	ctx, span := c.tracer.Start(ctx, "yts.SearchMovie", trace.WithAttributes(attribute.String("title", title)))
	defer span.End()

	for i, mirror := range c.mirrors {
		movie, err := c.searchMirror(ctx, mirror, title)
		if err != nil {
			result := "error"
			if errors.Is(err, errNoMatch) {
				result = "empty"
			} else if errors.Is(err, context.DeadlineExceeded) {
				result = "timeout"
			}
			metrics.MirrorAttempts.WithLabelValues(mirror, result).Inc()
			c.logger.WithFields(logrus.Fields{
				"mirror":  mirror,
				"attempt": i + 1,
				"title":   title,
			}).WithError(err).Debug("YTS mirror attempt failed")
			continue
		}

		metrics.MirrorAttempts.WithLabelValues(mirror, "ok").Inc()
		span.SetAttributes(attribute.String("mirror", mirror), attribute.Int("attempts", i+1))
		return movie
	}

	span.SetStatus(codes.Error, "all mirrors failed")
	c.logger.WithFields(logrus.Fields{
		"title":   title,
		"mirrors": len(c.mirrors),
	}).Warn("No YTS mirror returned a match")

	return nil
}

// searchMirror performs one attempt bounded by the per-mirror timeout
func (c *Client) searchMirror(ctx context.Context, mirror, title string) (*Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("query_term", title)
	params.Set("limit", "1")
	params.Set("sort_by", "download_count")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mirror+listMoviesPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("mirror returned status %d", resp.StatusCode)
	}

	var body listMoviesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(body.Data.Movies) == 0 {
		return nil, errNoMatch
	}

	movie := body.Data.Movies[0]
	movie.Mirror = mirror
	return &movie, nil
}
