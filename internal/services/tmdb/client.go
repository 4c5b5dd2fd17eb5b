package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/amaumene/cineslime/internal/config"
	"github.com/amaumene/cineslime/internal/metrics"
	"github.com/amaumene/cineslime/internal/models"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// Client handles communication with the TMDB API.
// Every exported method logs and swallows its own failures.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	tracer     trace.Tracer
	logger     *logrus.Logger
}

// NewClient creates a new TMDB API client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return newClient(defaultBaseURL, cfg.TMDBAPIKey, cfg.TMDBLanguage, cfg.CatalogTimeout, logger)
}

func newClient(baseURL, apiKey, language string, timeout time.Duration, logger *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		language:   language,
		httpClient: &http.Client{Timeout: timeout},
		tracer:     otel.Tracer("cineslime/tmdb"),
		logger:     logger,
	}
}

// SearchMulti searches movies and shows by free text. Other result kinds are discarded.
func (c *Client) SearchMulti(ctx context.Context, query string) []SearchResult {
	ctx, span := c.tracer.Start(ctx, "tmdb.SearchMulti", trace.WithAttributes(attribute.String("query", query)))
	defer span.End()

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")

	var resp searchResponse
	if err := c.get(ctx, "/search/multi", params, &resp); err != nil {
		c.fail(span, "search", err, logrus.Fields{"query": query})
		return nil
	}

	results := make([]SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		if _, ok := models.ParseMediaType(r.MediaType); ok {
			results = append(results, r)
		}
	}

	metrics.CatalogRequests.WithLabelValues("search", "ok").Inc()
	span.SetAttributes(attribute.Int("results", len(results)))
	c.logger.WithFields(logrus.Fields{
		"query":   query,
		"results": len(results),
	}).Debug("TMDB search completed")

	return results
}

// GetDetails fetches one movie or show with credits, watch providers and videos.
// It returns nil on any failure.
func (c *Client) GetDetails(ctx context.Context, id int64, kind models.MediaType) *Details {
	ctx, span := c.tracer.Start(ctx, "tmdb.GetDetails", trace.WithAttributes(
		attribute.Int64("tmdb_id", id),
		attribute.String("kind", string(kind)),
	))
	defer span.End()

	params := url.Values{}
	params.Set("append_to_response", "credits,watch/providers,videos")

	var details Details
	path := fmt.Sprintf("/%s/%s", kind, strconv.FormatInt(id, 10))
	if err := c.get(ctx, path, params, &details); err != nil {
		c.fail(span, "details", err, logrus.Fields{"tmdb_id": id, "kind": kind})
		return nil
	}

	// The details endpoint omits media_type
	details.MediaType = string(kind)

	metrics.CatalogRequests.WithLabelValues("details", "ok").Inc()
	return &details
}

// GetTrending returns this week's trending movies
func (c *Client) GetTrending(ctx context.Context) []SearchResult {
	ctx, span := c.tracer.Start(ctx, "tmdb.GetTrending")
	defer span.End()

	var resp searchResponse
	if err := c.get(ctx, "/trending/movie/week", url.Values{}, &resp); err != nil {
		c.fail(span, "trending", err, nil)
		return nil
	}

	for i := range resp.Results {
		if resp.Results[i].MediaType == "" {
			resp.Results[i].MediaType = string(models.MediaTypeMovie)
		}
	}

	metrics.CatalogRequests.WithLabelValues("trending", "ok").Inc()
	return resp.Results
}

func (c *Client) fail(span trace.Span, operation string, err error, fields logrus.Fields) {
	metrics.CatalogRequests.WithLabelValues(operation, "error").Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	c.logger.WithFields(fields).WithError(err).WithField("operation", operation).Warn("TMDB request failed")
}

// get performs a GET against the API and decodes the JSON body into result
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	params.Set("include_adult", "false")

	fullURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.WithField("path", path).Debug("Making TMDB API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
