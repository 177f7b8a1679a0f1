// Package tmdb implements the catalog client against the TMDB API.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/upnext/upnext/internal/catalog"
	"github.com/upnext/upnext/internal/config"
)

// Client is a TMDB API client implementing catalog.Client.
type Client struct {
	httpClient *http.Client
	config     config.TMDBConfig
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client.
func NewClient(cfg config.TMDBConfig, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		config: cfg,
		logger: logger.With().Str("component", "tmdb").Logger(),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "tmdb"
}

// IsConfigured returns true if the API key is set.
func (c *Client) IsConfigured() bool {
	return c.config.APIKey != ""
}

// Discover runs a filtered discovery call for the requested media kind.
func (c *Client) Discover(ctx context.Context, req catalog.DiscoverRequest) ([]catalog.Record, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("%w: API key is not configured", catalog.ErrInvalidRequest)
	}

	path := "discover/movie"
	dateField := "primary_release_date"
	if req.Kind == catalog.KindSeries {
		path = "discover/tv"
		dateField = "first_air_date"
	}

	params := url.Values{}
	params.Set("api_key", c.config.APIKey)
	params.Set("include_adult", "false")
	params.Set("sort_by", sortParam(req.Sort))

	if len(req.GenreIDs) > 0 {
		params.Set("with_genres", joinIDs(req.GenreIDs))
	}
	if len(req.ExcludeGenreIDs) > 0 {
		params.Set("without_genres", joinIDs(req.ExcludeGenreIDs))
	}
	if req.Years != nil {
		params.Set(dateField+".gte", fmt.Sprintf("%d-01-01", req.Years.From))
		params.Set(dateField+".lte", fmt.Sprintf("%d-12-31", req.Years.To))
	}
	if req.MinRating > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(req.MinRating, 'f', 1, 64))
	}
	if req.MinVotes > 0 {
		params.Set("vote_count.gte", strconv.Itoa(req.MinVotes))
	}
	if req.Language != "" {
		params.Set("with_original_language", req.Language)
	}
	if req.Region != "" {
		params.Set("with_origin_country", req.Region)
	}

	var response DiscoverResponse
	if err := c.doRequest(ctx, fmt.Sprintf("%s/%s", c.config.BaseURL, path), params, &response); err != nil {
		return nil, err
	}

	records := make([]catalog.Record, 0, len(response.Results))
	for _, item := range response.Results {
		records = append(records, c.toRecord(item, req.Kind))
	}

	c.logger.Debug().
		Str("kind", string(req.Kind)).
		Ints("genres", req.GenreIDs).
		Int("results", len(records)).
		Msg("Discover completed")

	return records, nil
}

// Search runs a free-text multi search across movies and series.
// Person rows in the response are skipped.
func (c *Client) Search(ctx context.Context, query string) ([]catalog.Record, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("%w: API key is not configured", catalog.ErrInvalidRequest)
	}

	params := url.Values{}
	params.Set("api_key", c.config.APIKey)
	params.Set("query", query)
	params.Set("include_adult", "false")

	var response DiscoverResponse
	if err := c.doRequest(ctx, fmt.Sprintf("%s/search/multi", c.config.BaseURL), params, &response); err != nil {
		return nil, err
	}

	records := make([]catalog.Record, 0, len(response.Results))
	for _, item := range response.Results {
		if item.MediaType == "person" {
			continue
		}
		records = append(records, c.toRecord(item, ""))
	}

	c.logger.Debug().
		Str("query", query).
		Int("results", len(records)).
		Msg("Search completed")

	return records, nil
}

// SearchPerson searches for people by name.
func (c *Client) SearchPerson(ctx context.Context, name string) ([]catalog.Person, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("%w: API key is not configured", catalog.ErrInvalidRequest)
	}

	params := url.Values{}
	params.Set("api_key", c.config.APIKey)
	params.Set("query", name)
	params.Set("include_adult", "false")

	var response PersonSearchResponse
	if err := c.doRequest(ctx, fmt.Sprintf("%s/search/person", c.config.BaseURL), params, &response); err != nil {
		return nil, err
	}

	people := make([]catalog.Person, 0, len(response.Results))
	for _, p := range response.Results {
		people = append(people, catalog.Person{
			ID:         p.ID,
			Name:       p.Name,
			Popularity: p.Popularity,
		})
	}

	c.logger.Debug().
		Str("name", name).
		Int("results", len(people)).
		Msg("Person search completed")

	return people, nil
}

// PersonCredits fetches a person's cast credits for the given media kind.
func (c *Client) PersonCredits(ctx context.Context, personID int, kind catalog.MediaKind) ([]catalog.Credit, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("%w: API key is not configured", catalog.ErrInvalidRequest)
	}

	path := "movie_credits"
	if kind == catalog.KindSeries {
		path = "tv_credits"
	}

	params := url.Values{}
	params.Set("api_key", c.config.APIKey)

	var response CreditsResponse
	if err := c.doRequest(ctx, fmt.Sprintf("%s/person/%d/%s", c.config.BaseURL, personID, path), params, &response); err != nil {
		return nil, err
	}

	credits := make([]catalog.Credit, 0, len(response.Cast))
	for _, cr := range response.Cast {
		credits = append(credits, catalog.Credit{
			Record:    c.toRecord(cr.ItemResult, kind),
			CastOrder: cr.Order,
		})
	}

	c.logger.Debug().
		Int("personID", personID).
		Str("kind", string(kind)).
		Int("credits", len(credits)).
		Msg("Person credits fetched")

	return credits, nil
}

// doRequest performs an HTTP GET request and decodes the JSON response.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	reqURL := endpoint
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", catalog.ErrInvalidRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", endpoint).Msg("HTTP request failed")
		return fmt.Errorf("%w: %v", catalog.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			c.logger.Error().
				Int("status", resp.StatusCode).
				Str("message", errResp.StatusMessage).
				Msg("TMDB API error")
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: rate limited", catalog.ErrUpstreamUnavailable)
		case resp.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: status %d", catalog.ErrUpstreamUnavailable, resp.StatusCode)
		default:
			return fmt.Errorf("%w: status %d", catalog.ErrInvalidRequest, resp.StatusCode)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: %v", catalog.ErrUnparsableResponse, err)
	}

	return nil
}

// toRecord converts a TMDB item to a catalog.Record.
func (c *Client) toRecord(item ItemResult, kind catalog.MediaKind) catalog.Record {
	title := item.Title
	date := item.ReleaseDate
	if title == "" {
		title = item.Name
	}
	if date == "" {
		date = item.FirstAirDate
	}

	switch item.MediaType {
	case "movie":
		kind = catalog.KindMovie
	case "tv":
		kind = catalog.KindSeries
	}

	return catalog.Record{
		ID:          item.ID,
		Title:       title,
		Overview:    item.Overview,
		ReleaseDate: date,
		Rating:      item.VoteAverage,
		VoteCount:   item.VoteCount,
		GenreIDs:    item.GenreIDs,
		Kind:        kind,
		Language:    item.OriginalLanguage,
	}
}

func sortParam(sort catalog.SortOrder) string {
	if sort == catalog.SortPopularity {
		return "popularity.desc"
	}
	return "vote_average.desc"
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
