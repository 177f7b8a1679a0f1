// Package api exposes the search pipeline over a thin JSON HTTP surface.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/upnext/upnext/internal/catalog"
	"github.com/upnext/upnext/internal/query"
	"github.com/upnext/upnext/internal/search"
)

// Resolver turns parsed intent into ranked candidates.
type Resolver interface {
	Resolve(ctx context.Context, intent *query.SearchIntent) ([]search.Content, error)
}

// Handlers serves the search endpoints.
type Handlers struct {
	parser   *query.Parser
	resolver Resolver
	logger   zerolog.Logger
}

// NewHandlers creates the API handlers.
func NewHandlers(parser *query.Parser, resolver Resolver, logger zerolog.Logger) *Handlers {
	return &Handlers{
		parser:   parser,
		resolver: resolver,
		logger:   logger.With().Str("component", "api").Logger(),
	}
}

// RegisterRoutes registers the search routes on the given group.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.POST("/search", h.Search)
}

// SearchRequest is the search endpoint's request body.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse is the search endpoint's response body. An empty
// Results list with a 200 status is a valid outcome, distinct from an
// error status: the caller decides what fallback content to show.
type SearchResponse struct {
	Query       string           `json:"query"`
	Description string           `json:"description"`
	Strategy    string           `json:"strategy"`
	Valid       bool             `json:"valid"`
	Results     []search.Content `json:"results"`
	Total       int              `json:"total"`
}

// Search parses a free-text query and resolves it against the catalog.
// POST /api/v1/search
func (h *Handlers) Search(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Query) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	intent := h.parser.Parse(req.Query)

	results, err := h.resolver.Resolve(c.Request().Context(), intent)
	if err != nil {
		h.logger.Error().Err(err).Str("query", req.Query).Msg("Search resolve failed")
		switch {
		case errors.Is(err, catalog.ErrInvalidRequest):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid search request")
		case errors.Is(err, catalog.ErrUpstreamUnavailable), errors.Is(err, catalog.ErrUnparsableResponse):
			return echo.NewHTTPError(http.StatusBadGateway, "catalog unavailable")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
		}
	}

	if results == nil {
		results = []search.Content{}
	}

	return c.JSON(http.StatusOK, SearchResponse{
		Query:       req.Query,
		Description: intent.Description(),
		Strategy:    string(intent.Strategy()),
		Valid:       intent.IsValidForSearch(),
		Results:     results,
		Total:       len(results),
	})
}
