package search

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/upnext/upnext/internal/catalog"
	"github.com/upnext/upnext/internal/query"
)

const (
	defaultMaxResults = 20
	mixedPerTypeCap   = 5
)

// Coordinator routes a parsed intent to a concrete fetch plan, fans out
// the catalog calls it needs, and merges everything into one bounded,
// ranked candidate list. It holds no per-request state; one instance
// serves concurrent resolves.
type Coordinator struct {
	client     catalog.Client
	movies     *GenreStrategy
	series     *GenreStrategy
	maxResults int
	logger     zerolog.Logger
}

// NewCoordinator creates a coordinator over the given catalog client.
func NewCoordinator(client catalog.Client, maxResults int, logger zerolog.Logger) *Coordinator {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &Coordinator{
		client:     client,
		movies:     NewGenreStrategy(catalog.KindMovie, client, logger),
		series:     NewGenreStrategy(catalog.KindSeries, client, logger),
		maxResults: maxResults,
		logger:     logger.With().Str("component", "coordinator").Logger(),
	}
}

// Resolve executes the intent's strategy and returns ranked candidates.
// An empty result with a nil error is a valid outcome, distinct from a
// failed resolve.
func (c *Coordinator) Resolve(ctx context.Context, intent *query.SearchIntent) ([]Content, error) {
	log := c.logger.With().
		Str("resolveId", uuid.NewString()).
		Str("strategy", string(intent.Strategy())).
		Logger()

	log.Info().Str("description", intent.Description()).Msg("Resolving search intent")

	var items []Content
	var err error

	switch intent.Strategy() {
	case query.StrategyActor:
		items, err = c.resolveActor(ctx, log, intent)
	case query.StrategyTitle:
		items, err = c.resolveSimilarTitle(ctx, intent)
	case query.StrategyEndpoint:
		items, err = c.resolveEndpoint(ctx, log, intent)
	case query.StrategyKeyword:
		items, err = c.resolveKeyword(ctx, intent)
	default:
		items, err = c.resolveTrending(ctx, log, intent)
	}
	if err != nil {
		log.Error().Err(err).Msg("Resolve failed")
		return nil, err
	}

	items = capped(dedupeByID(items), c.maxResults)
	log.Info().Int("results", len(items)).Msg("Resolve completed")
	return items, nil
}

// resolveEndpoint handles genre/country intent: specialty routes first,
// then generic genre dispatch.
func (c *Coordinator) resolveEndpoint(ctx context.Context, log zerolog.Logger, intent *query.SearchIntent) ([]Content, error) {
	if sp := specialtyFor(intent); sp != specialtyNone {
		return c.resolveSpecialty(ctx, log, intent, sp)
	}

	if len(intent.Genres) == 0 {
		// Country with no genre: popularity-ordered regional discovery.
		return c.forKinds(ctx, log, intent.ContentType, func(s *GenreStrategy) ([]Content, error) {
			return c.discoverRegional(ctx, s.kind, intent.Country, "", "")
		})
	}

	return c.forKinds(ctx, log, intent.ContentType, func(s *GenreStrategy) ([]Content, error) {
		switch {
		case intent.Years != nil:
			return s.ByGenreAndYear(ctx, intent.Genres[0], *intent.Years)
		case len(intent.Genres) > 1:
			return s.ByCombination(ctx, intent.Genres)
		default:
			return s.ByGenre(ctx, intent.Genres[0])
		}
	})
}

// resolveSimilarTitle searches the catalog for the reference title and
// serves the surrounding matches. The search call is authoritative.
func (c *Coordinator) resolveSimilarTitle(ctx context.Context, intent *query.SearchIntent) ([]Content, error) {
	records, err := c.client.Search(ctx, intent.SimilarToTitle)
	if err != nil {
		return nil, err
	}

	items := make([]Content, 0, len(records))
	for _, rec := range records {
		if !kindAllowed(intent.ContentType, rec.Kind) {
			continue
		}
		items = append(items, fromRecord(rec, rec.Kind))
	}
	return items, nil
}

// resolveKeyword serves director, franchise, and raw keyword intent
// through free-text search; no dedicated catalog endpoint exists for
// any of them.
func (c *Coordinator) resolveKeyword(ctx context.Context, intent *query.SearchIntent) ([]Content, error) {
	q := intent.DirectorName
	if q == "" {
		q = intent.FranchiseName
	}
	if q == "" {
		q = strings.Join(intent.Keywords, " ")
	}

	records, err := c.client.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	items := make([]Content, 0, len(records))
	for _, rec := range records {
		if !kindAllowed(intent.ContentType, rec.Kind) {
			continue
		}
		if intent.Years != nil {
			if year := rec.Year(); year == 0 || !intent.Years.Contains(year) {
				continue
			}
		}
		items = append(items, fromRecord(rec, rec.Kind))
	}
	return items, nil
}

// resolveTrending serves queries with no usable signal.
func (c *Coordinator) resolveTrending(ctx context.Context, log zerolog.Logger, intent *query.SearchIntent) ([]Content, error) {
	return c.forKinds(ctx, log, intent.ContentType, func(s *GenreStrategy) ([]Content, error) {
		return s.Trending(ctx)
	})
}

// forKinds runs fn against the strategy for the hinted content type.
// Mixed queries fan out to both kinds concurrently, cap each side, and
// interleave positionally so the visible prefix carries both types.
// One failed side degrades to the other; both failing fails the resolve.
func (c *Coordinator) forKinds(ctx context.Context, log zerolog.Logger, ct query.ContentType, fn func(*GenreStrategy) ([]Content, error)) ([]Content, error) {
	switch ct {
	case query.ContentTypeMovie:
		return fn(c.movies)
	case query.ContentTypeSeries:
		return fn(c.series)
	}

	var wg sync.WaitGroup
	var movieItems, seriesItems []Content
	var movieErr, seriesErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		movieItems, movieErr = fn(c.movies)
	}()
	go func() {
		defer wg.Done()
		seriesItems, seriesErr = fn(c.series)
	}()
	wg.Wait()

	if movieErr != nil && seriesErr != nil {
		return nil, movieErr
	}
	if movieErr != nil {
		log.Warn().Err(movieErr).Msg("Movie branch failed, serving series only")
	}
	if seriesErr != nil {
		log.Warn().Err(seriesErr).Msg("Series branch failed, serving movies only")
	}

	return interleave(capped(movieItems, mixedPerTypeCap), capped(seriesItems, mixedPerTypeCap)), nil
}
