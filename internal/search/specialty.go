package search

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/upnext/upnext/internal/catalog"
	"github.com/upnext/upnext/internal/query"
)

// specialty identifies a special-case route checked before generic
// genre dispatch.
type specialty int

const (
	specialtyNone specialty = iota
	specialtyRomCom
	specialtySuperhero
	specialtyKDrama
	specialtyAnime
	specialtyBritishTV
	specialtyTelenovela
	specialtyBollywood
	specialtyKidsFamily
)

// specialtyFor maps the intent's genre and country signals to a
// specialty route, or specialtyNone for generic dispatch.
func specialtyFor(intent *query.SearchIntent) specialty {
	if intent.IsRomCom() {
		return specialtyRomCom
	}
	if hasGenre(intent, catalog.GenreSuperhero) {
		return specialtySuperhero
	}

	switch intent.Country {
	case "KR":
		return specialtyKDrama
	case "JP":
		if intent.ContentType != query.ContentTypeMovie || hasGenre(intent, catalog.GenreAnimation) {
			return specialtyAnime
		}
	case "GB":
		if intent.ContentType == query.ContentTypeSeries {
			return specialtyBritishTV
		}
	case "MX":
		if intent.ContentType != query.ContentTypeMovie {
			return specialtyTelenovela
		}
	case "IN":
		return specialtyBollywood
	}

	if hasGenre(intent, catalog.GenreFamily) {
		return specialtyKidsFamily
	}
	return specialtyNone
}

func hasGenre(intent *query.SearchIntent, genre string) bool {
	for _, g := range intent.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// resolveSpecialty executes one specialty route. Each regional route is
// a direct catalog call followed by a type filter to drop cross-type
// false positives.
func (c *Coordinator) resolveSpecialty(ctx context.Context, log zerolog.Logger, intent *query.SearchIntent, sp specialty) ([]Content, error) {
	switch sp {
	case specialtyRomCom:
		return c.forKinds(ctx, log, intent.ContentType, func(s *GenreStrategy) ([]Content, error) {
			return s.ByCombination(ctx, []string{catalog.GenreRomance, catalog.GenreComedy})
		})
	case specialtySuperhero:
		return c.forKinds(ctx, log, intent.ContentType, func(s *GenreStrategy) ([]Content, error) {
			return s.Superhero(ctx)
		})
	case specialtyKDrama:
		return c.discoverRegional(ctx, kindOr(intent.ContentType, catalog.KindSeries), "KR", "ko", "")
	case specialtyAnime:
		return c.discoverRegional(ctx, kindOr(intent.ContentType, catalog.KindSeries), "JP", "ja", catalog.GenreAnimation)
	case specialtyBritishTV:
		return c.discoverRegional(ctx, catalog.KindSeries, "GB", "en", "")
	case specialtyTelenovela:
		return c.discoverRegional(ctx, catalog.KindSeries, "MX", "es", "")
	case specialtyBollywood:
		return c.discoverRegional(ctx, kindOr(intent.ContentType, catalog.KindMovie), "IN", "hi", "")
	case specialtyKidsFamily:
		return c.forKinds(ctx, log, intent.ContentType, func(s *GenreStrategy) ([]Content, error) {
			return s.ByGenre(ctx, catalog.GenreFamily)
		})
	}
	return nil, nil
}

// discoverRegional is the shared body of the regional routes: one
// popularity-ordered discovery call scoped to origin and language.
// It is an authoritative single call, so failure propagates.
func (c *Coordinator) discoverRegional(ctx context.Context, kind catalog.MediaKind, region, language, genre string) ([]Content, error) {
	req := catalog.DiscoverRequest{
		Kind:     kind,
		Region:   region,
		Language: language,
		MinVotes: 50,
		Sort:     catalog.SortPopularity,
	}
	if genre != "" {
		if id, ok := catalog.GenreID(kind, genre); ok {
			req.GenreIDs = []int{id}
		}
	}

	records, err := c.client.Discover(ctx, req)
	if err != nil {
		return nil, err
	}
	return filterKind(fromRecords(records, kind), kind), nil
}

// kindsFor expands a content type into the media kinds to query.
func kindsFor(ct query.ContentType) []catalog.MediaKind {
	switch ct {
	case query.ContentTypeMovie:
		return []catalog.MediaKind{catalog.KindMovie}
	case query.ContentTypeSeries:
		return []catalog.MediaKind{catalog.KindSeries}
	}
	return []catalog.MediaKind{catalog.KindMovie, catalog.KindSeries}
}

// kindOr maps an explicit content type to its kind, or the route's
// default when the query did not hint one.
func kindOr(ct query.ContentType, def catalog.MediaKind) catalog.MediaKind {
	switch ct {
	case query.ContentTypeMovie:
		return catalog.KindMovie
	case query.ContentTypeSeries:
		return catalog.KindSeries
	}
	return def
}

// kindAllowed reports whether a record's kind is acceptable for the
// requested content type. Unknown kinds pass.
func kindAllowed(ct query.ContentType, kind catalog.MediaKind) bool {
	if kind == "" {
		return true
	}
	switch ct {
	case query.ContentTypeMovie:
		return kind == catalog.KindMovie
	case query.ContentTypeSeries:
		return kind == catalog.KindSeries
	}
	return true
}
