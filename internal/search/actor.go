package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/upnext/upnext/internal/catalog"
	"github.com/upnext/upnext/internal/query"
)

const (
	actorMaxResults     = 12
	actorMinRating      = 5.5
	actorMaxCastOrder   = 10
	actorMinVotes       = 100
	actorFallbackFloor  = 5.0
	actorFallbackNeeded = 3
)

// resolveActor runs the actor search sub-protocol: resolve the name to
// a person id, fetch their credits, and keep only meaningful well-known
// roles. An empty person lookup degrades to keyword search; a failed
// one propagates, it is the authoritative call for this strategy.
func (c *Coordinator) resolveActor(ctx context.Context, log zerolog.Logger, intent *query.SearchIntent) ([]Content, error) {
	people, err := c.client.SearchPerson(ctx, intent.ActorName)
	if err != nil {
		return nil, fmt.Errorf("person search for %q: %w", intent.ActorName, err)
	}

	var best *catalog.Person
	for i := range people {
		if best == nil || people[i].Popularity > best.Popularity {
			best = &people[i]
		}
	}

	if best == nil {
		log.Debug().Str("actor", intent.ActorName).Msg("No person match, falling back to keyword search")
		return c.actorKeywordFallback(ctx, log, intent)
	}

	kinds := kindsFor(intent.ContentType)

	var mu sync.Mutex
	var all []Content
	errs := make([]error, 0, len(kinds))

	var wg sync.WaitGroup
	for _, kind := range kinds {
		wg.Add(1)
		go func(kind catalog.MediaKind) {
			defer wg.Done()
			credits, err := c.client.PersonCredits(ctx, best.ID, kind)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			for _, cr := range credits {
				if cr.Rating > actorMinRating && cr.CastOrder < actorMaxCastOrder && cr.VoteCount > actorMinVotes {
					all = append(all, fromRecord(cr.Record, kind))
				}
			}
		}(kind)
	}
	wg.Wait()

	// With a single content type the credits call is authoritative;
	// in mixed mode one failed side degrades to the other.
	if len(errs) == len(kinds) {
		return nil, fmt.Errorf("person credits for %q: %w", intent.ActorName, errs[0])
	}
	for _, err := range errs {
		log.Warn().Err(err).Str("actor", intent.ActorName).Msg("Credits branch failed, serving remaining type")
	}

	sortByWeightedVotes(all)
	return capped(dedupeByID(all), actorMaxResults), nil
}

// actorKeywordFallback tries fixed keyword queries in turn, stopping at
// the first that yields enough acceptable results. A short batch is
// still worth serving, so the best partial one is kept when no query
// reaches the target. It never fails just because the person lookup
// came back empty.
func (c *Coordinator) actorKeywordFallback(ctx context.Context, log zerolog.Logger, intent *query.SearchIntent) ([]Content, error) {
	queries := []string{
		intent.ActorName,
		intent.ActorName + " movie",
		intent.ActorName + " film",
	}

	var partial []Content
	for _, q := range queries {
		records, err := c.client.Search(ctx, q)
		if err != nil {
			log.Warn().Err(err).Str("query", q).Msg("Actor fallback query failed, trying next")
			continue
		}

		var accepted []Content
		for _, rec := range records {
			if !kindAllowed(intent.ContentType, rec.Kind) {
				continue
			}
			if isDocumentaryLike(rec) || rec.Rating <= actorFallbackFloor {
				continue
			}
			accepted = append(accepted, fromRecord(rec, rec.Kind))
		}

		accepted = dedupeByID(accepted)
		if len(accepted) >= actorFallbackNeeded {
			sortByRating(accepted)
			return accepted, nil
		}
		if len(accepted) > len(partial) {
			partial = accepted
		}
	}

	// A thin batch beats nothing; an empty one is still not a failure,
	// the caller decides what to show instead.
	sortByRating(partial)
	return partial, nil
}

// isDocumentaryLike flags documentary or biography material, which
// keyword searches for an actor's name surface in large numbers.
func isDocumentaryLike(rec catalog.Record) bool {
	for _, id := range rec.GenreIDs {
		if id == 99 { // documentary, same id for both kinds
			return true
		}
	}
	overview := strings.ToLower(rec.Overview)
	return strings.Contains(overview, "documentary") || strings.Contains(overview, "biography")
}
