package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/upnext/upnext/internal/catalog"
)

// GenreStrategy retrieves era-diversified genre results for one media
// kind. Movie and series instances share the code and differ only in
// their profile tables; series dates come from first broadcast and
// carry lower vote floors throughout.
type GenreStrategy struct {
	kind     catalog.MediaKind
	client   catalog.Client
	profiles map[string]GenreProfile
	fallback GenreProfile
	logger   zerolog.Logger
}

// NewGenreStrategy creates a strategy for the given media kind.
func NewGenreStrategy(kind catalog.MediaKind, client catalog.Client, logger zerolog.Logger) *GenreStrategy {
	return &GenreStrategy{
		kind:     kind,
		client:   client,
		profiles: genreProfiles(kind),
		fallback: defaultProfile(kind),
		logger:   logger.With().Str("component", "strategy").Str("kind", string(kind)).Logger(),
	}
}

func (s *GenreStrategy) profile(genre string) GenreProfile {
	if prof, ok := s.profiles[genre]; ok {
		return prof
	}
	return s.fallback
}

// ByGenre fans out one discovery call per era bucket, joins them all,
// then dedups and ranks. A failed bucket is logged and contributes
// nothing; the call itself only fails for an unknown genre.
func (s *GenreStrategy) ByGenre(ctx context.Context, genre string) ([]Content, error) {
	genreID, ok := catalog.GenreID(s.kind, genre)
	if !ok {
		return nil, fmt.Errorf("%w: unknown genre %q", catalog.ErrInvalidRequest, genre)
	}
	prof := s.profile(genre)

	type bucketResult struct {
		index int
		items []Content
	}

	var wg sync.WaitGroup
	results := make(chan bucketResult, len(prof.Buckets))

	for i, bucket := range prof.Buckets {
		wg.Add(1)
		go func(index int, b EraBucket) {
			defer wg.Done()
			years := b.Years
			records, err := s.client.Discover(ctx, catalog.DiscoverRequest{
				Kind:      s.kind,
				GenreIDs:  []int{genreID},
				Years:     &years,
				MinRating: b.MinRating,
				MinVotes:  b.MinVotes,
				Sort:      catalog.SortRating,
			})
			if err != nil {
				s.logger.Warn().
					Err(err).
					Str("genre", genre).
					Str("era", b.Label).
					Msg("Era bucket fetch failed, skipping")
				results <- bucketResult{index: index}
				return
			}
			items := fromRecords(records, s.kind)
			results <- bucketResult{index: index, items: capped(items, b.MaxResults)}
		}(i, bucket)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// Reassemble in bucket order so merging stays deterministic.
	byBucket := make([][]Content, len(prof.Buckets))
	for r := range results {
		byBucket[r.index] = r.items
	}

	var all []Content
	for _, items := range byBucket {
		all = append(all, items...)
	}
	all = dedupeByID(all)

	if prof.PrioritizeClassics {
		s.sortWithClassicsBonus(all)
	} else {
		sortByRating(all)
	}

	s.logger.Debug().
		Str("genre", genre).
		Int("buckets", len(prof.Buckets)).
		Int("results", len(all)).
		Msg("Era-diversified genre fetch completed")

	return all, nil
}

// ByGenreAndYear bypasses era bucketing: one discovery call scoped to
// the requested span with the genre's thresholds, popularity ordered.
// This is an authoritative single call, so its failure propagates.
func (s *GenreStrategy) ByGenreAndYear(ctx context.Context, genre string, years catalog.YearRange) ([]Content, error) {
	genreID, ok := catalog.GenreID(s.kind, genre)
	if !ok {
		return nil, fmt.Errorf("%w: unknown genre %q", catalog.ErrInvalidRequest, genre)
	}
	prof := s.profile(genre)

	records, err := s.client.Discover(ctx, catalog.DiscoverRequest{
		Kind:      s.kind,
		GenreIDs:  []int{genreID},
		Years:     &years,
		MinRating: prof.MinRating,
		MinVotes:  prof.MinVotes,
		Sort:      catalog.SortPopularity,
	})
	if err != nil {
		return nil, err
	}

	// Keep only items whose year is known and inside the span; the
	// catalog filter is date-based and undated records slip through.
	items := make([]Content, 0, len(records))
	for _, rec := range records {
		if year := rec.Year(); year != 0 && years.Contains(year) {
			items = append(items, fromRecord(rec, s.kind))
		}
	}

	return dedupeByID(items), nil
}

// ByCombination issues one call with all genres ANDed, excluding genres
// that dilute the blend's intent. Thresholds follow the leading genre.
func (s *GenreStrategy) ByCombination(ctx context.Context, genres []string) ([]Content, error) {
	if len(genres) == 0 {
		return nil, fmt.Errorf("%w: empty genre combination", catalog.ErrInvalidRequest)
	}

	ids := make([]int, 0, len(genres))
	for _, g := range genres {
		id, ok := catalog.GenreID(s.kind, g)
		if !ok {
			return nil, fmt.Errorf("%w: unknown genre %q", catalog.ErrInvalidRequest, g)
		}
		ids = append(ids, id)
	}
	prof := s.profile(genres[0])

	records, err := s.client.Discover(ctx, catalog.DiscoverRequest{
		Kind:            s.kind,
		GenreIDs:        ids,
		ExcludeGenreIDs: s.exclusionIDs(genres, ids),
		MinRating:       prof.MinRating,
		MinVotes:        prof.MinVotes,
		Sort:            catalog.SortRating,
	})
	if err != nil {
		return nil, err
	}

	items := dedupeByID(fromRecords(records, s.kind))
	sortByRating(items)
	return items, nil
}

// exclusionIDs resolves the exclusion list for known combinations.
/// Ids already present in the include set are skipped: series catalogs
// fold some genres onto shared ids, and excluding an included id would
// make the request unsatisfiable.
func (s *GenreStrategy) exclusionIDs(genres []string, include []int) []int {
	if len(genres) != 2 || genres[0] != catalog.GenreRomance || genres[1] != catalog.GenreComedy {
		return nil
	}
	included := make(map[int]struct{}, len(include))
	for _, id := range include {
		included[id] = struct{}{}
	}
	ids := make([]int, 0, len(romComExcludes))
	for _, g := range romComExcludes {
		id, ok := catalog.GenreID(s.kind, g)
		if !ok {
			continue
		}
		if _, dup := included[id]; dup {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Trending fetches popular titles without a genre filter, for queries
// with no usable signal.
func (s *GenreStrategy) Trending(ctx context.Context) ([]Content, error) {
	records, err := s.client.Discover(ctx, catalog.DiscoverRequest{
		Kind:     s.kind,
		MinVotes: s.fallback.MinVotes,
		Sort:     catalog.SortPopularity,
	})
	if err != nil {
		return nil, err
	}
	return dedupeByID(fromRecords(records, s.kind)), nil
}

var superheroTerms = []string{
	"superhero", "marvel", "dc comics", "avengers", "batman", "superman",
	"spider-man", "spiderman", "x-men", "wolverine", "justice league",
	"captain america", "iron man", "thor", "hulk", "black panther",
	"wonder woman", "aquaman", "deadpool", "guardians of the galaxy",
}

var superheroQueries = []string{
	"marvel avengers", "batman superman", "spider-man", "x-men wolverine",
}

// Superhero fetches the action genre and keeps items whose title or
// overview matches the superhero term list. When too few survive, it
// unions direct keyword searches instead.
func (s *GenreStrategy) Superhero(ctx context.Context) ([]Content, error) {
	genreID, _ := catalog.GenreID(s.kind, catalog.GenreAction)

	records, err := s.client.Discover(ctx, catalog.DiscoverRequest{
		Kind:      s.kind,
		GenreIDs:  []int{genreID},
		MinRating: 5.5,
		MinVotes:  150,
		Sort:      catalog.SortPopularity,
	})
	if err != nil {
		return nil, err
	}

	var heroes []Content
	for _, rec := range records {
		item := fromRecord(rec, s.kind)
		if item.Rating >= 5.5 && item.VoteCount >= 150 && matchesSuperhero(item) {
			heroes = append(heroes, item)
		}
	}
	sortByWeightedVotes(heroes)

	if len(heroes) >= 8 {
		return dedupeByID(heroes), nil
	}

	// Keyword fallback: union the fixed queries; individual query
	// failures degrade to an empty contribution.
	for _, q := range superheroQueries {
		found, err := s.client.Search(ctx, q)
		if err != nil {
			s.logger.Warn().Err(err).Str("query", q).Msg("Superhero keyword search failed, skipping")
			continue
		}
		for _, rec := range found {
			if rec.Kind != "" && rec.Kind != s.kind {
				continue
			}
			if rec.Language != "en" || rec.Rating < 5.0 {
				continue
			}
			heroes = append(heroes, fromRecord(rec, s.kind))
		}
	}

	heroes = dedupeByID(heroes)
	sortByWeightedVotes(heroes)
	return heroes, nil
}

func matchesSuperhero(c Content) bool {
	haystack := strings.ToLower(c.Title + " " + c.Overview)
	for _, term := range superheroTerms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}

// sortWithClassicsBonus rewards well-regarded older titles so recency
// bias does not bury them: +0.5 for pre-2000 movies rated above 7.0,
// pre-2005 series rated above 7.5.
func (s *GenreStrategy) sortWithClassicsBonus(items []Content) {
	cutoff, floor := 2000, 7.0
	if s.kind == catalog.KindSeries {
		cutoff, floor = 2005, 7.5
	}
	score := func(c Content) float64 {
		v := c.Rating
		if c.ReleaseYear > 0 && c.ReleaseYear < cutoff && c.Rating > floor {
			v += 0.5
		}
		return v
	}
	sortByScore(items, score)
}
