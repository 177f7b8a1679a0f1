// Package search routes parsed intent to a concrete catalog fetch plan
// and merges the raw results into one bounded, ranked candidate list.
package search

import (
	"sort"

	"github.com/upnext/upnext/internal/catalog"
)

// Content is one catalog item surfaced to the caller. Candidates are
// constructed only inside the aggregation step and never mutated after.
type Content struct {
	ExternalID  int               `json:"id"`
	Title       string            `json:"title"`
	Overview    string            `json:"overview"`
	ReleaseYear int               `json:"releaseYear,omitempty"` // 0 when unknown
	Kind        catalog.MediaKind `json:"kind"`
	Rating      float64           `json:"rating"`
	VoteCount   int               `json:"voteCount"`
	Genres      []string          `json:"genres,omitempty"`
}

// fromRecord converts a raw catalog record, preferring the record's own
// media-kind tag over the caller's assumption when present.
func fromRecord(rec catalog.Record, kind catalog.MediaKind) Content {
	if rec.Kind != "" {
		kind = rec.Kind
	}
	return Content{
		ExternalID:  rec.ID,
		Title:       rec.Title,
		Overview:    rec.Overview,
		ReleaseYear: rec.Year(),
		Kind:        kind,
		Rating:      rec.Rating,
		VoteCount:   rec.VoteCount,
		Genres:      catalog.GenreNames(kind, rec.GenreIDs),
	}
}

func fromRecords(records []catalog.Record, kind catalog.MediaKind) []Content {
	items := make([]Content, 0, len(records))
	for _, rec := range records {
		items = append(items, fromRecord(rec, kind))
	}
	return items
}

// dedupeByID keeps the first occurrence of each external id.
func dedupeByID(items []Content) []Content {
	seen := make(map[int]struct{}, len(items))
	out := items[:0:0]
	for _, item := range items {
		if _, dup := seen[item.ExternalID]; dup {
			continue
		}
		seen[item.ExternalID] = struct{}{}
		out = append(out, item)
	}
	return out
}

// sortByRating orders items by rating descending, stable so upstream
// order breaks ties.
func sortByRating(items []Content) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Rating > items[j].Rating
	})
}

// sortByScore orders items by an arbitrary score descending, stable.
func sortByScore(items []Content, score func(Content) float64) {
	sort.SliceStable(items, func(i, j int) bool {
		return score(items[i]) > score(items[j])
	})
}

// sortByWeightedVotes orders items by rating × vote count descending,
// a proxy for "well regarded and widely seen".
func sortByWeightedVotes(items []Content) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Rating*float64(items[i].VoteCount) > items[j].Rating*float64(items[j].VoteCount)
	})
}

// interleave alternates the two lists positionally (a, b, a, b, …) and
// appends the tail of the longer one, so the visible prefix of a mixed
// result set carries both media kinds.
func interleave(a, b []Content) []Content {
	out := make([]Content, 0, len(a)+len(b))
	for i := 0; i < len(a) || i < len(b); i++ {
		if i < len(a) {
			out = append(out, a[i])
		}
		if i < len(b) {
			out = append(out, b[i])
		}
	}
	return out
}

// capped truncates items to at most n.
func capped(items []Content, n int) []Content {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// filterKind drops items whose media kind is known and differs from
// want; specialty endpoints can return cross-type false positives.
func filterKind(items []Content, want catalog.MediaKind) []Content {
	out := items[:0:0]
	for _, item := range items {
		if item.Kind != "" && item.Kind != want {
			continue
		}
		out = append(out, item)
	}
	return out
}
