// Package query turns free-text content requests into structured search
// intent. Parsing is deterministic keyword and pattern matching over
// fixed knowledge tables; there is no trained model behind it.
package query

import (
	"fmt"
	"strings"

	"github.com/upnext/upnext/internal/catalog"
)

// ContentType is the media type hinted by a query. The zero value means
// no hint was found and both types should be searched.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
	ContentTypeMixed  ContentType = "mixed"
)

// Strategy is the retrieval path derived from a parsed query.
type Strategy string

const (
	StrategyActor    Strategy = "actor"
	StrategyTitle    Strategy = "title"
	StrategyEndpoint Strategy = "endpoint"
	StrategyKeyword  Strategy = "keyword"
	StrategyFallback Strategy = "fallback"
)

// SearchIntent holds the signals extracted from one query. It is built
// incrementally by the detector chain and read-only afterwards.
type SearchIntent struct {
	Raw            string
	Genres         []string // detection order, no duplicates
	Country        string   // ISO 3166-1 region code
	Years          *catalog.YearRange
	ContentType    ContentType
	SimilarToTitle string
	ActorName      string
	DirectorName   string
	FranchiseName  string
	Mood           string
	Keywords       []string // fallback signal, deduplicated
}

// Strategy derives the retrieval path from the extracted fields.
// Precedence is fixed: actor beats everything, director and franchise
// degrade to keyword search (the catalog has no dedicated endpoint for
// them), then title similarity, then genre/country discovery, then raw
// keywords, then trending fallback.
func (in *SearchIntent) Strategy() Strategy {
	switch {
	case in.ActorName != "":
		return StrategyActor
	case in.DirectorName != "" || in.FranchiseName != "":
		return StrategyKeyword
	case in.SimilarToTitle != "":
		return StrategyTitle
	case in.Country != "" || len(in.Genres) > 0:
		return StrategyEndpoint
	case len(in.Keywords) > 0:
		return StrategyKeyword
	default:
		return StrategyFallback
	}
}

// IsValidForSearch reports whether any search signal was extracted.
func (in *SearchIntent) IsValidForSearch() bool {
	return len(in.Genres) > 0 ||
		in.Country != "" ||
		in.SimilarToTitle != "" ||
		in.ActorName != "" ||
		in.DirectorName != "" ||
		in.FranchiseName != "" ||
		len(in.Keywords) > 0
}

// IsRomCom reports whether the genre list is exactly the forced
// romantic-comedy pair.
func (in *SearchIntent) IsRomCom() bool {
	return len(in.Genres) == 2 &&
		in.Genres[0] == catalog.GenreRomance &&
		in.Genres[1] == catalog.GenreComedy
}

// Description renders a human-readable summary of the detected intent
// for user-facing feedback, e.g. "romantic comedies from 1995-1999".
// Present fields are concatenated in a fixed order.
func (in *SearchIntent) Description() string {
	var parts []string

	if in.ActorName != "" {
		parts = append(parts, "starring "+titleCase(in.ActorName))
	}
	if in.DirectorName != "" {
		parts = append(parts, "directed by "+titleCase(in.DirectorName))
	}
	if in.FranchiseName != "" {
		parts = append(parts, titleCase(in.FranchiseName)+" franchise")
	}
	if in.SimilarToTitle != "" {
		parts = append(parts, "similar to "+titleCase(in.SimilarToTitle))
	}
	if len(in.Genres) > 0 {
		if in.IsRomCom() {
			parts = append(parts, "romantic comedies")
		} else {
			lowered := make([]string, len(in.Genres))
			for i, g := range in.Genres {
				lowered[i] = strings.ToLower(g)
			}
			parts = append(parts, strings.Join(lowered, "/"))
		}
	}
	if in.Mood != "" {
		parts = append(parts, in.Mood)
	}
	if in.Country != "" {
		if name, ok := countryDisplayNames[in.Country]; ok {
			parts = append(parts, name)
		} else {
			parts = append(parts, in.Country)
		}
	}
	switch in.ContentType {
	case ContentTypeMovie:
		parts = append(parts, "movies")
	case ContentTypeSeries:
		parts = append(parts, "series")
	}
	if in.Years != nil {
		parts = append(parts, fmt.Sprintf("from %d-%d", in.Years.From, in.Years.To))
	}

	if len(parts) == 0 {
		return "popular picks"
	}
	return strings.Join(parts, " ")
}

// addGenre appends a genre preserving detection order, suppressing duplicates.
func (in *SearchIntent) addGenre(name string) {
	for _, g := range in.Genres {
		if g == name {
			return
		}
	}
	in.Genres = append(in.Genres, name)
}

// addKeyword appends a keyword, suppressing duplicates.
func (in *SearchIntent) addKeyword(word string) {
	for _, k := range in.Keywords {
		if k == word {
			return
		}
	}
	in.Keywords = append(in.Keywords, word)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
