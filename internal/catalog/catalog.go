// Package catalog defines the minimal surface the search pipeline
// requires from an external movie/series metadata and discovery service.
package catalog

import (
	"context"
	"errors"
	"strconv"
)

var (
	ErrInvalidRequest      = errors.New("catalog: invalid request")
	ErrUpstreamUnavailable = errors.New("catalog: upstream unavailable")
	ErrUnparsableResponse  = errors.New("catalog: unparsable response")
)

// MediaKind identifies the type of a catalog item.
type MediaKind string

const (
	KindMovie  MediaKind = "movie"
	KindSeries MediaKind = "series"
)

// SortOrder selects how a discovery call orders its results.
type SortOrder string

const (
	SortRating     SortOrder = "rating"
	SortPopularity SortOrder = "popularity"
)

// YearRange is an inclusive span of release years.
type YearRange struct {
	From int
	To   int
}

// Contains reports whether year falls inside the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.From && year <= r.To
}

// DiscoverRequest describes a filtered discovery call.
type DiscoverRequest struct {
	Kind            MediaKind
	GenreIDs        []int
	ExcludeGenreIDs []int
	Years           *YearRange
	MinRating       float64
	MinVotes        int
	Language        string // ISO 639-1 original-language filter
	Region          string // ISO 3166-1 origin-country filter
	Sort            SortOrder
}

// Record is one normalized catalog item.
// ReleaseDate holds the release date for movies and the first-air date
// for series, as YYYY-MM-DD; it may be empty.
type Record struct {
	ID          int
	Title       string
	Overview    string
	ReleaseDate string
	Rating      float64
	VoteCount   int
	GenreIDs    []int
	Kind        MediaKind // may be empty when the endpoint implies it
	Language    string
}

// Year returns the release year, or 0 when the date is missing or malformed.
func (r Record) Year() int {
	if len(r.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(r.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// Person is one person-search match.
type Person struct {
	ID         int
	Name       string
	Popularity float64
}

// Credit is one entry from a person's filmography.
type Credit struct {
	Record
	CastOrder int
}

// Client is the external catalog capability consumed by the search pipeline.
type Client interface {
	Discover(ctx context.Context, req DiscoverRequest) ([]Record, error)
	Search(ctx context.Context, query string) ([]Record, error)
	SearchPerson(ctx context.Context, name string) ([]Person, error)
	PersonCredits(ctx context.Context, personID int, kind MediaKind) ([]Credit, error)
}
