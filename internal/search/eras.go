package search

import "github.com/upnext/upnext/internal/catalog"

// EraBucket scopes one discovery call to a year span with tuned quality
// floors. Older buckets carry lower vote floors: catalogs accumulate far
// fewer votes for older titles at the same level of regard.
type EraBucket struct {
	Label      string
	Years      catalog.YearRange
	MaxResults int
	MinRating  float64
	MinVotes   int
}

// GenreProfile is the declarative retrieval configuration for one
// genre: era buckets for the diversified fetch, thresholds for the
// year-filtered and combination variants, and whether well-regarded
// older titles get a ranking bonus.
type GenreProfile struct {
	PrioritizeClassics bool
	MinRating          float64
	MinVotes           int
	Buckets            []EraBucket
}

// voteFloors separates the floor for recent eras from the one for older
// eras, plus a standard floor for year-filtered and combination fetches
// in lower-volume genres. Series floors run lower than movie floors
// across the board.
type voteFloors struct {
	recent   int
	old      int
	standard int
}

var movieVoteFloors = voteFloors{recent: 200, old: 50, standard: 100}
var seriesVoteFloors = voteFloors{recent: 100, old: 30, standard: 50}

func standardBuckets(v voteFloors) []EraBucket {
	return []EraBucket{
		{Label: "modern", Years: catalog.YearRange{From: 2015, To: 2024}, MaxResults: 3, MinRating: 6.0, MinVotes: v.recent},
		{Label: "2000s", Years: catalog.YearRange{From: 2000, To: 2014}, MaxResults: 3, MinRating: 6.5, MinVotes: v.recent},
		{Label: "90s", Years: catalog.YearRange{From: 1990, To: 1999}, MaxResults: 2, MinRating: 7.0, MinVotes: v.old},
		{Label: "80s", Years: catalog.YearRange{From: 1980, To: 1989}, MaxResults: 2, MinRating: 7.0, MinVotes: v.old},
	}
}

// prestigeBuckets adds a deeper pre-80s era for genres whose canon
// reaches further back.
func prestigeBuckets(v voteFloors) []EraBucket {
	return append(standardBuckets(v),
		EraBucket{Label: "70s", Years: catalog.YearRange{From: 1970, To: 1979}, MaxResults: 2, MinRating: 7.5, MinVotes: v.old},
	)
}

// genreProfiles builds the per-genre table for one media kind.
// Threshold tiers: romance/comedy 5.5, horror 5.8, action 6.0, default
// 6.5; high-volume genres use the recent vote floor, the rest the
// standard one.
func genreProfiles(kind catalog.MediaKind) map[string]GenreProfile {
	v := movieVoteFloors
	if kind == catalog.KindSeries {
		v = seriesVoteFloors
	}

	return map[string]GenreProfile{
		catalog.GenreComedy: {
			MinRating: 5.5, MinVotes: v.recent,
			Buckets: standardBuckets(v),
		},
		catalog.GenreRomance: {
			MinRating: 5.5, MinVotes: v.standard,
			Buckets: standardBuckets(v),
		},
		catalog.GenreHorror: {
			MinRating: 5.8, MinVotes: v.standard,
			Buckets: standardBuckets(v),
		},
		catalog.GenreAction: {
			MinRating: 6.0, MinVotes: v.recent,
			Buckets: standardBuckets(v),
		},
		catalog.GenreThriller: {
			MinRating: 6.5, MinVotes: v.recent,
			Buckets: standardBuckets(v),
		},
		catalog.GenreSciFi: {
			MinRating: 6.5, MinVotes: v.recent,
			Buckets: standardBuckets(v),
		},
		catalog.GenreFantasy: {
			MinRating: 6.5, MinVotes: v.standard,
			Buckets: standardBuckets(v),
		},
		catalog.GenreDrama: {
			PrioritizeClassics: true,
			MinRating:          6.5, MinVotes: v.recent,
			Buckets: prestigeBuckets(v),
		},
		catalog.GenreCrime: {
			PrioritizeClassics: true,
			MinRating:          6.5, MinVotes: v.standard,
			Buckets: prestigeBuckets(v),
		},
	}
}

// defaultProfile covers genres without a dedicated entry.
func defaultProfile(kind catalog.MediaKind) GenreProfile {
	v := movieVoteFloors
	if kind == catalog.KindSeries {
		v = seriesVoteFloors
	}
	return GenreProfile{
		MinRating: 6.5,
		MinVotes:  v.standard,
		Buckets:   standardBuckets(v),
	}
}

// romComExcludes lists genres that dilute a romantic-comedy blend; the
// combination fetch filters them out.
var romComExcludes = []string{
	catalog.GenreDocumentary,
	catalog.GenreDrama,
	catalog.GenreHistory,
	catalog.GenreWestern,
}
