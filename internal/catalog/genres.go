package catalog

// Canonical genre names used throughout the pipeline. Movie and series
// catalogs assign different ids to some genres (e.g. Sci-Fi), so lookups
// are always scoped to a media kind.
const (
	GenreAction      = "Action"
	GenreAnimation   = "Animation"
	GenreComedy      = "Comedy"
	GenreCrime       = "Crime"
	GenreDocumentary = "Documentary"
	GenreDrama       = "Drama"
	GenreFamily      = "Family"
	GenreFantasy     = "Fantasy"
	GenreHistory     = "History"
	GenreHorror      = "Horror"
	GenreMystery     = "Mystery"
	GenreRomance     = "Romance"
	GenreSciFi       = "Sci-Fi"
	GenreThriller    = "Thriller"
	GenreWestern     = "Western"

	// GenreSuperhero has no direct catalog id; the coordinator resolves
	// it through a keyword-augmented action search.
	GenreSuperhero = "Superhero"
)

var movieGenreIDs = map[string]int{
	GenreAction:      28,
	GenreAnimation:   16,
	GenreComedy:      35,
	GenreCrime:       80,
	GenreDocumentary: 99,
	GenreDrama:       18,
	GenreFamily:      10751,
	GenreFantasy:     14,
	GenreHistory:     36,
	GenreHorror:      27,
	GenreMystery:     9648,
	GenreRomance:     10749,
	GenreSciFi:       878,
	GenreThriller:    53,
	GenreWestern:     37,
}

// Series catalogs fold several movie genres into combined buckets
// (Action & Adventure, Sci-Fi & Fantasy) and have no standalone horror
// or romance at all, so those land on their closest series bucket
// (mystery and drama respectively) rather than failing the lookup.
var seriesGenreIDs = map[string]int{
	GenreAction:      10759,
	GenreAnimation:   16,
	GenreComedy:      35,
	GenreCrime:       80,
	GenreDocumentary: 99,
	GenreDrama:       18,
	GenreFamily:      10751,
	GenreFantasy:     10765,
	GenreHorror:      9648,
	GenreMystery:     9648,
	GenreRomance:     18,
	GenreSciFi:       10765,
	GenreThriller:    9648,
	GenreWestern:     37,
}

var movieGenreNames = map[int]string{
	28:    GenreAction,
	16:    GenreAnimation,
	35:    GenreComedy,
	80:    GenreCrime,
	99:    GenreDocumentary,
	18:    GenreDrama,
	10751: GenreFamily,
	14:    GenreFantasy,
	36:    GenreHistory,
	27:    GenreHorror,
	9648:  GenreMystery,
	10749: GenreRomance,
	878:   GenreSciFi,
	53:    GenreThriller,
	37:    GenreWestern,
}

// Shared series ids resolve to the more common name.
var seriesGenreNames = map[int]string{
	10759: GenreAction,
	16:    GenreAnimation,
	35:    GenreComedy,
	80:    GenreCrime,
	99:    GenreDocumentary,
	18:    GenreDrama,
	10751: GenreFamily,
	10765: GenreSciFi,
	9648:  GenreMystery,
	37:    GenreWestern,
}

// GenreID maps a canonical genre name to the catalog id for the given kind.
func GenreID(kind MediaKind, name string) (int, bool) {
	if kind == KindSeries {
		id, ok := seriesGenreIDs[name]
		return id, ok
	}
	id, ok := movieGenreIDs[name]
	return id, ok
}

// GenreName maps a catalog genre id back to a canonical name.
func GenreName(kind MediaKind, id int) (string, bool) {
	if kind == KindSeries {
		name, ok := seriesGenreNames[id]
		return name, ok
	}
	name, ok := movieGenreNames[id]
	return name, ok
}

// GenreNames maps a list of catalog genre ids to canonical names,
// dropping any id the table does not know.
func GenreNames(kind MediaKind, ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := GenreName(kind, id); ok {
			names = append(names, name)
		}
	}
	return names
}
