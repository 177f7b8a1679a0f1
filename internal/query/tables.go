package query

import (
	"regexp"

	"github.com/upnext/upnext/internal/catalog"
)

// The tables below are ordered slices, not maps: when two entries could
// match the same text, the first one in table order wins, and that order
// must stay reproducible across runs.

var seriesHints = []string{
	"tv show", "tv shows", "tv series", "series", "show", "shows",
	"episode", "episodes", "season", "binge", "sitcom", "sitcoms",
	"miniseries", "docuseries",
}

var movieHints = []string{
	"movie night", "movie", "movies", "film", "films", "cinema", "flick",
}

type spanEntry struct {
	phrase string
	years  catalog.YearRange
}

// Decade phrases match plain substrings so "80s", "'80s" and "1980s"
// all land on the same span.
var decadeSpans = []spanEntry{
	{"50s", catalog.YearRange{From: 1950, To: 1959}},
	{"60s", catalog.YearRange{From: 1960, To: 1969}},
	{"70s", catalog.YearRange{From: 1970, To: 1979}},
	{"80s", catalog.YearRange{From: 1980, To: 1989}},
	{"90s", catalog.YearRange{From: 1990, To: 1999}},
	{"2000s", catalog.YearRange{From: 2000, To: 2009}},
	{"2010s", catalog.YearRange{From: 2010, To: 2019}},
	{"2020s", catalog.YearRange{From: 2020, To: 2029}},
}

var relativeSpans = []spanEntry{
	{"classic", catalog.YearRange{From: 1970, To: 1999}},
	{"modern", catalog.YearRange{From: 2010, To: 2024}},
	{"golden age", catalog.YearRange{From: 1930, To: 1960}},
}

var explicitYearPattern = regexp.MustCompile(`\b(19[5-9][0-9]|20[0-2][0-9])\b`)

type moodEntry struct {
	mood    string
	phrases []string
}

var moodTable = []moodEntry{
	{"feel-good", []string{"feel good", "feel-good", "uplifting", "heartwarming", "wholesome"}},
	{"dark", []string{"dark", "gritty", "bleak", "disturbing"}},
	{"light", []string{"lighthearted", "light-hearted", "light", "easy watching"}},
	{"intense", []string{"intense", "gripping", "edge of my seat", "adrenaline"}},
	{"emotional", []string{"emotional", "tearjerker", "tear-jerker", "moving", "makes me cry"}},
	{"smart", []string{"smart", "clever", "thought-provoking", "mind-bending", "cerebral"}},
}

// moodWords is the flattened set of single-word mood phrases, used to
// reject pattern-captured "actors" that are really mood descriptions.
var moodWords = buildMoodWords()

func buildMoodWords() map[string]struct{} {
	words := make(map[string]struct{})
	for _, entry := range moodTable {
		for _, phrase := range entry.phrases {
			if !containsSpace(phrase) {
				words[phrase] = struct{}{}
			}
		}
	}
	return words
}

func containsSpace(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			return true
		}
	}
	return false
}

type genreEntry struct {
	genre    string
	keywords []string
	series   []string // extra synonyms, only when the query hints at series
	movie    []string // extra synonyms, only when the query hints at movies
}

var genreTable = []genreEntry{
	{catalog.GenreComedy, []string{"comedy", "comedies", "funny", "hilarious", "laugh"}, []string{"sitcom", "sitcoms"}, nil},
	{catalog.GenreAction, []string{"action", "explosions", "car chases"}, nil, nil},
	{catalog.GenreRomance, []string{"romance", "romantic", "love story", "love stories"}, nil, nil},
	{catalog.GenreHorror, []string{"horror", "scary", "spooky", "slasher", "haunted"}, nil, nil},
	{catalog.GenreDrama, []string{"drama", "dramas"}, nil, nil},
	{catalog.GenreThriller, []string{"thriller", "thrillers", "suspense", "suspenseful"}, nil, nil},
	{catalog.GenreSciFi, []string{"sci-fi", "scifi", "science fiction", "space opera"}, nil, nil},
	{catalog.GenreFantasy, []string{"fantasy", "magical", "wizards", "dragons"}, nil, nil},
	{catalog.GenreCrime, []string{"crime", "heist", "detective", "gangster", "mafia"}, []string{"procedural", "police procedural"}, nil},
	{catalog.GenreSuperhero, []string{"superhero", "superheroes", "comic book"}, nil, nil},
	{catalog.GenreFamily, []string{"kids", "children", "family friendly", "family-friendly"}, nil, nil},
	{catalog.GenreAnimation, []string{"animated", "animation", "anime", "cartoon", "cartoons"}, nil, nil},
	{catalog.GenreDocumentary, []string{"documentary", "documentaries"}, nil, nil},
}

// romComPhrases force genres to exactly [Romance, Comedy], overriding
// whatever generic genre extraction found.
var romComPhrases = []string{
	"rom-com", "rom-coms", "rom com", "rom coms", "romcom", "romcoms",
	"romantic comedy", "romantic comedies",
}

type countryEntry struct {
	code    string
	display string
	phrases []string
}

var countryTable = []countryEntry{
	{"KR", "Korean", []string{"korean", "k-drama", "k-dramas", "kdrama", "kdramas", "korea"}},
	{"JP", "Japanese", []string{"japanese", "anime", "japan"}},
	{"GB", "British", []string{"british", "bbc"}},
	{"IN", "Indian", []string{"bollywood", "indian", "hindi"}},
	{"MX", "Mexican", []string{"telenovela", "telenovelas", "mexican"}},
	{"ES", "Spanish", []string{"spanish", "spain"}},
	{"FR", "French", []string{"french", "france"}},
	{"DE", "German", []string{"german"}},
	{"IT", "Italian", []string{"italian"}},
	{"TR", "Turkish", []string{"turkish"}},
}

var countryDisplayNames = buildCountryDisplayNames()

func buildCountryDisplayNames() map[string]string {
	names := make(map[string]string, len(countryTable))
	for _, entry := range countryTable {
		names[entry.code] = entry.display
	}
	return names
}

// similarityPhrases are checked in order; the generic "like" comes last
// so the more specific forms claim the match first.
var similarityPhrases = []string{
	"movies like", "films like", "shows like", "series like",
	"something like", "similar to", "such as", "like",
}

// titleStopWords truncate free-form title extraction. This is a lossy
// heuristic: multi-clause titles containing these words get cut short.
var titleStopWords = map[string]struct{}{
	"but": {}, "and": {}, "or": {}, "from": {}, "in": {}, "on": {},
	"with": {}, "that": {}, "which": {}, "where": {},
}

// keywordStopList filters generic domain words out of fallback keywords.
var keywordStopList = map[string]struct{}{
	"movie": {}, "movies": {}, "film": {}, "films": {}, "show": {},
	"shows": {}, "series": {}, "watch": {}, "watching": {}, "good": {},
	"best": {}, "great": {}, "want": {}, "wanna": {}, "need": {},
	"something": {}, "anything": {}, "tonight": {}, "recommend": {},
	"recommendation": {}, "recommendations": {}, "please": {},
	"really": {}, "about": {}, "with": {}, "like": {}, "that": {},
	"this": {}, "what": {}, "some": {}, "have": {}, "just": {},
	"time": {}, "night": {}, "binge": {}, "stuff": {}, "find": {},
	"looking": {}, "maybe": {},
}

var directorPattern = regexp.MustCompile(`(?:directed by|from the director of|by the director of)\s+(.+)`)

var franchisePattern = regexp.MustCompile(`([a-z0-9'.&-]+(?: [a-z0-9'.&-]+)?)\s+(?:universe|saga|franchise)\b`)

var actorPattern = regexp.MustCompile(`\b(?:starring|featuring|actress|actor|with)\s+(.+)`)
