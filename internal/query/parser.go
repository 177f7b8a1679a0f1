package query

import (
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/upnext/upnext/internal/catalog"
	"github.com/upnext/upnext/internal/query/gazetteer"
)

// detector inspects normalized query text and fills intent fields.
// Returning true stops the chain: the detector fully determined the
// search and nothing further should be extracted.
type detector func(intent *SearchIntent, text string) bool

// Parser extracts structured search intent from free text. It is a pure
// function of its input and the loaded knowledge tables; safe for
// concurrent use.
type Parser struct {
	gaz       *gazetteer.Store
	detectors []detector
	logger    zerolog.Logger
}

// NewParser creates a parser over the given gazetteer store.
func NewParser(gaz *gazetteer.Store, logger zerolog.Logger) *Parser {
	p := &Parser{
		gaz:    gaz,
		logger: logger.With().Str("component", "parser").Logger(),
	}

	// Fixed precedence. Director and franchise short-circuit; everything
	// downstream reads fields set upstream (mood gates similarity,
	// actor and similarity gate keywords).
	p.detectors = []detector{
		p.detectContentType,
		p.detectDirector,
		p.detectFranchise,
		p.detectYearRange,
		p.detectMood,
		p.detectActor,
		p.detectSimilarTitle,
		p.detectGenres,
		p.detectCountry,
		p.detectKeywords,
	}
	return p
}

// Parse extracts a SearchIntent from raw query text. It never fails:
// absence of a signal simply leaves the corresponding field unset.
func (p *Parser) Parse(text string) *SearchIntent {
	norm := normalize(text)
	intent := &SearchIntent{Raw: text}

	for _, detect := range p.detectors {
		if detect(intent, norm) {
			break
		}
	}

	p.logger.Debug().
		Str("query", text).
		Str("strategy", string(intent.Strategy())).
		Str("description", intent.Description()).
		Msg("Parsed query")

	return intent
}

// normalize lower-cases and collapses whitespace once; all detectors
// match over the result.
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func (p *Parser) detectContentType(intent *SearchIntent, text string) bool {
	for _, hint := range seriesHints {
		if containsWord(text, hint) {
			intent.ContentType = ContentTypeSeries
			return false
		}
	}
	for _, hint := range movieHints {
		if containsWord(text, hint) {
			intent.ContentType = ContentTypeMovie
			return false
		}
	}
	return false
}

func (p *Parser) detectDirector(intent *SearchIntent, text string) bool {
	if name, ok := p.gaz.MatchDirector(text); ok {
		intent.DirectorName = name
		return true
	}
	if m := directorPattern.FindStringSubmatch(text); m != nil {
		if name := truncateAtStopWord(m[1], 3); name != "" {
			intent.DirectorName = name
			return true
		}
	}
	return false
}

func (p *Parser) detectFranchise(intent *SearchIntent, text string) bool {
	if name, ok := p.gaz.MatchFranchise(text); ok {
		intent.FranchiseName = name
		return true
	}
	if m := franchisePattern.FindStringSubmatch(text); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" && name != "the" {
			intent.FranchiseName = name
			return true
		}
	}
	return false
}

func (p *Parser) detectYearRange(intent *SearchIntent, text string) bool {
	// Decade phrases are plain substring matches so "80s", "'80s" and
	// "1980s" all resolve.
	for _, entry := range decadeSpans {
		if strings.Contains(text, entry.phrase) {
			span := entry.years
			intent.Years = &span
			return false
		}
	}
	for _, entry := range relativeSpans {
		if containsWord(text, entry.phrase) {
			span := entry.years
			intent.Years = &span
			return false
		}
	}
	if m := explicitYearPattern.FindStringSubmatch(text); m != nil {
		year := atoi(m[1])
		intent.Years = &catalog.YearRange{From: year, To: year}
		return false
	}
	return false
}

func (p *Parser) detectMood(intent *SearchIntent, text string) bool {
	for _, entry := range moodTable {
		for _, phrase := range entry.phrases {
			if containsWord(text, phrase) {
				intent.Mood = entry.mood
				return false
			}
		}
	}
	return false
}

func (p *Parser) detectActor(intent *SearchIntent, text string) bool {
	if name, ok := p.gaz.MatchActor(text); ok {
		intent.ActorName = name
		return false
	}
	if m := actorPattern.FindStringSubmatch(text); m != nil {
		name := truncateAtStopWord(m[1], 3)
		if name == "" {
			return false
		}
		// "with dark humor" must not read "dark" as a person.
		first := strings.Fields(name)[0]
		if _, isMood := moodWords[first]; isMood {
			return false
		}
		intent.ActorName = name
	}
	return false
}

func (p *Parser) detectSimilarTitle(intent *SearchIntent, text string) bool {
	// Mood and similarity are mutually exclusive, and an actor match
	// already explains the query.
	if intent.ActorName != "" || intent.Mood != "" {
		return false
	}

	for _, phrase := range similarityPhrases {
		idx := indexWord(text, phrase)
		if idx < 0 {
			continue
		}

		rest := strings.Trim(text[idx+len(phrase):], " .,!?;:'\"")
		if rest == "" {
			return false
		}

		if title, ok := p.gaz.MatchTitlePrefix(rest); ok {
			intent.SimilarToTitle = title
			return false
		}

		// Best-effort free-form extraction; lossy for multi-clause titles.
		if title := truncateAtStopWord(rest, 6); title != "" {
			intent.SimilarToTitle = title
		}
		return false
	}
	return false
}

func (p *Parser) detectGenres(intent *SearchIntent, text string) bool {
	for _, entry := range genreTable {
		extras := entry.movie
		if intent.ContentType == ContentTypeSeries {
			extras = entry.series
		}
		if matchesAny(text, entry.keywords) || (intent.ContentType != "" && matchesAny(text, extras)) {
			intent.addGenre(entry.genre)
		}
	}

	// Romantic-comedy phrasing overrides whatever generic extraction
	// found; this is the only place a set field is replaced.
	for _, phrase := range romComPhrases {
		if containsWord(text, phrase) {
			intent.Genres = []string{catalog.GenreRomance, catalog.GenreComedy}
			break
		}
	}
	return false
}

func matchesAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if containsWord(text, phrase) {
			return true
		}
	}
	return false
}

func (p *Parser) detectCountry(intent *SearchIntent, text string) bool {
	for _, entry := range countryTable {
		for _, phrase := range entry.phrases {
			if containsWord(text, phrase) {
				intent.Country = entry.code
				return false
			}
		}
	}
	return false
}

func (p *Parser) detectKeywords(intent *SearchIntent, text string) bool {
	if intent.ActorName != "" || intent.SimilarToTitle != "" {
		return false
	}

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, tok := range tokens {
		if len(tok) <= 3 {
			continue
		}
		if _, stopped := keywordStopList[tok]; stopped {
			continue
		}
		intent.addKeyword(tok)
	}
	return false
}

// truncateAtStopWord trims captured text at the first stop word and
// caps it at maxWords tokens.
func truncateAtStopWord(s string, maxWords int) string {
	words := strings.Fields(strings.Trim(s, " .,!?;:'\""))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:'\"")
		if _, stop := titleStopWords[w]; stop {
			break
		}
		if w == "" {
			continue
		}
		out = append(out, w)
		if len(out) == maxWords {
			break
		}
	}
	return strings.Join(out, " ")
}

// indexWord finds phrase in text requiring word boundaries on both
// sides; returns -1 when absent.
func indexWord(text, phrase string) int {
	for start := 0; start <= len(text)-len(phrase); {
		i := strings.Index(text[start:], phrase)
		if i < 0 {
			return -1
		}
		i += start
		end := i + len(phrase)
		leftOK := i == 0 || !isWordChar(text[i-1])
		rightOK := end == len(text) || !isWordChar(text[end])
		if leftOK && rightOK {
			return i
		}
		start = i + 1
	}
	return -1
}

func containsWord(text, phrase string) bool {
	return indexWord(text, phrase) >= 0
}

func isWordChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '\''
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
