package tmdb

// DiscoverResponse is the response from TMDB discover and multi-search endpoints.
type DiscoverResponse struct {
	Page         int          `json:"page"`
	Results      []ItemResult `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

// ItemResult is a movie or TV item from TMDB results. Movie and TV
// payloads differ only in the title and date field names, so one struct
// covers both; multi-search additionally tags each row with MediaType.
type ItemResult struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	GenreIDs         []int   `json:"genre_ids"`
	MediaType        string  `json:"media_type"`
	OriginalLanguage string  `json:"original_language"`
}

// PersonSearchResponse is the response from TMDB person search.
type PersonSearchResponse struct {
	Page         int            `json:"page"`
	Results      []PersonResult `json:"results"`
	TotalResults int            `json:"total_results"`
}

// PersonResult is a person from TMDB person search results.
type PersonResult struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Popularity float64 `json:"popularity"`
}

// CreditsResponse is the response from TMDB person credits endpoints.
type CreditsResponse struct {
	ID   int            `json:"id"`
	Cast []CreditResult `json:"cast"`
}

// CreditResult is one cast credit from a person's filmography.
type CreditResult struct {
	ItemResult
	Character string `json:"character"`
	Order     int    `json:"order"`
}

// ErrorResponse is the TMDB API error format.
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
