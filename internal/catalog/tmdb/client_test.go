package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/upnext/upnext/internal/catalog"
	"github.com/upnext/upnext/internal/config"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.TMDBConfig{
		APIKey:  "test-key",
		BaseURL: serverURL,
		Timeout: 5,
	}, zerolog.Nop())
}

func TestDiscoverMovies(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"page": 1,
			"results": [
				{"id": 603, "title": "The Matrix", "release_date": "1999-03-31", "vote_average": 8.2, "vote_count": 25000, "genre_ids": [28, 878], "original_language": "en"},
				{"id": 604, "title": "The Matrix Reloaded", "release_date": "2003-05-15", "vote_average": 7.0, "vote_count": 12000, "genre_ids": [28, 878], "original_language": "en"}
			],
			"total_pages": 1,
			"total_results": 2
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	records, err := client.Discover(context.Background(), catalog.DiscoverRequest{
		Kind:      catalog.KindMovie,
		GenreIDs:  []int{28, 878},
		Years:     &catalog.YearRange{From: 1990, To: 2009},
		MinRating: 6.5,
		MinVotes:  200,
		Sort:      catalog.SortRating,
	})
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if gotPath != "/discover/movie" {
		t.Errorf("Expected path /discover/movie, got %s", gotPath)
	}
	if got := gotQuery["with_genres"]; len(got) != 1 || got[0] != "28,878" {
		t.Errorf("Expected with_genres=28,878, got %v", got)
	}
	if got := gotQuery["primary_release_date.gte"]; len(got) != 1 || got[0] != "1990-01-01" {
		t.Errorf("Expected primary_release_date.gte=1990-01-01, got %v", got)
	}
	if got := gotQuery["primary_release_date.lte"]; len(got) != 1 || got[0] != "2009-12-31" {
		t.Errorf("Expected primary_release_date.lte=2009-12-31, got %v", got)
	}
	if got := gotQuery["vote_average.gte"]; len(got) != 1 || got[0] != "6.5" {
		t.Errorf("Expected vote_average.gte=6.5, got %v", got)
	}
	if got := gotQuery["vote_count.gte"]; len(got) != 1 || got[0] != "200" {
		t.Errorf("Expected vote_count.gte=200, got %v", got)
	}
	if got := gotQuery["sort_by"]; len(got) != 1 || got[0] != "vote_average.desc" {
		t.Errorf("Expected sort_by=vote_average.desc, got %v", got)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Title != "The Matrix" || records[0].Kind != catalog.KindMovie {
		t.Errorf("Unexpected first record: %+v", records[0])
	}
	if records[0].Year() != 1999 {
		t.Errorf("Expected year 1999, got %d", records[0].Year())
	}
}

func TestDiscoverSeriesUsesAirDate(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"page": 1, "results": [{"id": 1396, "name": "Breaking Bad", "first_air_date": "2008-01-20", "vote_average": 8.9, "vote_count": 12000}], "total_pages": 1, "total_results": 1}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	records, err := client.Discover(context.Background(), catalog.DiscoverRequest{
		Kind:  catalog.KindSeries,
		Years: &catalog.YearRange{From: 2000, To: 2009},
		Sort:  catalog.SortPopularity,
	})
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if gotPath != "/discover/tv" {
		t.Errorf("Expected path /discover/tv, got %s", gotPath)
	}
	if got := gotQuery["first_air_date.gte"]; len(got) != 1 || got[0] != "2000-01-01" {
		t.Errorf("Expected first_air_date.gte=2000-01-01, got %v", got)
	}
	if got := gotQuery["sort_by"]; len(got) != 1 || got[0] != "popularity.desc" {
		t.Errorf("Expected sort_by=popularity.desc, got %v", got)
	}

	if len(records) != 1 || records[0].Title != "Breaking Bad" || records[0].Kind != catalog.KindSeries {
		t.Errorf("Unexpected records: %+v", records)
	}
}

func TestSearchSkipsPersons(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/multi" {
			t.Errorf("Expected path /search/multi, got %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"page": 1,
			"results": [
				{"id": 603, "title": "The Matrix", "media_type": "movie", "release_date": "1999-03-31", "vote_average": 8.2},
				{"id": 6384, "name": "Keanu Reeves", "media_type": "person"},
				{"id": 1396, "name": "Breaking Bad", "media_type": "tv", "first_air_date": "2008-01-20", "vote_average": 8.9}
			],
			"total_pages": 1,
			"total_results": 3
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	records, err := client.Search(context.Background(), "matrix")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records (person skipped), got %d", len(records))
	}
	if records[0].Kind != catalog.KindMovie {
		t.Errorf("Expected movie kind from media_type, got %s", records[0].Kind)
	}
	if records[1].Kind != catalog.KindSeries {
		t.Errorf("Expected series kind from media_type, got %s", records[1].Kind)
	}
}

func TestSearchPerson(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/person" {
			t.Errorf("Expected path /search/person, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "tom hanks" {
			t.Errorf("Expected query=tom hanks, got %q", got)
		}
		w.Write([]byte(`{"page": 1, "results": [{"id": 31, "name": "Tom Hanks", "popularity": 84.6}, {"id": 999, "name": "Tom Hanks Jr", "popularity": 1.2}], "total_pages": 1, "total_results": 2}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	people, err := client.SearchPerson(context.Background(), "tom hanks")
	if err != nil {
		t.Fatalf("SearchPerson failed: %v", err)
	}

	if len(people) != 2 {
		t.Fatalf("Expected 2 people, got %d", len(people))
	}
	if people[0].ID != 31 || people[0].Popularity != 84.6 {
		t.Errorf("Unexpected first person: %+v", people[0])
	}
}

func TestPersonCredits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/person/31/movie_credits" {
			t.Errorf("Expected path /person/31/movie_credits, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"cast": [{"id": 13, "title": "Forrest Gump", "release_date": "1994-07-06", "vote_average": 8.5, "vote_count": 27000, "order": 0}, {"id": 862, "title": "Toy Story", "release_date": "1995-10-30", "vote_average": 8.0, "vote_count": 18000, "order": 1}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	credits, err := client.PersonCredits(context.Background(), 31, catalog.KindMovie)
	if err != nil {
		t.Fatalf("PersonCredits failed: %v", err)
	}

	if len(credits) != 2 {
		t.Fatalf("Expected 2 credits, got %d", len(credits))
	}
	if credits[0].Title != "Forrest Gump" || credits[0].CastOrder != 0 {
		t.Errorf("Unexpected first credit: %+v", credits[0])
	}
	if credits[0].Kind != catalog.KindMovie {
		t.Errorf("Expected movie kind, got %s", credits[0].Kind)
	}
}

func TestPersonCreditsSeriesPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/person/31/tv_credits" {
			t.Errorf("Expected path /person/31/tv_credits, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"cast": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	if _, err := client.PersonCredits(context.Background(), 31, catalog.KindSeries); err != nil {
		t.Fatalf("PersonCredits failed: %v", err)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"rate limited", http.StatusTooManyRequests, `{"status_code": 25, "status_message": "rate limit"}`, catalog.ErrUpstreamUnavailable},
		{"server error", http.StatusInternalServerError, `{}`, catalog.ErrUpstreamUnavailable},
		{"bad request", http.StatusUnauthorized, `{"status_code": 7, "status_message": "invalid key"}`, catalog.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			_, err := client.Discover(context.Background(), catalog.DiscoverRequest{Kind: catalog.KindMovie})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{truncated`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Search(context.Background(), "matrix")
	if !errors.Is(err, catalog.ErrUnparsableResponse) {
		t.Errorf("Expected ErrUnparsableResponse, got %v", err)
	}
}

func TestUnreachableUpstream(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")

	_, err := client.Search(context.Background(), "matrix")
	if !errors.Is(err, catalog.ErrUpstreamUnavailable) {
		t.Errorf("Expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestUnconfiguredClient(t *testing.T) {
	client := NewClient(config.TMDBConfig{BaseURL: "http://example.invalid", Timeout: 5}, zerolog.Nop())

	if client.IsConfigured() {
		t.Error("Expected client without API key to be unconfigured")
	}
	_, err := client.Discover(context.Background(), catalog.DiscoverRequest{Kind: catalog.KindMovie})
	if !errors.Is(err, catalog.ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest, got %v", err)
	}
}
