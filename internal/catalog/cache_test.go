package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// countingClient counts upstream calls so tests can observe cache hits.
type countingClient struct {
	discoverCalls int
	searchCalls   int
	personCalls   int
	creditsCalls  int
	err           error
}

func (c *countingClient) Discover(ctx context.Context, req DiscoverRequest) ([]Record, error) {
	c.discoverCalls++
	if c.err != nil {
		return nil, c.err
	}
	return []Record{{ID: 1, Title: "Result", Kind: req.Kind}}, nil
}

func (c *countingClient) Search(ctx context.Context, query string) ([]Record, error) {
	c.searchCalls++
	if c.err != nil {
		return nil, c.err
	}
	return []Record{{ID: 2, Title: query}}, nil
}

func (c *countingClient) SearchPerson(ctx context.Context, name string) ([]Person, error) {
	c.personCalls++
	if c.err != nil {
		return nil, c.err
	}
	return []Person{{ID: 31, Name: name}}, nil
}

func (c *countingClient) PersonCredits(ctx context.Context, personID int, kind MediaKind) ([]Credit, error) {
	c.creditsCalls++
	if c.err != nil {
		return nil, c.err
	}
	return []Credit{{Record: Record{ID: 3}, CastOrder: 0}}, nil
}

func TestCacheGetSet(t *testing.T) {
	cache := NewCache(CacheConfig{TTL: time.Minute, MaxItems: 10})

	if _, ok := cache.Get("missing"); ok {
		t.Error("Expected miss for unknown key")
	}

	cache.Set("key", "value")
	got, ok := cache.Get("key")
	if !ok || got.(string) != "value" {
		t.Errorf("Expected value, got %v (ok=%v)", got, ok)
	}
}

func TestCacheExpiry(t *testing.T) {
	cache := NewCache(CacheConfig{TTL: 10 * time.Millisecond, MaxItems: 10})

	cache.Set("key", "value")
	time.Sleep(20 * time.Millisecond)

	if _, ok := cache.Get("key"); ok {
		t.Error("Expected expired item to miss")
	}
}

func TestCacheClear(t *testing.T) {
	cache := NewCache(CacheConfig{TTL: time.Minute, MaxItems: 10})

	cache.Set("a", 1)
	cache.Set("b", 2)
	cache.Clear()

	if cache.Len() != 0 {
		t.Errorf("Expected empty cache, got %d items", cache.Len())
	}
}

func TestCacheEnforcesMaxItems(t *testing.T) {
	cache := NewCache(CacheConfig{TTL: time.Minute, MaxItems: 10})

	for i := 0; i < 1000; i++ {
		cache.Set(fmt.Sprintf("key-%d", i), i)
	}

	if got := cache.Len(); got > 10 {
		t.Errorf("Expected at most 10 live items, got %d", got)
	}

	// The latest insertion survives the eviction churn.
	if _, ok := cache.Get("key-999"); !ok {
		t.Error("Expected the newest entry to be retained")
	}
}

func TestCachedClientDiscoverReadThrough(t *testing.T) {
	inner := &countingClient{}
	client := NewCachedClient(inner, CacheConfig{TTL: time.Minute, MaxItems: 10})

	req := DiscoverRequest{Kind: KindMovie, GenreIDs: []int{35}}

	for i := 0; i < 3; i++ {
		records, err := client.Discover(context.Background(), req)
		if err != nil {
			t.Fatalf("Discover failed: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("Expected 1 record, got %d", len(records))
		}
	}

	if inner.discoverCalls != 1 {
		t.Errorf("Expected 1 upstream call, got %d", inner.discoverCalls)
	}
}

func TestCachedClientDistinctRequests(t *testing.T) {
	inner := &countingClient{}
	client := NewCachedClient(inner, CacheConfig{TTL: time.Minute, MaxItems: 10})

	_, _ = client.Discover(context.Background(), DiscoverRequest{Kind: KindMovie, GenreIDs: []int{35}})
	_, _ = client.Discover(context.Background(), DiscoverRequest{Kind: KindSeries, GenreIDs: []int{35}})
	_, _ = client.Discover(context.Background(), DiscoverRequest{Kind: KindMovie, GenreIDs: []int{28}})

	if inner.discoverCalls != 3 {
		t.Errorf("Expected 3 upstream calls for distinct requests, got %d", inner.discoverCalls)
	}
}

func TestCachedClientErrorsNotCached(t *testing.T) {
	inner := &countingClient{err: ErrUpstreamUnavailable}
	client := NewCachedClient(inner, CacheConfig{TTL: time.Minute, MaxItems: 10})

	for i := 0; i < 2; i++ {
		if _, err := client.Search(context.Background(), "matrix"); !errors.Is(err, ErrUpstreamUnavailable) {
			t.Fatalf("Expected upstream error, got %v", err)
		}
	}
	if inner.searchCalls != 2 {
		t.Errorf("Expected errors to bypass cache, got %d calls", inner.searchCalls)
	}

	// Once the upstream recovers the result is cached again.
	inner.err = nil
	_, _ = client.Search(context.Background(), "matrix")
	_, _ = client.Search(context.Background(), "matrix")
	if inner.searchCalls != 3 {
		t.Errorf("Expected recovered result to cache, got %d calls", inner.searchCalls)
	}
}

func TestCachedClientPersonFlow(t *testing.T) {
	inner := &countingClient{}
	client := NewCachedClient(inner, CacheConfig{TTL: time.Minute, MaxItems: 10})

	_, _ = client.SearchPerson(context.Background(), "tom hanks")
	_, _ = client.SearchPerson(context.Background(), "tom hanks")
	if inner.personCalls != 1 {
		t.Errorf("Expected 1 person search call, got %d", inner.personCalls)
	}

	_, _ = client.PersonCredits(context.Background(), 31, KindMovie)
	_, _ = client.PersonCredits(context.Background(), 31, KindSeries)
	_, _ = client.PersonCredits(context.Background(), 31, KindMovie)
	if inner.creditsCalls != 2 {
		t.Errorf("Expected per-kind credit caching, got %d calls", inner.creditsCalls)
	}
}

func TestYearRangeContains(t *testing.T) {
	r := YearRange{From: 1980, To: 1989}

	tests := []struct {
		year int
		want bool
	}{
		{1980, true},
		{1985, true},
		{1989, true},
		{1979, false},
		{1990, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.year); got != tt.want {
			t.Errorf("Contains(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestRecordYear(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"1999-03-31", 1999},
		{"2008", 2008},
		{"", 0},
		{"19", 0},
		{"abcd-01-01", 0},
	}

	for _, tt := range tests {
		r := Record{ReleaseDate: tt.date}
		if got := r.Year(); got != tt.want {
			t.Errorf("Year(%q) = %d, want %d", tt.date, got, tt.want)
		}
	}
}
