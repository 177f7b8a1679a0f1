package catalog

import "testing"

func TestGenreIDKindScoped(t *testing.T) {
	tests := []struct {
		kind   MediaKind
		name   string
		wantID int
		wantOK bool
	}{
		{KindMovie, GenreSciFi, 878, true},
		{KindSeries, GenreSciFi, 10765, true},
		{KindMovie, GenreAction, 28, true},
		{KindSeries, GenreAction, 10759, true},
		{KindMovie, GenreComedy, 35, true},
		{KindSeries, GenreComedy, 35, true},
		// Series catalogs have no standalone horror or romance; both
		// fold onto their closest series bucket.
		{KindSeries, GenreHorror, 9648, true},
		{KindSeries, GenreRomance, 18, true},
		{KindSeries, GenreHistory, 0, false},
		{KindMovie, GenreSuperhero, 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.name, func(t *testing.T) {
			id, ok := GenreID(tt.kind, tt.name)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("GenreID(%s, %s) = %d, %v; want %d, %v", tt.kind, tt.name, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestGenreNames(t *testing.T) {
	names := GenreNames(KindMovie, []int{28, 878, 12345})
	if len(names) != 2 || names[0] != GenreAction || names[1] != GenreSciFi {
		t.Errorf("Unexpected names: %v", names)
	}

	// Shared series ids resolve to one canonical name.
	if name, ok := GenreName(KindSeries, 10765); !ok || name != GenreSciFi {
		t.Errorf("Expected Sci-Fi for series id 10765, got %q", name)
	}
}
