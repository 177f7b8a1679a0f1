package gazetteer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load embedded tables: %v", err)
	}

	actors, directors, franchises, titles := s.Counts()
	if actors == 0 || directors == 0 || franchises == 0 || titles == 0 {
		t.Errorf("Expected all tables non-empty, got %d/%d/%d/%d", actors, directors, franchises, titles)
	}
	if s.Version() == "" {
		t.Error("Expected a version tag on embedded tables")
	}
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"actors.yaml":     "version: \"test\"\nentries:\n  - Jane Example\n",
		"directors.yaml":  "version: \"test\"\nentries:\n  - Some Director\n",
		"franchises.yaml": "version: \"test\"\nentries:\n  - example saga\n",
		"titles.yaml":     "version: \"test\"\nentries:\n  - example title\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	s, err := Load(dir)
	if err != nil {
		t.Fatalf("Failed to load tables from directory: %v", err)
	}

	// Entries are lower-cased on load.
	if name, ok := s.MatchActor("something with jane example tonight"); !ok || name != "jane example" {
		t.Errorf("Expected jane example, got %q (ok=%v)", name, ok)
	}
	if s.Version() != "test" {
		t.Errorf("Expected version test, got %q", s.Version())
	}
}

func TestLoadMissingTableFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "actors.yaml"), []byte("entries: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("Expected error for incomplete table directory")
	}
}

func TestMatchTitlePrefixPrefersLongest(t *testing.T) {
	s := &Store{titles: []string{"john wick", "john wick chapter 4", "big"}}

	title, ok := s.MatchTitlePrefix("john wick chapter 4 but newer")
	if !ok || title != "john wick chapter 4" {
		t.Errorf("Expected longest prefix, got %q (ok=%v)", title, ok)
	}

	if _, ok := s.MatchTitlePrefix("the big short"); ok {
		t.Error("Expected no match when text does not start with a known title")
	}
}

func TestMatchFirstOrder(t *testing.T) {
	s := &Store{franchises: []string{"star wars", "star trek"}}

	name, ok := s.MatchFranchise("star trek and star wars marathon")
	if !ok {
		t.Fatal("Expected a franchise match")
	}
	// Table order wins, not position in the text.
	if name != "star wars" {
		t.Errorf("Expected star wars (first table entry), got %q", name)
	}
}
