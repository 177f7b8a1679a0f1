// Package gazetteer loads the lookup tables the query parser matches
// names against. Tables ship embedded in the binary and can be replaced
// at load time by pointing the gazetteer path at a directory of YAML
// files, so entries can be extended without a code change.
package gazetteer

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embeddedFS embed.FS

// Store holds the loaded name tables. All entries are lower-case;
// lookups are substring matches over normalized query text. The store
// is read-only after Load and safe for concurrent use.
type Store struct {
	actors     []string
	directors  []string
	franchises []string
	titles     []string
	version    string
}

type tableFile struct {
	Version string   `yaml:"version"`
	Entries []string `yaml:"entries"`
}

// Load builds a store from the directory at path, or from the embedded
// tables when path is empty. Every table file must be present and parse;
// a broken data directory is a startup error, not something to limp past.
func Load(path string) (*Store, error) {
	s := &Store{}

	tables := []struct {
		file string
		dest *[]string
	}{
		{"actors.yaml", &s.actors},
		{"directors.yaml", &s.directors},
		{"franchises.yaml", &s.franchises},
		{"titles.yaml", &s.titles},
	}

	for _, t := range tables {
		var raw []byte
		var err error
		if path != "" {
			raw, err = os.ReadFile(filepath.Join(path, t.file))
		} else {
			raw, err = embeddedFS.ReadFile("data/" + t.file)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read gazetteer table %s: %w", t.file, err)
		}

		var tf tableFile
		if err := yaml.Unmarshal(raw, &tf); err != nil {
			return nil, fmt.Errorf("failed to parse gazetteer table %s: %w", t.file, err)
		}

		entries := make([]string, 0, len(tf.Entries))
		for _, e := range tf.Entries {
			e = strings.ToLower(strings.TrimSpace(e))
			if e != "" {
				entries = append(entries, e)
			}
		}
		*t.dest = entries
		if s.version == "" {
			s.version = tf.Version
		}
	}

	return s, nil
}

// Version returns the version tag of the loaded tables.
func (s *Store) Version() string {
	return s.version
}

// MatchActor returns the first actor name contained in text.
func (s *Store) MatchActor(text string) (string, bool) {
	return matchFirst(s.actors, text)
}

// MatchDirector returns the first director name contained in text.
func (s *Store) MatchDirector(text string) (string, bool) {
	return matchFirst(s.directors, text)
}

// MatchFranchise returns the first franchise name contained in text.
func (s *Store) MatchFranchise(text string) (string, bool) {
	return matchFirst(s.franchises, text)
}

// MatchTitlePrefix returns the known title that text starts with.
// Longer titles are preferred so "john wick chapter 4" does not resolve
// to a shorter overlapping entry first.
func (s *Store) MatchTitlePrefix(text string) (string, bool) {
	best := ""
	for _, title := range s.titles {
		if strings.HasPrefix(text, title) && len(title) > len(best) {
			best = title
		}
	}
	return best, best != ""
}

// Counts reports table sizes, for startup logging.
func (s *Store) Counts() (actors, directors, franchises, titles int) {
	return len(s.actors), len(s.directors), len(s.franchises), len(s.titles)
}

func matchFirst(entries []string, text string) (string, bool) {
	for _, e := range entries {
		if strings.Contains(text, e) {
			return e, true
		}
	}
	return "", false
}
