// Package fixture loads the static catalog dataset that seeds the store on
// every start.  The default dataset is embedded in the binary; a YAML file
// with the same shape can replace it.
package fixture

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed movies.yaml
var defaultDataset []byte

// NamedRecord is a director or genre entry.
type NamedRecord struct {
	PK   int64  `yaml:"pk"`
	Name string `yaml:"name"`
}

// MovieRecord is a movie entry.  Nil references mean the movie has no
// genre or director.
type MovieRecord struct {
	PK          int64   `yaml:"pk"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Trailer     string  `yaml:"trailer"`
	Year        int     `yaml:"year"`
	Rating      float64 `yaml:"rating"`
	GenreID     *int64  `yaml:"genre_id"`
	DirectorID  *int64  `yaml:"director_id"`
}

// Dataset is the whole fixture: three ordered lists of records.
type Dataset struct {
	Movies    []MovieRecord `yaml:"movies"`
	Directors []NamedRecord `yaml:"directors"`
	Genres    []NamedRecord `yaml:"genres"`
}

// Load reads the dataset at path, or the embedded dataset when path is empty.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Parse(bytes.NewReader(defaultDataset))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()
	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes and validates a YAML dataset.  Unknown keys and values of
// the wrong type (e.g. a non-numeric year) are rejected.
func Parse(r io.Reader) (*Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("fixture is empty")
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks that primary keys are positive and unique per list, that
// names and titles are present, and that every movie reference points at a
// director or genre of the same dataset.
func (ds *Dataset) Validate() error {
	directors, err := namedKeys("directors", ds.Directors)
	if err != nil {
		return err
	}
	genres, err := namedKeys("genres", ds.Genres)
	if err != nil {
		return err
	}

	seen := make(map[int64]bool, len(ds.Movies))
	for i, m := range ds.Movies {
		if m.PK <= 0 {
			return fmt.Errorf("movies[%d]: pk must be positive, got %d", i, m.PK)
		}
		if seen[m.PK] {
			return fmt.Errorf("movies[%d]: duplicate pk %d", i, m.PK)
		}
		seen[m.PK] = true
		if strings.TrimSpace(m.Title) == "" {
			return fmt.Errorf("movies[%d]: title is required", i)
		}
		if m.DirectorID != nil && !directors[*m.DirectorID] {
			return fmt.Errorf("movie %d: unknown director_id %d", m.PK, *m.DirectorID)
		}
		if m.GenreID != nil && !genres[*m.GenreID] {
			return fmt.Errorf("movie %d: unknown genre_id %d", m.PK, *m.GenreID)
		}
	}
	return nil
}

func namedKeys(list string, recs []NamedRecord) (map[int64]bool, error) {
	keys := make(map[int64]bool, len(recs))
	for i, r := range recs {
		if r.PK <= 0 {
			return nil, fmt.Errorf("%s[%d]: pk must be positive, got %d", list, i, r.PK)
		}
		if keys[r.PK] {
			return nil, fmt.Errorf("%s[%d]: duplicate pk %d", list, i, r.PK)
		}
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("%s[%d]: name is required", list, i)
		}
		keys[r.PK] = true
	}
	return keys, nil
}
