package fixture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedDataset(t *testing.T) {
	ds, err := Load("")
	require.NoError(t, err)

	assert.Len(t, ds.Movies, 15)
	assert.Len(t, ds.Directors, 6)
	assert.Len(t, ds.Genres, 8)

	first := ds.Movies[0]
	assert.Equal(t, int64(1), first.PK)
	assert.Equal(t, "Pulp Fiction", first.Title)
	assert.Equal(t, 1994, first.Year)
	assert.InDelta(t, 8.9, first.Rating, 1e-9)
	require.NotNil(t, first.DirectorID)
	assert.Equal(t, int64(1), *first.DirectorID)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
directors:
  - {pk: 1, name: Agnes Varda}
genres:
  - {pk: 1, name: Documentary}
movies:
  - {pk: 10, title: The Gleaners and I, year: 2000, rating: 7.7, genre_id: 1, director_id: 1}
  - {pk: 11, title: Orphan Reel}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	ds, err := Load(path)
	require.NoError(t, err)
	require.Len(t, ds.Movies, 2)
	assert.Nil(t, ds.Movies[1].GenreID)
	assert.Nil(t, ds.Movies[1].DirectorID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open fixture")
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "empty document",
			doc:     "",
			wantErr: "empty",
		},
		{
			name:    "non numeric year",
			doc:     "movies:\n  - {pk: 1, title: X, year: soon}\n",
			wantErr: "decode fixture",
		},
		{
			name:    "non numeric rating",
			doc:     "movies:\n  - {pk: 1, title: X, rating: great}\n",
			wantErr: "decode fixture",
		},
		{
			name:    "unknown field",
			doc:     "movies:\n  - {pk: 1, title: X, runtime: 120}\n",
			wantErr: "runtime",
		},
		{
			name:    "duplicate director pk",
			doc:     "directors:\n  - {pk: 1, name: A}\n  - {pk: 1, name: B}\n",
			wantErr: "duplicate pk 1",
		},
		{
			name:    "missing genre name",
			doc:     "genres:\n  - {pk: 3}\n",
			wantErr: "name is required",
		},
		{
			name:    "zero movie pk",
			doc:     "movies:\n  - {pk: 0, title: X}\n",
			wantErr: "pk must be positive",
		},
		{
			name:    "dangling director reference",
			doc:     "directors:\n  - {pk: 1, name: A}\nmovies:\n  - {pk: 1, title: X, director_id: 9}\n",
			wantErr: "unknown director_id 9",
		},
		{
			name:    "dangling genre reference",
			doc:     "movies:\n  - {pk: 1, title: X, genre_id: 4}\n",
			wantErr: "unknown genre_id 4",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
