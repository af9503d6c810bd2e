package model

import "database/sql"

// Movie is a row of the `movies` table.  Movies are created only by the
// fixture seed and are read-only afterwards.
//
// Fields:
//  ID          - primary key identifier.
//  Title       - display title.
//  Description - free-form synopsis.
//  Trailer     - URL of a trailer.
//  Year        - release year.
//  Rating      - average rating.
//  GenreID     - genres.id, NULL when the movie has no genre.
//  DirectorID  - directors.id, NULL when the movie has no director.
type Movie struct {
	ID          int64         // movies.id
	Title       string        // movies.title
	Description string        // movies.description
	Trailer     string        // movies.trailer
	Year        int           // movies.year
	Rating      float64       // movies.rating
	GenreID     sql.NullInt64 // movies.genre_id
	DirectorID  sql.NullInt64 // movies.director_id
}
