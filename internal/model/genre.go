package model

// Genre is a row of the `genres` table.
type Genre struct {
	ID   int64  // genres.id
	Name string // genres.name
}
