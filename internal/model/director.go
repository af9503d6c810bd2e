package model

// Director is a row of the `directors` table.
type Director struct {
	ID   int64  // directors.id
	Name string // directors.name
}
