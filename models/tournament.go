package models

// Tournament is the aggregate root; it owns its games, and games refer
// back to it only by ID.
type Tournament struct {
	ID        int    `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	StartDate Date   `json:"start_date" db:"start_date"`

	// Loaded only when children are requested explicitly.
	Games []Game `json:"games,omitempty" db:"-"`
}
