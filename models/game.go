package models

import "time"

// Game belongs to exactly one tournament, referenced by value through
// TournamentID. There is no back-pointer to the Tournament object.
type Game struct {
	ID           int       `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	StartTime    time.Time `json:"start_time" db:"start_time"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
}
