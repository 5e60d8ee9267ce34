package models

import "time"

// Playground представляет одну редакцию турнира со своими группами, командами и матчами.
type Playground struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PlaygroundSnapshot is a consistent read of everything the standings engine needs.
// Repositories build it inside a single read transaction. Players and
// PlayerPoints may be nil; only the top-scorers table reads them.
type PlaygroundSnapshot struct {
	Playground   Playground          `json:"playground"`
	Groups       []Group             `json:"groups"`
	Teams        []Team              `json:"teams"`
	Matches      []Match             `json:"matches"`
	Players      []Player            `json:"players,omitempty"`
	PlayerPoints []PlayerMatchPoints `json:"player_points,omitempty"`
}
