package models

import "time"

type Team struct {
	ID           int       `json:"id" db:"id"`
	PlaygroundID int       `json:"playground_id" db:"playground_id"`
	GroupID      int       `json:"group_id" db:"group_id"`
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Group *Group `json:"group,omitempty" db:"-"`
}
