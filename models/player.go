package models

import "time"

// MaxPlayerWarnings - число предупреждений, после которого игрок удаляется с турнира.
const MaxPlayerWarnings = 2

// Player - игрок заявки команды.
type Player struct {
	ID           int       `json:"id" db:"id"`
	PlaygroundID int       `json:"playground_id" db:"playground_id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	Name         string    `json:"name" db:"name"`
	Warnings     int       `json:"warnings" db:"warnings"`
	Expelled     bool      `json:"expelled" db:"expelled"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// PlayerMatchPoints - очки игрока в одном матче. Пара (MatchID, PlayerID) уникальна.
type PlayerMatchPoints struct {
	MatchID  int `json:"match_id" db:"match_id"`
	PlayerID int `json:"player_id" db:"player_id"`
	Points   int `json:"points" db:"points"`
}
