package models

import "time"

// Match - матч между двумя командами одного playground.
// Счёт и победитель пусты, пока результат не внесён.
type Match struct {
	ID           int       `json:"id" db:"id"`
	PlaygroundID int       `json:"playground_id" db:"playground_id"`
	Day          int       `json:"day" db:"day"`
	TimeSlot     string    `json:"time_slot" db:"time_slot"`
	Field        string    `json:"field" db:"field"`
	TeamAID      int       `json:"team_a_id" db:"team_a_id"`
	TeamBID      int       `json:"team_b_id" db:"team_b_id"`
	ScoreA       *int      `json:"score_a,omitempty" db:"score_a"`
	ScoreB       *int      `json:"score_b,omitempty" db:"score_b"`
	WinnerID     *int      `json:"winner_id,omitempty" db:"winner_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	TeamA *Team `json:"team_a,omitempty" db:"-"`
	TeamB *Team `json:"team_b,omitempty" db:"-"`
}

// IsDecided reports whether a winner has been assigned.
func (m Match) IsDecided() bool {
	return m.WinnerID != nil
}

// Involves reports whether the team plays on either side of the match.
func (m Match) Involves(teamID int) bool {
	return m.TeamAID == teamID || m.TeamBID == teamID
}

// OpponentOf returns the other side's team ID, or 0 if the team does not play in the match.
func (m Match) OpponentOf(teamID int) int {
	switch teamID {
	case m.TeamAID:
		return m.TeamBID
	case m.TeamBID:
		return m.TeamAID
	}
	return 0
}

// ScoresFor returns the points scored and conceded by the given side.
// Missing scores count as zero.
func (m Match) ScoresFor(teamID int) (scored, conceded int) {
	a, b := derefInt(m.ScoreA), derefInt(m.ScoreB)
	if teamID == m.TeamBID {
		return b, a
	}
	return a, b
}

// DeriveWinner возвращает ID победителя по счёту: побеждает строго больший счёт.
// При равенстве победителя нет (nil).
func DeriveWinner(teamAID, teamBID, scoreA, scoreB int) *int {
	switch {
	case scoreA > scoreB:
		id := teamAID
		return &id
	case scoreB > scoreA:
		id := teamBID
		return &id
	default:
		return nil
	}
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
