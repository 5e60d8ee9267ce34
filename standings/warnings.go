package standings

import "fmt"

// WarningKind - вид проблемы в данных, которую движок обошёл.
type WarningKind string

const (
	WarnUnknownTeam      WarningKind = "unknown_team"
	WarnUnknownGroup     WarningKind = "unknown_group"
	WarnInvalidMatch     WarningKind = "invalid_match"
	WarnInvalidWinner    WarningKind = "invalid_winner"
	WarnDuplicatePairing WarningKind = "duplicate_pairing"
	WarnDuplicateTeam    WarningKind = "duplicate_team"
	WarnUnknownPlayer    WarningKind = "unknown_player"
	WarnDuplicatePlayer  WarningKind = "duplicate_player"
	WarnInvalidPoints    WarningKind = "invalid_player_points"
)

// Warning - некритичная несогласованность во входном снимке.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	MatchID int         `json:"match_id,omitempty"`
	TeamIDs []int       `json:"team_ids,omitempty"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}
