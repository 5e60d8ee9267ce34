package standings

import "github.com/Dosada05/playground-standings/models"

// pointsPerWin - очки в таблице группы за победу.
const pointsPerWin = 2

// TeamStanding - показатели команды по её матчам. Пересчитывается на каждый
// запрос и не хранится.
type TeamStanding struct {
	TeamID           int     `json:"team_id"`
	TeamName         string  `json:"team_name"`
	GroupID          int     `json:"group_id"`
	MatchesPlayed    int     `json:"matches_played"`
	MatchesWon       int     `json:"matches_won"`
	PointsScored     int     `json:"points_scored"`
	PointsConceded   int     `json:"points_conceded"`
	WinPercentage    float64 `json:"win_percentage"`
	PointsDifference int     `json:"points_difference"`
	GroupPoints      int     `json:"group_points"`
	// GroupPosition - место в своей группе с единицы, ноль до ранжирования.
	GroupPosition int `json:"group_position,omitempty"`
	// Счётчики личных встреч последнего тай-брейка.
	HeadToHeadPoints int `json:"head_to_head_points,omitempty"`
	HeadToHeadGames  int `json:"head_to_head_games,omitempty"`
}

// MatchesLost - решённые матчи, которые команда не выиграла.
func (s TeamStanding) MatchesLost() int {
	return s.MatchesPlayed - s.MatchesWon
}

// Aggregate folds the team's matches into a TeamStanding. Only decided matches
// inside the phase filter count; matches the team does not play in are ignored.
func Aggregate(team models.Team, matches []models.Match, cal Calendar, filter PhaseFilter) TeamStanding {
	s := TeamStanding{
		TeamID:   team.ID,
		TeamName: team.Name,
		GroupID:  team.GroupID,
	}
	for _, m := range matches {
		if !m.Involves(team.ID) || !decided(m) {
			continue
		}
		if !filter.Allows(cal.PhaseOf(m.Day)) {
			continue
		}
		s.MatchesPlayed++
		if *m.WinnerID == team.ID {
			s.MatchesWon++
		}
		scored, conceded := m.ScoresFor(team.ID)
		s.PointsScored += scored
		s.PointsConceded += conceded
	}
	s.PointsDifference = s.PointsScored - s.PointsConceded
	s.GroupPoints = s.MatchesWon * pointsPerWin
	if s.MatchesPlayed > 0 {
		s.WinPercentage = float64(s.MatchesWon) / float64(s.MatchesPlayed)
	}
	return s
}

// decided: у матча есть победитель, и это одна из двух команд.
func decided(m models.Match) bool {
	return m.WinnerID != nil && (*m.WinnerID == m.TeamAID || *m.WinnerID == m.TeamBID)
}
