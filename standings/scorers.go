package standings

import (
	"fmt"
	"sort"

	"github.com/Dosada05/playground-standings/models"
)

// DefaultTopScorersLimit - сколько игроков показывает таблица бомбардиров по умолчанию.
const DefaultTopScorersLimit = 10

// PlayerMatchLine - очки игрока в одном матче.
type PlayerMatchLine struct {
	MatchID      int    `json:"match_id"`
	Day          int    `json:"day"`
	TimeSlot     string `json:"time_slot"`
	OpponentID   int    `json:"opponent_id"`
	OpponentName string `json:"opponent_name"`
	Points       int    `json:"points"`
}

// PlayerTotal - итог игрока по всем матчам снимка.
type PlayerTotal struct {
	PlayerID      int               `json:"player_id"`
	Name          string            `json:"name"`
	TeamID        int               `json:"team_id"`
	TeamName      string            `json:"team_name"`
	TotalPoints   int               `json:"total_points"`
	MatchesPlayed int               `json:"matches_played"`
	Warnings      int               `json:"warnings"`
	Expelled      bool              `json:"expelled"`
	Matches       []PlayerMatchLine `json:"matches"`
}

type TopScorersReport struct {
	Players  []PlayerTotal `json:"players"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// TopScorers суммирует очки игроков по тому же снимку, что и таблицы групп.
// Порядок: очки по убыванию, затем имя, затем ID. limit <= 0 возвращает всех.
func (e *Engine) TopScorers(snap models.PlaygroundSnapshot, limit int) (TopScorersReport, error) {
	p, err := e.prepare(snap)
	if err != nil {
		return TopScorersReport{}, err
	}
	warnings := append([]Warning(nil), p.warnings...)

	matches := make(map[int]models.Match, len(p.matches))
	for _, m := range p.matches {
		matches[m.ID] = m
	}

	totals := make(map[int]*PlayerTotal, len(snap.Players))
	order := make([]int, 0, len(snap.Players))
	for _, pl := range snap.Players {
		if _, dup := totals[pl.ID]; dup {
			warnings = append(warnings, Warning{
				Kind:    WarnDuplicatePlayer,
				TeamIDs: []int{pl.TeamID},
				Message: fmt.Sprintf("player %d listed twice; later entry ignored", pl.ID),
			})
			continue
		}
		team, ok := p.teams[pl.TeamID]
		if !ok {
			warnings = append(warnings, Warning{
				Kind:    WarnUnknownTeam,
				TeamIDs: []int{pl.TeamID},
				Message: fmt.Sprintf("player %d belongs to team %d missing from the roster; skipped", pl.ID, pl.TeamID),
			})
			continue
		}
		totals[pl.ID] = &PlayerTotal{
			PlayerID: pl.ID,
			Name:     pl.Name,
			TeamID:   pl.TeamID,
			TeamName: team.Name,
			Warnings: pl.Warnings,
			Expelled: pl.Expelled,
			Matches:  []PlayerMatchLine{},
		}
		order = append(order, pl.ID)
	}

	type entryKey struct{ match, player int }
	seen := make(map[entryKey]bool, len(snap.PlayerPoints))
	for _, pts := range snap.PlayerPoints {
		total, ok := totals[pts.PlayerID]
		if !ok {
			warnings = append(warnings, Warning{
				Kind:    WarnUnknownPlayer,
				MatchID: pts.MatchID,
				Message: fmt.Sprintf("points for unknown player %d in match %d; skipped", pts.PlayerID, pts.MatchID),
			})
			continue
		}
		m, ok := matches[pts.MatchID]
		switch {
		case !ok || !m.Involves(total.TeamID):
			warnings = append(warnings, Warning{
				Kind:    WarnInvalidPoints,
				MatchID: pts.MatchID,
				TeamIDs: []int{total.TeamID},
				Message: fmt.Sprintf("player %d has points in match %d their team did not play; skipped", pts.PlayerID, pts.MatchID),
			})
			continue
		case pts.Points < 0:
			warnings = append(warnings, Warning{
				Kind:    WarnInvalidPoints,
				MatchID: pts.MatchID,
				TeamIDs: []int{total.TeamID},
				Message: fmt.Sprintf("player %d has negative points %d in match %d; skipped", pts.PlayerID, pts.Points, pts.MatchID),
			})
			continue
		case seen[entryKey{pts.MatchID, pts.PlayerID}]:
			warnings = append(warnings, Warning{
				Kind:    WarnInvalidPoints,
				MatchID: pts.MatchID,
				TeamIDs: []int{total.TeamID},
				Message: fmt.Sprintf("player %d has points in match %d listed twice; later entry ignored", pts.PlayerID, pts.MatchID),
			})
			continue
		}
		seen[entryKey{pts.MatchID, pts.PlayerID}] = true

		opponent := m.OpponentOf(total.TeamID)
		total.TotalPoints += pts.Points
		total.MatchesPlayed++
		total.Matches = append(total.Matches, PlayerMatchLine{
			MatchID:      m.ID,
			Day:          m.Day,
			TimeSlot:     m.TimeSlot,
			OpponentID:   opponent,
			OpponentName: p.teams[opponent].Name,
			Points:       pts.Points,
		})
	}

	players := make([]PlayerTotal, 0, len(order))
	for _, id := range order {
		t := totals[id]
		sort.SliceStable(t.Matches, func(i, j int) bool {
			a, b := t.Matches[i], t.Matches[j]
			if a.Day != b.Day {
				return a.Day < b.Day
			}
			if a.TimeSlot != b.TimeSlot {
				return a.TimeSlot < b.TimeSlot
			}
			return a.MatchID < b.MatchID
		})
		players = append(players, *t)
	}
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.PlayerID < b.PlayerID
	})
	if limit > 0 && len(players) > limit {
		players = players[:limit]
	}
	return TopScorersReport{Players: players, Warnings: warnings}, nil
}
