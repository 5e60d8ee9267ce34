package standings

import (
	"testing"

	"github.com/Dosada05/playground-standings/models"
)

// played builds a finished match on the given day; the winner follows the scores.
func played(id, day, teamA, teamB, scoreA, scoreB int) models.Match {
	a, b := scoreA, scoreB
	return models.Match{
		ID:       id,
		Day:      day,
		TimeSlot: "19:00 > 19:15",
		Field:    "A",
		TeamAID:  teamA,
		TeamBID:  teamB,
		ScoreA:   &a,
		ScoreB:   &b,
		WinnerID: models.DeriveWinner(teamA, teamB, scoreA, scoreB),
	}
}

func scheduled(id, day int, slot string, teamA, teamB int) models.Match {
	return models.Match{ID: id, Day: day, TimeSlot: slot, Field: "A", TeamAID: teamA, TeamBID: teamB}
}

func teamIDs(rows []TeamStanding) []int {
	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.TeamID
	}
	return ids
}

func assertOrder(t *testing.T, got []TeamStanding, want ...int) {
	t.Helper()
	ids := teamIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("expected %d teams, got %v", len(want), ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, ids)
		}
	}
}

// snapshotOf builds a playground with one group per entry of sizes; team IDs
// are groupID*10+n so they are easy to read in failures.
func snapshotOf(sizes ...int) models.PlaygroundSnapshot {
	snap := models.PlaygroundSnapshot{
		Playground: models.Playground{ID: 1, Name: "Summer 3vs3"},
		Groups:     []models.Group{},
		Teams:      []models.Team{},
		Matches:    []models.Match{},
	}
	colors := []models.GroupColor{models.ColorRed, models.ColorBlue, models.ColorGreen, models.ColorYellow, models.ColorPurple}
	for g, size := range sizes {
		groupID := g + 1
		snap.Groups = append(snap.Groups, models.Group{ID: groupID, PlaygroundID: 1, Name: "Group", Color: colors[g%len(colors)]})
		for n := 1; n <= size; n++ {
			snap.Teams = append(snap.Teams, models.Team{ID: groupID*10 + n, PlaygroundID: 1, GroupID: groupID})
		}
	}
	return snap
}

// roundRobinByRank makes every lower-numbered team of each group beat every
// higher-numbered one, with a margin that grows with the group ID.
func roundRobinByRank(snap *models.PlaygroundSnapshot) {
	id := len(snap.Matches) + 1
	for _, g := range snap.Groups {
		var members []int
		for _, t := range snap.Teams {
			if t.GroupID == g.ID {
				members = append(members, t.ID)
			}
		}
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				snap.Matches = append(snap.Matches, played(id, 1, members[i], members[j], 20+g.ID, 10))
				id++
			}
		}
	}
}
