package standings

import (
	"reflect"
	"testing"

	"github.com/Dosada05/playground-standings/models"
)

func scorersSnapshot() models.PlaygroundSnapshot {
	snap := snapshotOf(3)
	for i := range snap.Teams {
		snap.Teams[i].Name = map[int]string{11: "Lions", 12: "Bears", 13: "Hawks"}[snap.Teams[i].ID]
	}
	snap.Matches = append(snap.Matches,
		played(1, 1, 11, 12, 21, 15),
		played(2, 2, 13, 11, 10, 21),
		scheduled(3, 3, "19:00 > 19:15", 12, 13),
	)
	snap.Players = []models.Player{
		{ID: 101, TeamID: 11, Name: "Ivan"},
		{ID: 102, TeamID: 11, Name: "Anna", Warnings: 1},
		{ID: 201, TeamID: 12, Name: "Boris"},
		{ID: 301, TeamID: 13, Name: "Vera", Warnings: 2, Expelled: true},
	}
	snap.PlayerPoints = []models.PlayerMatchPoints{
		{MatchID: 2, PlayerID: 101, Points: 12},
		{MatchID: 1, PlayerID: 101, Points: 9},
		{MatchID: 1, PlayerID: 102, Points: 12},
		{MatchID: 2, PlayerID: 102, Points: 9},
		{MatchID: 1, PlayerID: 201, Points: 15},
		{MatchID: 2, PlayerID: 301, Points: 10},
	}
	return snap
}

func TestEngineTopScorers(t *testing.T) {
	report, err := newTestEngine(t).TopScorers(scorersSnapshot(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Warnings) != 0 {
		t.Fatalf("unexpected warnings %v", report.Warnings)
	}

	var ids []int
	for _, p := range report.Players {
		ids = append(ids, p.PlayerID)
	}
	// Анна и Иван оба набрали 21: порядок решает имя.
	if want := []int{102, 101, 201, 301}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("expected order %v, got %v", want, ids)
	}

	ivan := report.Players[1]
	if ivan.TotalPoints != 21 || ivan.MatchesPlayed != 2 || ivan.TeamName != "Lions" {
		t.Fatalf("unexpected total %+v", ivan)
	}
	if ivan.Matches[0].MatchID != 1 || ivan.Matches[0].OpponentName != "Bears" || ivan.Matches[1].OpponentID != 13 {
		t.Fatalf("match lines must follow the calendar: %+v", ivan.Matches)
	}
	if vera := report.Players[3]; !vera.Expelled || vera.Warnings != 2 {
		t.Fatalf("discipline must be carried over: %+v", vera)
	}
}

func TestEngineTopScorersLimit(t *testing.T) {
	report, err := newTestEngine(t).TopScorers(scorersSnapshot(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Players) != 2 || report.Players[0].PlayerID != 102 {
		t.Fatalf("expected the two leaders, got %+v", report.Players)
	}
}

func TestEngineTopScorersWithoutPlayers(t *testing.T) {
	snap := snapshotOf(2)
	report, err := newTestEngine(t).TopScorers(snap, DefaultTopScorersLimit)
	if err != nil {
		t.Fatal(err)
	}
	if report.Players == nil || len(report.Players) != 0 {
		t.Fatalf("expected an empty, non-nil table, got %#v", report.Players)
	}
}

func TestEngineTopScorersWarnings(t *testing.T) {
	snap := scorersSnapshot()
	snap.Players = append(snap.Players,
		models.Player{ID: 101, TeamID: 11, Name: "Ivan again"},
		models.Player{ID: 401, TeamID: 99, Name: "Ghost"},
	)
	snap.PlayerPoints = append(snap.PlayerPoints,
		models.PlayerMatchPoints{MatchID: 1, PlayerID: 999, Points: 5},
		models.PlayerMatchPoints{MatchID: 1, PlayerID: 301, Points: 5},
		models.PlayerMatchPoints{MatchID: 77, PlayerID: 201, Points: 5},
		models.PlayerMatchPoints{MatchID: 1, PlayerID: 101, Points: 40},
		models.PlayerMatchPoints{MatchID: 1, PlayerID: 201, Points: -3},
	)

	report, err := newTestEngine(t).TopScorers(snap, 0)
	if err != nil {
		t.Fatal(err)
	}
	kinds := make(map[WarningKind]int)
	for _, w := range report.Warnings {
		kinds[w.Kind]++
	}
	want := map[WarningKind]int{WarnDuplicatePlayer: 1, WarnUnknownTeam: 1, WarnUnknownPlayer: 1, WarnInvalidPoints: 4}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("expected warnings %v, got %v", want, report.Warnings)
	}
	for _, p := range report.Players {
		switch p.PlayerID {
		case 101:
			if p.TotalPoints != 21 || p.Name != "Ivan" {
				t.Fatalf("duplicate entries must not count: %+v", p)
			}
		case 201:
			if p.TotalPoints != 15 {
				t.Fatalf("invalid points must not count: %+v", p)
			}
		case 401:
			t.Fatalf("player of an unknown team must be skipped")
		}
	}
}
