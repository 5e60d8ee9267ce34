package brackets

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/playground-standings/models"
	"github.com/Dosada05/playground-standings/standings"
)

func groupsOf(sizes ...int) []models.Group {
	groups := make([]models.Group, 0, len(sizes))
	for g, size := range sizes {
		group := models.Group{ID: g + 1, Name: "G"}
		for n := 1; n <= size; n++ {
			group.Teams = append(group.Teams, models.Team{ID: (g+1)*10 + n, GroupID: g + 1})
		}
		groups = append(groups, group)
	}
	return groups
}

func defaultGrid(t *testing.T) []string {
	t.Helper()
	slots, err := standings.DefaultTimeGrid().Slots()
	if err != nil {
		t.Fatal(err)
	}
	return slots
}

func TestGenerateScheduleDefaultTournament(t *testing.T) {
	gen := NewRoundRobinGenerator(standings.DefaultCalendar(), defaultGrid(t), nil, nil)

	matches, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{Groups: groupsOf(7, 7, 6, 6, 6)})
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}
	if len(matches) != 21+21+15+15+15 {
		t.Fatalf("expected 87 matches, got %d", len(matches))
	}

	pairs := make(map[[2]int]int)
	fields := make(map[fieldKey]bool)
	busy := make(map[slotKey]map[int]bool)
	for _, m := range matches {
		if m.TeamAID/10 != m.GroupID || m.TeamBID/10 != m.GroupID {
			t.Fatalf("match crosses groups: %+v", m)
		}
		pairs[[2]int{m.TeamAID, m.TeamBID}]++

		fk := fieldKey{m.Day, m.TimeSlot, m.Field}
		if fields[fk] {
			t.Fatalf("field %s double booked on day %d at %s", m.Field, m.Day, m.TimeSlot)
		}
		fields[fk] = true

		sk := slotKey{m.Day, m.TimeSlot}
		if busy[sk] == nil {
			busy[sk] = make(map[int]bool)
		}
		if busy[sk][m.TeamAID] || busy[sk][m.TeamBID] {
			t.Fatalf("team plays twice on day %d at %s", m.Day, m.TimeSlot)
		}
		busy[sk][m.TeamAID], busy[sk][m.TeamBID] = true, true

		if standings.DefaultCalendar().PhaseOf(m.Day) != standings.PhaseGroupStage {
			t.Fatalf("match scheduled outside the group stage: %+v", m)
		}
		start, ok := standings.SlotStart(m.TimeSlot)
		if !ok {
			t.Fatalf("bad slot label %q", m.TimeSlot)
		}
		if m.Day != 1 && start < 19*60 {
			t.Fatalf("day %d match starts before 19:00: %s", m.Day, m.TimeSlot)
		}
	}
	for pair, n := range pairs {
		if n != 1 {
			t.Fatalf("pair %v scheduled %d times", pair, n)
		}
	}

	first := matches[0]
	if first.Day != 1 || first.TimeSlot != "18:00 > 18:15" || first.Field != "A" {
		t.Fatalf("expected first match on day 1 at 18:00 field A, got %+v", first)
	}
}

func TestGenerateScheduleRespectsExistingMatches(t *testing.T) {
	gen := NewRoundRobinGenerator(standings.DefaultCalendar(), defaultGrid(t), []int{1}, nil)
	existing := []models.Match{{Day: 1, TimeSlot: "18:00 > 18:15", Field: "A", TeamAID: 90, TeamBID: 91}}

	matches, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{
		Groups:   groupsOf(2),
		Existing: existing,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0].TimeSlot != "18:00 > 18:15" || matches[0].Field != "B" {
		t.Fatalf("expected the free field B at 18:00, got %+v", matches[0])
	}
}

func TestGenerateScheduleNotEnoughSlots(t *testing.T) {
	grid := []string{"19:00 > 19:15"}
	gen := NewRoundRobinGenerator(standings.DefaultCalendar(), grid, []int{2}, []string{"A"})

	_, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{Groups: groupsOf(3)})
	if !errors.Is(err, ErrNotEnoughSlots) {
		t.Fatalf("expected ErrNotEnoughSlots, got %v", err)
	}
}

func TestGenerateScheduleTeamConflictExhaustsDay(t *testing.T) {
	// Four places for three pairings, but every pairing of a three-team group
	// shares a team with the other two, so the third one has no free slot.
	grid := []string{"19:00 > 19:15", "19:20 > 19:35"}
	gen := NewRoundRobinGenerator(standings.DefaultCalendar(), grid, []int{2}, nil)

	_, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{Groups: groupsOf(3)})
	if !errors.Is(err, ErrNotEnoughSlots) {
		t.Fatalf("expected ErrNotEnoughSlots, got %v", err)
	}
}

func TestGenerateScheduleRejectsTinyGroup(t *testing.T) {
	gen := NewRoundRobinGenerator(standings.DefaultCalendar(), defaultGrid(t), nil, nil)

	_, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{Groups: groupsOf(1)})
	if !errors.Is(err, ErrNotEnoughTeams) {
		t.Fatalf("expected ErrNotEnoughTeams, got %v", err)
	}
}

func TestGenerateScheduleHonoursContext(t *testing.T) {
	gen := NewRoundRobinGenerator(standings.DefaultCalendar(), defaultGrid(t), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := gen.GenerateSchedule(ctx, GenerateScheduleParams{Groups: groupsOf(4)}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
