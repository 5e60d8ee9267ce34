package standings

import (
	"testing"

	"github.com/Dosada05/playground-standings/models"
)

func indexOf(t *testing.T, matches ...models.Match) *pairIndex {
	t.Helper()
	idx, warnings := newPairIndex(matches, DefaultCalendar(), OnlyPhase(PhaseGroupStage))
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	return idx
}

func TestResolveTiebreakCycleKeepsIncomingOrder(t *testing.T) {
	// A beat B, B beat C, C beat A; equal points difference.
	idx := indexOf(t,
		played(1, 1, 1, 2, 21, 15),
		played(2, 2, 2, 3, 21, 15),
		played(3, 3, 3, 1, 21, 15),
	)
	cluster := []TeamStanding{
		{TeamID: 1, WinPercentage: 0.5, PointsDifference: 0},
		{TeamID: 2, WinPercentage: 0.5, PointsDifference: 0},
		{TeamID: 3, WinPercentage: 0.5, PointsDifference: 0},
	}

	got := resolveTiebreak(cluster, idx)
	assertOrder(t, got, 1, 2, 3)
	for _, s := range got {
		if s.HeadToHeadPoints != 2 || s.HeadToHeadGames != 2 {
			t.Fatalf("team %d: expected 2 pts over 2 games, got %d over %d", s.TeamID, s.HeadToHeadPoints, s.HeadToHeadGames)
		}
	}
}

func TestResolveTiebreakWithoutMeetingFallsToPointsDifference(t *testing.T) {
	idx := indexOf(t)
	cluster := []TeamStanding{
		{TeamID: 2, PointsDifference: -3},
		{TeamID: 1, PointsDifference: 10},
	}

	got := resolveTiebreak(cluster, idx)
	assertOrder(t, got, 1, 2)
	for _, s := range got {
		if s.HeadToHeadGames != 0 || s.HeadToHeadPoints != 0 {
			t.Fatalf("expected no head-to-head data, got %+v", s)
		}
	}
}

func TestResolveTiebreakHeadToHeadBeatsPointsDifference(t *testing.T) {
	idx := indexOf(t, played(1, 1, 2, 1, 21, 20))
	cluster := []TeamStanding{
		{TeamID: 1, PointsDifference: 30},
		{TeamID: 2, PointsDifference: 1},
	}

	got := resolveTiebreak(cluster, idx)
	assertOrder(t, got, 2, 1)
	if got[0].HeadToHeadPoints != 2 || got[1].HeadToHeadPoints != 0 {
		t.Fatalf("unexpected head-to-head points: %+v", got)
	}
}

func TestResolveTiebreakIsSinglePass(t *testing.T) {
	// 1 beat 3, 3 beat 2, 2 beat 4. Teams 1, 2 and 3 end on 2 points; among
	// themselves only, 2 would be last, but the tie is settled by points
	// difference without a second head-to-head round.
	idx := indexOf(t,
		played(1, 1, 1, 3, 21, 19),
		played(2, 1, 3, 2, 21, 19),
		played(3, 2, 2, 4, 21, 19),
	)
	cluster := []TeamStanding{
		{TeamID: 1, PointsDifference: 5},
		{TeamID: 2, PointsDifference: 20},
		{TeamID: 3, PointsDifference: 0},
		{TeamID: 4, PointsDifference: -10},
	}

	got := resolveTiebreak(cluster, idx)
	assertOrder(t, got, 2, 1, 3, 4)
}

func TestResolveTiebreakDoesNotMutateInput(t *testing.T) {
	idx := indexOf(t, played(1, 1, 2, 1, 21, 20))
	cluster := []TeamStanding{{TeamID: 1}, {TeamID: 2}}

	resolveTiebreak(cluster, idx)
	if cluster[0].TeamID != 1 || cluster[0].HeadToHeadGames != 0 {
		t.Fatalf("input was modified: %+v", cluster)
	}
}

func TestPairIndexKeepsLatestDuplicate(t *testing.T) {
	early := played(1, 1, 1, 2, 21, 10)
	late := played(2, 3, 2, 1, 21, 10)
	idx, warnings := newPairIndex([]models.Match{late, early}, DefaultCalendar(), OnlyPhase(PhaseGroupStage))

	if len(warnings) != 1 || warnings[0].Kind != WarnDuplicatePairing || warnings[0].MatchID != 2 {
		t.Fatalf("expected one duplicate warning for match 2, got %v", warnings)
	}
	m, ok := idx.lookup(1, 2)
	if !ok || m.ID != 2 {
		t.Fatalf("expected match 2 to be used, got %+v", m)
	}
}

func TestPairIndexSameDayUsesTimeSlotThenID(t *testing.T) {
	a := played(5, 2, 1, 2, 21, 10)
	a.TimeSlot = "20:00 > 20:15"
	b := played(4, 2, 2, 1, 21, 10)
	b.TimeSlot = "19:00 > 19:15"
	idx, _ := newPairIndex([]models.Match{a, b}, DefaultCalendar(), AllPhases)
	if m, _ := idx.lookup(2, 1); m.ID != 5 {
		t.Fatalf("expected later slot to win, got match %d", m.ID)
	}

	c := played(7, 2, 1, 2, 21, 10)
	d := played(8, 2, 2, 1, 21, 10)
	idx, _ = newPairIndex([]models.Match{d, c}, DefaultCalendar(), AllPhases)
	if m, _ := idx.lookup(1, 2); m.ID != 8 {
		t.Fatalf("expected higher ID to win, got match %d", m.ID)
	}
}

func TestPairIndexRespectsPhaseFilter(t *testing.T) {
	idx, warnings := newPairIndex([]models.Match{
		played(1, 1, 1, 2, 21, 10),
		played(2, 5, 2, 1, 21, 10),
	}, DefaultCalendar(), OnlyPhase(PhaseGroupStage))

	if len(warnings) != 0 {
		t.Fatalf("play-in match must not count as duplicate: %v", warnings)
	}
	if m, _ := idx.lookup(1, 2); m.ID != 1 {
		t.Fatalf("expected group-stage match, got %d", m.ID)
	}
}
