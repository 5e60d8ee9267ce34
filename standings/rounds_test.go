package standings

import (
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/playground-standings/models"
)

func TestDefaultTimeGridSlots(t *testing.T) {
	slots, err := DefaultTimeGrid().Slots()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 14 {
		t.Fatalf("expected 14 slots, got %d: %v", len(slots), slots)
	}
	if slots[0] != "18:00 > 18:15" || slots[1] != "18:20 > 18:35" || slots[13] != "22:20 > 22:35" {
		t.Fatalf("unexpected grid: %v", slots)
	}
	if m, ok := SlotStart(slots[3]); !ok || m != 19*60 {
		t.Fatalf("expected 19:00 start, got %d %v", m, ok)
	}
}

func TestTimeGridRejectsBadInput(t *testing.T) {
	tests := []TimeGrid{
		{Start: "18", LastStart: "22:00", SlotLength: 15 * time.Minute},
		{Start: "18:00", LastStart: "25:00", SlotLength: 15 * time.Minute},
		{Start: "18:00", LastStart: "22:00"},
	}
	for _, g := range tests {
		if _, err := g.Slots(); err == nil {
			t.Fatalf("expected error for %+v", g)
		}
	}
	if _, ok := SlotStart("not a slot"); ok {
		t.Fatalf("expected SlotStart to reject a bare label")
	}
}

func defaultClassifier(t *testing.T) *RoundClassifier {
	t.Helper()
	slots, err := DefaultTimeGrid().Slots()
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewRoundClassifier(slots, DefaultBracketLayout())
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestClassify(t *testing.T) {
	c := defaultClassifier(t)
	tests := []struct {
		slot string
		want Round
	}{
		{"18:00 > 18:15", RoundOf16},
		{"19:00 > 19:15", RoundOf16},
		{"19:20 > 19:35", RoundQuarterfinal},
		{"19:40 > 19:55", RoundQuarterfinal},
		{"20:00 > 20:15", RoundSemifinal},
		{"20:20 > 20:35", RoundThirdPlace},
		{"20:40 > 20:55", RoundFinal},
		{"21:00 > 21:15", RoundOther},
		{"12:00", RoundOther},
		{"", RoundOther},
	}
	for _, tt := range tests {
		if got := c.Classify(tt.slot); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.slot, got, tt.want)
		}
	}
}

func TestNewRoundClassifierNeedsEnoughSlots(t *testing.T) {
	_, err := NewRoundClassifier([]string{"18:00 > 18:15"}, DefaultBracketLayout())
	if !errors.Is(err, ErrInvalidBracketLayout) {
		t.Fatalf("expected ErrInvalidBracketLayout, got %v", err)
	}
}

func TestBuildViewCountsEmptySlots(t *testing.T) {
	c := defaultClassifier(t)
	matches := []models.Match{
		scheduled(3, 7, "20:40 > 20:55", 1, 2),
		scheduled(1, 7, "18:00 > 18:15", 3, 4),
		{ID: 2, Day: 7, TimeSlot: "18:00 > 18:15", Field: "B", TeamAID: 5, TeamBID: 6},
		scheduled(4, 7, "21:40 > 21:55", 7, 8),
	}

	view := c.BuildView(matches)
	if len(view.Rounds) != 6 {
		t.Fatalf("expected five rounds plus other, got %d", len(view.Rounds))
	}
	r16 := view.Rounds[0]
	if r16.Round != RoundOf16 || len(r16.Matches) != 2 || r16.EmptySlots != 6 {
		t.Fatalf("unexpected round of 16: %+v", r16)
	}
	if r16.Matches[0].ID != 1 || r16.Matches[1].ID != 2 {
		t.Fatalf("expected field order A then B, got %d, %d", r16.Matches[0].ID, r16.Matches[1].ID)
	}
	if qf := view.Rounds[1]; len(qf.Matches) != 0 || qf.EmptySlots != 4 || qf.Matches == nil {
		t.Fatalf("unexpected quarterfinal: %+v", qf)
	}
	if final := view.Rounds[4]; final.Round != RoundFinal || final.EmptySlots != 0 || final.Label != "Final" {
		t.Fatalf("unexpected final: %+v", final)
	}
	if other := view.Rounds[5]; other.Round != RoundOther || len(other.Matches) != 1 || other.Matches[0].ID != 4 {
		t.Fatalf("unexpected other round: %+v", other)
	}
}

func TestParseBracketLayout(t *testing.T) {
	layout, err := ParseBracketLayout("quarterfinal:2:4, semifinal:1:2, final:1:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(layout) != 3 || layout[0].Round != RoundQuarterfinal || layout[2].ExpectedMatches != 1 {
		t.Fatalf("unexpected layout: %+v", layout)
	}

	for _, bad := range []string{"", "final:1", "semis:1:2", "final:0:1", "final:1:1,final:1:1", "final:x:1"} {
		if _, err := ParseBracketLayout(bad); !errors.Is(err, ErrInvalidBracketLayout) {
			t.Errorf("ParseBracketLayout(%q): expected ErrInvalidBracketLayout, got %v", bad, err)
		}
	}
}
