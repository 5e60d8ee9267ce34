package standings

import (
	"errors"
	"fmt"
	"strconv"
)

// Phase - стадия турнира, к которой относится игровой день.
type Phase string

const (
	PhaseGroupStage Phase = "group_stage"
	PhasePlayIn     Phase = "play_in"
	PhaseFinals     Phase = "finals"
)

var ErrUnknownPhase = errors.New("unknown phase")

// ParsePhase разбирает значение query-параметра.
func ParsePhase(s string) (Phase, error) {
	switch p := Phase(s); p {
	case PhaseGroupStage, PhasePlayIn, PhaseFinals:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPhase, s)
}

// PhaseFilter ограничивает фазы, которые участвуют в расчёте.
// Пустой фильтр пропускает все фазы.
type PhaseFilter []Phase

// AllPhases используется для общей статистики команды.
var AllPhases PhaseFilter

func OnlyPhase(p Phase) PhaseFilter {
	return PhaseFilter{p}
}

func (f PhaseFilter) Allows(p Phase) bool {
	if len(f) == 0 {
		return true
	}
	for _, allowed := range f {
		if allowed == p {
			return true
		}
	}
	return false
}

// DaySpec описывает один игровой день турнирной недели.
type DaySpec struct {
	Day   int    `json:"day"`
	Phase Phase  `json:"phase"`
	Label string `json:"label"`
	// EarliestSlot is the first time-slot start ("HH:MM") the scheduler may use on this day.
	EarliestSlot string `json:"earliest_slot,omitempty"`
}

// Calendar сопоставляет номерам дней фазы и подписи.
type Calendar struct {
	days  []DaySpec
	byDay map[int]DaySpec
}

var defaultDays = []DaySpec{
	{Day: 1, Phase: PhaseGroupStage, Label: "Sunday", EarliestSlot: "18:00"},
	{Day: 2, Phase: PhaseGroupStage, Label: "Monday", EarliestSlot: "19:00"},
	{Day: 3, Phase: PhaseGroupStage, Label: "Tuesday", EarliestSlot: "19:00"},
	{Day: 4, Phase: PhaseGroupStage, Label: "Wednesday", EarliestSlot: "19:00"},
	{Day: 5, Phase: PhasePlayIn, Label: "Thursday - Play-in", EarliestSlot: "18:00"},
	{Day: 6, Phase: PhaseGroupStage, Label: "Friday", EarliestSlot: "19:00"},
	{Day: 7, Phase: PhaseFinals, Label: "Sunday - Finals", EarliestSlot: "18:00"},
}

// DefaultCalendar - стандартная неделя турнира.
func DefaultCalendar() Calendar {
	cal, _ := NewCalendar(defaultDays)
	return cal
}

func NewCalendar(days []DaySpec) (Calendar, error) {
	byDay := make(map[int]DaySpec, len(days))
	for _, d := range days {
		if d.Day <= 0 {
			return Calendar{}, fmt.Errorf("calendar day must be positive, got %d", d.Day)
		}
		if _, err := ParsePhase(string(d.Phase)); err != nil {
			return Calendar{}, fmt.Errorf("calendar day %d: %w", d.Day, err)
		}
		if _, dup := byDay[d.Day]; dup {
			return Calendar{}, fmt.Errorf("calendar day %d declared twice", d.Day)
		}
		byDay[d.Day] = d
	}
	specs := make([]DaySpec, len(days))
	copy(specs, days)
	return Calendar{days: specs, byDay: byDay}, nil
}

// PhaseOf возвращает фазу дня. Дни вне таблицы считаются групповым этапом.
func (c Calendar) PhaseOf(day int) Phase {
	if d, ok := c.byDay[day]; ok {
		return d.Phase
	}
	return PhaseGroupStage
}

func (c Calendar) Label(day int) string {
	if d, ok := c.byDay[day]; ok && d.Label != "" {
		return d.Label
	}
	return "Day " + strconv.Itoa(day)
}

func (c Calendar) Spec(day int) (DaySpec, bool) {
	d, ok := c.byDay[day]
	return d, ok
}

// Days возвращает дни фазы в порядке таблицы.
func (c Calendar) Days(p Phase) []int {
	out := make([]int, 0, len(c.days))
	for _, d := range c.days {
		if d.Phase == p {
			out = append(out, d.Day)
		}
	}
	return out
}

func (c Calendar) Specs() []DaySpec {
	out := make([]DaySpec, len(c.days))
	copy(out, c.days)
	return out
}

// DaySlots filters the daily grid down to the slots a day may use, honouring
// its EarliestSlot. Days without a configured start get the whole grid.
func (c Calendar) DaySlots(day int, grid []string) []string {
	d, ok := c.byDay[day]
	if !ok || d.EarliestSlot == "" {
		return append([]string(nil), grid...)
	}
	earliest, err := parseClock(d.EarliestSlot)
	if err != nil {
		return append([]string(nil), grid...)
	}
	out := make([]string, 0, len(grid))
	for _, slot := range grid {
		if start, ok := SlotStart(slot); ok && start >= earliest {
			out = append(out, slot)
		}
	}
	return out
}
