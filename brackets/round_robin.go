package brackets

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/playground-standings/models"
	"github.com/Dosada05/playground-standings/standings"
)

var (
	ErrNotEnoughSlots = errors.New("not enough time slots to schedule the group stage")
	ErrNotEnoughTeams = errors.New("group needs at least two teams")
	ErrNoScheduleDays = errors.New("no group-stage days to schedule on")
)

// DefaultFields are the two courts of the playground.
var DefaultFields = []string{"A", "B"}

type RoundRobinGenerator struct {
	calendar standings.Calendar
	grid     []string
	days     []int
	fields   []string
}

// NewRoundRobinGenerator schedules single round-robin group stages on the
// given days; with no days it uses every group-stage day of the calendar.
func NewRoundRobinGenerator(cal standings.Calendar, grid []string, days []int, fields []string) *RoundRobinGenerator {
	if len(days) == 0 {
		days = cal.Days(standings.PhaseGroupStage)
	}
	if len(fields) == 0 {
		fields = DefaultFields
	}
	return &RoundRobinGenerator{
		calendar: cal,
		grid:     append([]string(nil), grid...),
		days:     append([]int(nil), days...),
		fields:   append([]string(nil), fields...),
	}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

type slotKey struct {
	day  int
	slot string
}

type fieldKey struct {
	day   int
	slot  string
	field string
}

// occupancy tracks which fields are taken and which teams already play in a slot.
type occupancy struct {
	fields map[fieldKey]bool
	teams  map[slotKey]map[int]bool
}

func newOccupancy(existing []models.Match) *occupancy {
	o := &occupancy{
		fields: make(map[fieldKey]bool),
		teams:  make(map[slotKey]map[int]bool),
	}
	for _, m := range existing {
		o.book(m.Day, m.TimeSlot, m.Field, m.TeamAID, m.TeamBID)
	}
	return o
}

func (o *occupancy) book(day int, slot, field string, teamA, teamB int) {
	o.fields[fieldKey{day, slot, field}] = true
	k := slotKey{day, slot}
	if o.teams[k] == nil {
		o.teams[k] = make(map[int]bool)
	}
	o.teams[k][teamA] = true
	o.teams[k][teamB] = true
}

func (o *occupancy) teamBusy(day int, slot string, teamA, teamB int) bool {
	busy := o.teams[slotKey{day, slot}]
	return busy[teamA] || busy[teamB]
}

// GenerateSchedule creates every pairing of each group once and spreads a
// group's pairings over the schedule days in even chunks. Each match takes the
// first slot of its day where neither team already plays and a field is free.
// Fields are shared by all groups.
func (g *RoundRobinGenerator) GenerateSchedule(ctx context.Context, params GenerateScheduleParams) ([]*ScheduledMatch, error) {
	if len(g.days) == 0 {
		return nil, ErrNoScheduleDays
	}
	daySlots := make(map[int][]string, len(g.days))
	capacity := 0
	for _, day := range g.days {
		daySlots[day] = g.calendar.DaySlots(day, g.grid)
		capacity += len(daySlots[day]) * len(g.fields)
	}

	occ := newOccupancy(params.Existing)
	matches := make([]*ScheduledMatch, 0)

	for _, group := range params.Groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		teams := group.Teams
		if len(teams) < 2 {
			return nil, fmt.Errorf("group %d (%s): %w", group.ID, group.Name, ErrNotEnoughTeams)
		}

		pairings := make([][2]int, 0, len(teams)*(len(teams)-1)/2)
		for i := 0; i < len(teams); i++ {
			for j := i + 1; j < len(teams); j++ {
				pairings = append(pairings, [2]int{teams[i].ID, teams[j].ID})
			}
		}
		if len(pairings) > capacity {
			return nil, fmt.Errorf("group %d (%s) needs %d matches, calendar has %d places: %w",
				group.ID, group.Name, len(pairings), capacity, ErrNotEnoughSlots)
		}

		perDay := (len(pairings) + len(g.days) - 1) / len(g.days)
		for d, day := range g.days {
			lo := d * perDay
			if lo >= len(pairings) {
				break
			}
			hi := lo + perDay
			if hi > len(pairings) {
				hi = len(pairings)
			}
			for _, p := range pairings[lo:hi] {
				m, ok := g.place(occ, day, daySlots[day], p[0], p[1])
				if !ok {
					return nil, fmt.Errorf("group %d (%s): no free slot on day %d for teams %d and %d: %w",
						group.ID, group.Name, day, p[0], p[1], ErrNotEnoughSlots)
				}
				m.GroupID = group.ID
				matches = append(matches, m)
			}
		}
	}
	return matches, nil
}

func (g *RoundRobinGenerator) place(occ *occupancy, day int, slots []string, teamA, teamB int) (*ScheduledMatch, bool) {
	for _, slot := range slots {
		if occ.teamBusy(day, slot, teamA, teamB) {
			continue
		}
		for _, field := range g.fields {
			if occ.fields[fieldKey{day, slot, field}] {
				continue
			}
			occ.book(day, slot, field, teamA, teamB)
			return &ScheduledMatch{Day: day, TimeSlot: slot, Field: field, TeamAID: teamA, TeamBID: teamB}, true
		}
	}
	return nil, false
}
