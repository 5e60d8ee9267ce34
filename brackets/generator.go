package brackets

import (
	"context"

	"github.com/Dosada05/playground-standings/models"
)

// ScheduledMatch is a match placed on the calendar but not yet persisted.
type ScheduledMatch struct {
	GroupID  int
	Day      int
	TimeSlot string
	Field    string
	TeamAID  int
	TeamBID  int
}

type GenerateScheduleParams struct {
	PlaygroundID int
	// Groups must carry their Teams.
	Groups []models.Group
	// Existing matches occupy their (day, slot, field) and block their teams in that slot.
	Existing []models.Match
}

type ScheduleGenerator interface {
	GenerateSchedule(ctx context.Context, params GenerateScheduleParams) ([]*ScheduledMatch, error)

	GetName() string
}

// ToMatch converts a scheduled match into an unplayed match record.
func (s *ScheduledMatch) ToMatch(playgroundID int) models.Match {
	return models.Match{
		PlaygroundID: playgroundID,
		Day:          s.Day,
		TimeSlot:     s.TimeSlot,
		Field:        s.Field,
		TeamAID:      s.TeamAID,
		TeamBID:      s.TeamBID,
	}
}
