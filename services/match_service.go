package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/playground-standings/brackets"
	"github.com/Dosada05/playground-standings/models"
	"github.com/Dosada05/playground-standings/repositories"
	"github.com/Dosada05/playground-standings/standings"
)

// ErrMatchesListFailed - общая ошибка для листинга матчей
var ErrMatchesListFailed = errors.New("failed to list matches")

type CreateMatchInput struct {
	Day      int    `json:"day"`
	TimeSlot string `json:"time_slot"`
	Field    string `json:"field"`
	TeamAID  int    `json:"team_a_id"`
	TeamBID  int    `json:"team_b_id"`
}

// RecordResultInput - счёт матча. Оба поля nil сбрасывают результат.
type RecordResultInput struct {
	ScoreA *int `json:"score_a"`
	ScoreB *int `json:"score_b"`
}

// StandingsUpdatedPayload уходит клиентам комнаты после каждого изменения результата.
type StandingsUpdatedPayload struct {
	PlaygroundID int `json:"playground_id"`
	MatchID      int `json:"match_id"`
}

type MatchService interface {
	CreateMatch(ctx context.Context, playgroundID int, input CreateMatchInput) (*models.Match, error)
	RecordResult(ctx context.Context, matchID int, input RecordResultInput) (*models.Match, error)
	ListMatches(ctx context.Context, playgroundID int, day *int) ([]models.Match, error)
	DeleteMatch(ctx context.Context, matchID int) error
}

type matchService struct {
	matchRepo repositories.MatchRepository
	teamRepo  repositories.TeamRepository
	calendar  standings.Calendar
	slots     map[string]bool
	fields    []string
	notifier  Notifier
	logger    *slog.Logger
}

// NewMatchService принимает сетку слотов и календарь движка, чтобы ручной ввод
// матчей проверялся по тем же таблицам, что и классификатор раундов.
func NewMatchService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	engine *standings.Engine,
	fields []string,
	notifier Notifier,
	logger *slog.Logger,
) MatchService {
	if len(fields) == 0 {
		fields = brackets.DefaultFields
	}
	if logger == nil {
		logger = slog.Default()
	}
	slots := make(map[string]bool)
	for _, slot := range engine.TimeSlots() {
		slots[slot] = true
	}
	return &matchService{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		calendar:  engine.Calendar(),
		slots:     slots,
		fields:    append([]string(nil), fields...),
		notifier:  notifier,
		logger:    logger,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, playgroundID int, input CreateMatchInput) (*models.Match, error) {
	input.TimeSlot = strings.TrimSpace(input.TimeSlot)
	input.Field = strings.ToUpper(strings.TrimSpace(input.Field))

	if _, ok := s.calendar.Spec(input.Day); !ok {
		return nil, fmt.Errorf("%w: day %d", ErrUnknownDay, input.Day)
	}
	if !s.slots[input.TimeSlot] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimeSlot, input.TimeSlot)
	}
	if !s.knownField(input.Field) {
		return nil, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownField, input.Field, strings.Join(s.fields, ", "))
	}
	if input.TeamAID == input.TeamBID {
		return nil, ErrSameTeam
	}
	for _, teamID := range []int{input.TeamAID, input.TeamBID} {
		team, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return nil, fmt.Errorf("failed to load team %d: %w", teamID, handleRepositoryError(err))
		}
		if team.PlaygroundID != playgroundID {
			return nil, fmt.Errorf("%w: team %d", ErrTeamOutsidePlay, teamID)
		}
	}

	day := input.Day
	sameDay, err := s.matchRepo.ListByPlayground(ctx, playgroundID, &day)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMatchesListFailed, err)
	}
	for _, m := range sameDay {
		if m.TimeSlot != input.TimeSlot {
			continue
		}
		if m.Field == input.Field {
			return nil, ErrSlotTaken
		}
		if m.Involves(input.TeamAID) || m.Involves(input.TeamBID) {
			return nil, fmt.Errorf("%w: match %d", ErrTeamDoubleBooked, m.ID)
		}
	}

	match := &models.Match{
		PlaygroundID: playgroundID,
		Day:          input.Day,
		TimeSlot:     input.TimeSlot,
		Field:        input.Field,
		TeamAID:      input.TeamAID,
		TeamBID:      input.TeamBID,
	}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", handleRepositoryError(err))
	}

	s.logger.InfoContext(ctx, "match created",
		slog.Int("playground_id", playgroundID),
		slog.Int("match_id", match.ID),
		slog.Int("day", match.Day),
		slog.String("time_slot", match.TimeSlot),
		slog.String("field", match.Field))
	notify(s.notifier, playgroundID, brackets.MessageMatchUpdated, match)
	return match, nil
}

func (s *matchService) knownField(field string) bool {
	for _, f := range s.fields {
		if f == field {
			return true
		}
	}
	return false
}

// RecordResult сохраняет счёт и выводит победителя: побеждает строго больший счёт,
// ничья оставляет матч без победителя.
func (s *matchService) RecordResult(ctx context.Context, matchID int, input RecordResultInput) (*models.Match, error) {
	if (input.ScoreA == nil) != (input.ScoreB == nil) {
		return nil, ErrIncompleteScore
	}
	if input.ScoreA != nil && (*input.ScoreA < 0 || *input.ScoreB < 0) {
		return nil, ErrNegativeScore
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, handleRepositoryError(err))
	}

	var winnerID *int
	if input.ScoreA != nil {
		winnerID = models.DeriveWinner(match.TeamAID, match.TeamBID, *input.ScoreA, *input.ScoreB)
	}
	if err := s.matchRepo.UpdateResult(ctx, matchID, input.ScoreA, input.ScoreB, winnerID); err != nil {
		return nil, fmt.Errorf("failed to record result for match %d: %w", matchID, handleRepositoryError(err))
	}
	match.ScoreA, match.ScoreB, match.WinnerID = input.ScoreA, input.ScoreB, winnerID

	attrs := []any{slog.Int("playground_id", match.PlaygroundID), slog.Int("match_id", matchID)}
	if winnerID != nil {
		attrs = append(attrs, slog.Int("winner_id", *winnerID))
	} else if input.ScoreA != nil {
		s.logger.WarnContext(ctx, "tied score recorded, match stays undecided", attrs...)
	}
	s.logger.InfoContext(ctx, "match result recorded", attrs...)

	notify(s.notifier, match.PlaygroundID, brackets.MessageMatchUpdated, match)
	notify(s.notifier, match.PlaygroundID, brackets.MessageStandingsUpdated, StandingsUpdatedPayload{
		PlaygroundID: match.PlaygroundID,
		MatchID:      matchID,
	})
	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context, playgroundID int, day *int) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByPlayground(ctx, playgroundID, day)
	if err != nil {
		return nil, fmt.Errorf("%w: playground %d: %w", ErrMatchesListFailed, playgroundID, err)
	}
	if matches == nil {
		return []models.Match{}, nil
	}
	return matches, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, matchID int) error {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("failed to load match %d: %w", matchID, handleRepositoryError(err))
	}
	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		return fmt.Errorf("failed to delete match %d: %w", matchID, handleRepositoryError(err))
	}
	s.logger.InfoContext(ctx, "match deleted", slog.Int("playground_id", match.PlaygroundID), slog.Int("match_id", matchID))
	if match.IsDecided() {
		notify(s.notifier, match.PlaygroundID, brackets.MessageStandingsUpdated, StandingsUpdatedPayload{
			PlaygroundID: match.PlaygroundID,
			MatchID:      matchID,
		})
	}
	return nil
}
