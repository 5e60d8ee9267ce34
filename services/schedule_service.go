package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/playground-standings/brackets"
	"github.com/Dosada05/playground-standings/models"
	"github.com/Dosada05/playground-standings/repositories"
	"github.com/Dosada05/playground-standings/standings"
)

type ScheduleService interface {
	// GenerateGroupStage строит круговой этап для всех групп площадки и
	// сохраняет матчи одной транзакцией.
	GenerateGroupStage(ctx context.Context, playgroundID int) ([]models.Match, error)
}

type scheduleService struct {
	snapshots  repositories.SnapshotRepository
	matchRepo  repositories.MatchRepository
	transactor repositories.Transactor
	generator  brackets.ScheduleGenerator
	calendar   standings.Calendar
	notifier   Notifier
	logger     *slog.Logger
}

func NewScheduleService(
	snapshots repositories.SnapshotRepository,
	matchRepo repositories.MatchRepository,
	transactor repositories.Transactor,
	generator brackets.ScheduleGenerator,
	calendar standings.Calendar,
	notifier Notifier,
	logger *slog.Logger,
) ScheduleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &scheduleService{
		snapshots:  snapshots,
		matchRepo:  matchRepo,
		transactor: transactor,
		generator:  generator,
		calendar:   calendar,
		notifier:   notifier,
		logger:     logger,
	}
}

func (s *scheduleService) GenerateGroupStage(ctx context.Context, playgroundID int) ([]models.Match, error) {
	snap, err := s.snapshots.Load(ctx, playgroundID)
	if err != nil {
		return nil, fmt.Errorf("failed to load playground %d: %w", playgroundID, handleRepositoryError(err))
	}
	for _, m := range snap.Matches {
		if s.calendar.PhaseOf(m.Day) == standings.PhaseGroupStage {
			return nil, fmt.Errorf("%w: match %d on day %d", ErrGroupStageExists, m.ID, m.Day)
		}
	}

	params := brackets.GenerateScheduleParams{
		PlaygroundID: playgroundID,
		Groups:       groupsWithTeams(snap.Groups, snap.Teams),
		Existing:     snap.Matches,
	}
	scheduled, err := s.generator.GenerateSchedule(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s generator: %w", ErrValidationFailed, s.generator.GetName(), err)
	}

	created := make([]models.Match, 0, len(scheduled))
	err = s.transactor.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		for _, sm := range scheduled {
			m := sm.ToMatch(playgroundID)
			if err := s.matchRepo.Create(ctx, exec, &m); err != nil {
				return fmt.Errorf("failed to save match %d vs %d (day %d, %s, field %s): %w",
					sm.TeamAID, sm.TeamBID, sm.Day, sm.TimeSlot, sm.Field, handleRepositoryError(err))
			}
			created = append(created, m)
		}
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "group stage generation rolled back",
			slog.Int("playground_id", playgroundID), slog.Any("error", err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "group stage generated",
		slog.Int("playground_id", playgroundID),
		slog.Int("groups", len(params.Groups)),
		slog.Int("matches", len(created)))
	notify(s.notifier, playgroundID, brackets.MessageScheduleCreated, map[string]int{
		"playground_id": playgroundID,
		"matches":       len(created),
	})
	return created, nil
}
