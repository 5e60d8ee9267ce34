package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/playground-standings/brackets"
	"github.com/Dosada05/playground-standings/models"
	"github.com/Dosada05/playground-standings/repositories"
	"github.com/Dosada05/playground-standings/standings"
)

// Notifier рассылает сообщения клиентам комнаты. Его реализует brackets.Hub.
type Notifier interface {
	BroadcastToRoom(roomID string, message interface{})
}

// handleRepositoryError - общий хелпер для ошибок репозитория
func handleRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrPlaygroundNotFound):
		return ErrPlaygroundNotFound
	case errors.Is(err, repositories.ErrGroupNotFound):
		return ErrGroupNotFound
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrPlayerNameConflict):
		return ErrPlayerNameConflict
	case errors.Is(err, repositories.ErrPlayerTeamInvalid):
		return fmt.Errorf("%w: %w", ErrTeamOutsidePlay, err)
	case errors.Is(err, repositories.ErrPlayerPointsInvalid), errors.Is(err, repositories.ErrPlayerInvalid):
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	case errors.Is(err, repositories.ErrMatchSlotTaken):
		return ErrSlotTaken
	case errors.Is(err, repositories.ErrPlaygroundNameConflict):
		return ErrPlaygroundNameConflict
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameConflict
	case errors.Is(err, repositories.ErrGroupNameConflict):
		return ErrGroupNameConflict
	case errors.Is(err, repositories.ErrTeamGroupInvalid), errors.Is(err, repositories.ErrGroupPlaygroundInvalid):
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	case errors.Is(err, repositories.ErrMatchTeamInvalid):
		return fmt.Errorf("%w: %w", ErrTeamOutsidePlay, err)
	case errors.Is(err, repositories.ErrMatchInvalid):
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return err
}

// handleEngineError переводит ошибки движка в ошибки сервиса.
func handleEngineError(err error) error {
	switch {
	case errors.Is(err, standings.ErrTeamNotFound):
		return fmt.Errorf("%w: %w", ErrTeamNotFound, err)
	case errors.Is(err, standings.ErrUnknownPhase):
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return err
}

func notify(n Notifier, playgroundID int, messageType string, payload interface{}) {
	if n == nil {
		return
	}
	room := brackets.PlaygroundRoom(playgroundID)
	n.BroadcastToRoom(room, brackets.WebSocketMessage{Type: messageType, Payload: payload, RoomID: room})
}

// logWarnings пишет предупреждения движка: общее число на уровне Warn, детали на Debug.
func logWarnings(ctx context.Context, logger *slog.Logger, operation string, playgroundID int, warnings []standings.Warning) {
	if len(warnings) == 0 {
		return
	}
	logger.WarnContext(ctx, "standings computed with data warnings",
		slog.String("operation", operation),
		slog.Int("playground_id", playgroundID),
		slog.Int("warnings", len(warnings)))
	for _, w := range warnings {
		logger.DebugContext(ctx, "standings warning",
			slog.String("kind", string(w.Kind)),
			slog.Int("match_id", w.MatchID),
			slog.String("message", w.Message))
	}
}

// attachTeams заполняет TeamA/TeamB у матчей по ростеру снимка.
func attachTeams(matches []models.Match, teams []models.Team) {
	byID := make(map[int]*models.Team, len(teams))
	for i := range teams {
		byID[teams[i].ID] = &teams[i]
	}
	for i := range matches {
		matches[i].TeamA = byID[matches[i].TeamAID]
		matches[i].TeamB = byID[matches[i].TeamBID]
	}
}
