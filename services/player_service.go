package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/playground-standings/brackets"
	"github.com/Dosada05/playground-standings/models"
	"github.com/Dosada05/playground-standings/repositories"
)

type CreatePlayerInput struct {
	TeamID int    `json:"team_id"`
	Name   string `json:"name"`
}

type PlayerPointsEntry struct {
	PlayerID int `json:"player_id"`
	Points   int `json:"points"`
}

// RecordPlayerPointsInput - очки игроков за один матч. Повторная запись заменяет прежние очки.
type RecordPlayerPointsInput struct {
	Points []PlayerPointsEntry `json:"points"`
}

// PlayersUpdatedPayload уходит клиентам комнаты после изменения очков или дисциплины.
type PlayersUpdatedPayload struct {
	PlaygroundID int `json:"playground_id"`
	PlayerID     int `json:"player_id,omitempty"`
	MatchID      int `json:"match_id,omitempty"`
}

// PlayerService ведёт заявки команд, очки игроков и предупреждения.
type PlayerService interface {
	CreatePlayer(ctx context.Context, playgroundID int, input CreatePlayerInput) (*models.Player, error)
	ListPlayers(ctx context.Context, playgroundID int) ([]models.Player, error)
	RecordPlayerPoints(ctx context.Context, matchID int, input RecordPlayerPointsInput) ([]models.PlayerMatchPoints, error)
	// AddWarning: второе предупреждение удаляет игрока с турнира.
	AddWarning(ctx context.Context, playerID int) (*models.Player, error)
	RemoveWarning(ctx context.Context, playerID int) (*models.Player, error)
	Expel(ctx context.Context, playerID int) (*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
	matchRepo  repositories.MatchRepository
	transactor repositories.Transactor
	notifier   Notifier
	logger     *slog.Logger
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	transactor repositories.Transactor,
	notifier Notifier,
	logger *slog.Logger,
) PlayerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &playerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		transactor: transactor,
		notifier:   notifier,
		logger:     logger,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, playgroundID int, input CreatePlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: player name is required", ErrValidationFailed)
	}
	team, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load team %d: %w", input.TeamID, handleRepositoryError(err))
	}
	if team.PlaygroundID != playgroundID {
		return nil, fmt.Errorf("%w: team %d", ErrTeamOutsidePlay, team.ID)
	}
	p := &models.Player{PlaygroundID: playgroundID, TeamID: team.ID, Name: name}
	if err := s.playerRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", handleRepositoryError(err))
	}
	s.logger.InfoContext(ctx, "player created", slog.Int("playground_id", playgroundID), slog.Int("team_id", team.ID), slog.Int("player_id", p.ID))
	return p, nil
}

func (s *playerService) ListPlayers(ctx context.Context, playgroundID int) ([]models.Player, error) {
	players, err := s.playerRepo.ListByPlayground(ctx, playgroundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	if players == nil {
		return []models.Player{}, nil
	}
	return players, nil
}

// RecordPlayerPoints проверяет все записи до записи в базу: игрок должен играть
// за одну из команд матча. Записи пишутся в одной транзакции.
func (s *playerService) RecordPlayerPoints(ctx context.Context, matchID int, input RecordPlayerPointsInput) ([]models.PlayerMatchPoints, error) {
	if len(input.Points) == 0 {
		return nil, fmt.Errorf("%w: no player points given", ErrValidationFailed)
	}
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, handleRepositoryError(err))
	}

	seen := make(map[int]bool, len(input.Points))
	rows := make([]models.PlayerMatchPoints, 0, len(input.Points))
	for _, entry := range input.Points {
		if entry.Points < 0 {
			return nil, fmt.Errorf("%w: player %d", ErrNegativePoints, entry.PlayerID)
		}
		if seen[entry.PlayerID] {
			return nil, fmt.Errorf("%w: player %d listed twice", ErrValidationFailed, entry.PlayerID)
		}
		seen[entry.PlayerID] = true

		player, err := s.playerRepo.GetByID(ctx, entry.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load player %d: %w", entry.PlayerID, handleRepositoryError(err))
		}
		if player.PlaygroundID != match.PlaygroundID || !match.Involves(player.TeamID) {
			return nil, fmt.Errorf("%w: player %d, match %d", ErrPlayerNotInMatch, player.ID, matchID)
		}
		rows = append(rows, models.PlayerMatchPoints{MatchID: matchID, PlayerID: player.ID, Points: entry.Points})
	}

	err = s.transactor.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		for _, row := range rows {
			if err := s.playerRepo.SetMatchPoints(ctx, exec, row); err != nil {
				return fmt.Errorf("failed to save points of player %d: %w", row.PlayerID, handleRepositoryError(err))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "player points recorded",
		slog.Int("playground_id", match.PlaygroundID),
		slog.Int("match_id", matchID),
		slog.Int("players", len(rows)))
	notify(s.notifier, match.PlaygroundID, brackets.MessagePlayersUpdated, PlayersUpdatedPayload{
		PlaygroundID: match.PlaygroundID,
		MatchID:      matchID,
	})
	return rows, nil
}

func (s *playerService) AddWarning(ctx context.Context, playerID int) (*models.Player, error) {
	return s.discipline(ctx, playerID, "player warned", func(p *models.Player) error {
		if p.Expelled || p.Warnings >= models.MaxPlayerWarnings {
			return ErrPlayerExpelled
		}
		p.Warnings++
		p.Expelled = p.Warnings >= models.MaxPlayerWarnings
		return nil
	})
}

// RemoveWarning снимает одно предупреждение и возвращает удалённого игрока в игру.
func (s *playerService) RemoveWarning(ctx context.Context, playerID int) (*models.Player, error) {
	return s.discipline(ctx, playerID, "player warning removed", func(p *models.Player) error {
		if p.Warnings == 0 {
			return ErrNoWarnings
		}
		p.Warnings--
		p.Expelled = false
		return nil
	})
}

// Expel удаляет игрока сразу, как будто он получил все предупреждения.
func (s *playerService) Expel(ctx context.Context, playerID int) (*models.Player, error) {
	return s.discipline(ctx, playerID, "player expelled", func(p *models.Player) error {
		if p.Expelled {
			return ErrPlayerExpelled
		}
		p.Warnings = models.MaxPlayerWarnings
		p.Expelled = true
		return nil
	})
}

func (s *playerService) discipline(ctx context.Context, playerID int, event string, apply func(p *models.Player) error) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load player %d: %w", playerID, handleRepositoryError(err))
	}
	if err := apply(player); err != nil {
		return nil, fmt.Errorf("%w: player %d", err, playerID)
	}
	if err := s.playerRepo.UpdateDiscipline(ctx, playerID, player.Warnings, player.Expelled); err != nil {
		return nil, fmt.Errorf("failed to update player %d: %w", playerID, handleRepositoryError(err))
	}
	s.logger.InfoContext(ctx, event,
		slog.Int("playground_id", player.PlaygroundID),
		slog.Int("player_id", playerID),
		slog.Int("warnings", player.Warnings),
		slog.Bool("expelled", player.Expelled))
	notify(s.notifier, player.PlaygroundID, brackets.MessagePlayersUpdated, PlayersUpdatedPayload{
		PlaygroundID: player.PlaygroundID,
		PlayerID:     playerID,
	})
	return player, nil
}
