package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/playground-standings/models"
)

var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerNameConflict  = errors.New("player name already exists in team")
	ErrPlayerTeamInvalid   = errors.New("player team conflict or invalid")
	ErrPlayerPointsInvalid = errors.New("player points violate a table constraint")
	ErrPlayerInvalid       = errors.New("player violates a table constraint")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListByPlayground(ctx context.Context, playgroundID int) ([]models.Player, error)
	// UpdateDiscipline перезаписывает счётчик предупреждений и флаг удаления.
	UpdateDiscipline(ctx context.Context, id int, warnings int, expelled bool) error
	// SetMatchPoints вставляет или заменяет очки игрока в матче.
	SetMatchPoints(ctx context.Context, exec SQLExecutor, points models.PlayerMatchPoints) error
	ListMatchPoints(ctx context.Context, playgroundID int) ([]models.PlayerMatchPoints, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, playground_id, team_id, name, warnings, expelled, created_at`

func scanPlayer(row rowScanner, p *models.Player) error {
	return row.Scan(&p.ID, &p.PlaygroundID, &p.TeamID, &p.Name, &p.Warnings, &p.Expelled, &p.CreatedAt)
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (playground_id, team_id, name, warnings, expelled)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		player.PlaygroundID,
		player.TeamID,
		player.Name,
		player.Warnings,
		player.Expelled,
	).Scan(&player.ID, &player.CreatedAt)
	return r.handlePlayerError(err)
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	p := &models.Player{}
	if err := scanPlayer(r.db.QueryRowContext(ctx, query, id), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresPlayerRepository) ListByPlayground(ctx context.Context, playgroundID int) ([]models.Player, error) {
	return listPlayers(ctx, r.db, playgroundID)
}

func listPlayers(ctx context.Context, exec SQLExecutor, playgroundID int) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE playground_id = $1 ORDER BY team_id, id`
	rows, err := exec.QueryContext(ctx, query, playgroundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for playground %d: %w", playgroundID, err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := scanPlayer(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) UpdateDiscipline(ctx context.Context, id int, warnings int, expelled bool) error {
	query := `UPDATE players SET warnings = $1, expelled = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, warnings, expelled, id)
	if err != nil {
		return r.handlePlayerError(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) SetMatchPoints(ctx context.Context, exec SQLExecutor, points models.PlayerMatchPoints) error {
	executor := getExecutor(r.db, exec)
	query := `
		INSERT INTO player_match_points (match_id, player_id, points)
		VALUES ($1, $2, $3)
		ON CONFLICT (match_id, player_id) DO UPDATE SET points = EXCLUDED.points`
	_, err := executor.ExecContext(ctx, query, points.MatchID, points.PlayerID, points.Points)
	return r.handlePlayerError(err)
}

func (r *postgresPlayerRepository) ListMatchPoints(ctx context.Context, playgroundID int) ([]models.PlayerMatchPoints, error) {
	return listPlayerPoints(ctx, r.db, playgroundID)
}

func listPlayerPoints(ctx context.Context, exec SQLExecutor, playgroundID int) ([]models.PlayerMatchPoints, error) {
	query := `
		SELECT pmp.match_id, pmp.player_id, pmp.points
		FROM player_match_points pmp
		JOIN players p ON p.id = pmp.player_id
		WHERE p.playground_id = $1
		ORDER BY pmp.match_id, pmp.player_id`
	rows, err := exec.QueryContext(ctx, query, playgroundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list player points for playground %d: %w", playgroundID, err)
	}
	defer rows.Close()

	points := make([]models.PlayerMatchPoints, 0)
	for rows.Next() {
		var p models.PlayerMatchPoints
		if err := rows.Scan(&p.MatchID, &p.PlayerID, &p.Points); err != nil {
			return nil, fmt.Errorf("failed to scan player points: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := asPQError(err); ok {
		switch pqErr.Code {
		case pgUniqueViolation:
			return ErrPlayerNameConflict
		case pgForeignKeyViolation:
			if pqErr.Table == "player_match_points" {
				return ErrPlayerPointsInvalid
			}
			return ErrPlayerTeamInvalid
		case pgCheckViolation:
			if pqErr.Table == "player_match_points" {
				return fmt.Errorf("%w: %s", ErrPlayerPointsInvalid, pqErr.Constraint)
			}
			return fmt.Errorf("%w: %s", ErrPlayerInvalid, pqErr.Constraint)
		}
	}
	return err
}
