package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/playground-standings/models"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name already exists in playground")
	ErrTeamGroupInvalid = errors.New("team group conflict or invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByPlayground(ctx context.Context, playgroundID int) ([]models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (playground_id, group_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, team.PlaygroundID, team.GroupID, team.Name).Scan(&team.ID, &team.CreatedAt)
	if err == nil {
		return nil
	}
	if pqErr, ok := asPQError(err); ok {
		switch pqErr.Code {
		case pgUniqueViolation:
			return ErrTeamNameConflict
		case pgForeignKeyViolation:
			return ErrTeamGroupInvalid
		}
	}
	return err
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, playground_id, group_id, name, created_at FROM teams WHERE id = $1`
	t := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.PlaygroundID, &t.GroupID, &t.Name, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTeamRepository) ListByPlayground(ctx context.Context, playgroundID int) ([]models.Team, error) {
	return listTeams(ctx, r.db, playgroundID)
}

func listTeams(ctx context.Context, exec SQLExecutor, playgroundID int) ([]models.Team, error) {
	query := `
		SELECT id, playground_id, group_id, name, created_at
		FROM teams
		WHERE playground_id = $1
		ORDER BY group_id, id`
	rows, err := exec.QueryContext(ctx, query, playgroundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for playground %d: %w", playgroundID, err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.PlaygroundID, &t.GroupID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}
