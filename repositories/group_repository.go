package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/playground-standings/models"
)

var (
	ErrGroupNotFound          = errors.New("group not found")
	ErrGroupNameConflict      = errors.New("group name already exists in playground")
	ErrGroupPlaygroundInvalid = errors.New("group playground conflict or invalid")
)

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id int) (*models.Group, error)
	ListByPlayground(ctx context.Context, playgroundID int) ([]models.Group, error)
}

type postgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) GroupRepository {
	return &postgresGroupRepository{db: db}
}

func (r *postgresGroupRepository) Create(ctx context.Context, group *models.Group) error {
	query := `INSERT INTO groups (playground_id, name, color) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, group.PlaygroundID, group.Name, group.Color).Scan(&group.ID)
	return r.handleGroupError(err)
}

func (r *postgresGroupRepository) GetByID(ctx context.Context, id int) (*models.Group, error) {
	query := `SELECT id, playground_id, name, color FROM groups WHERE id = $1`
	g := &models.Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.PlaygroundID, &g.Name, &g.Color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *postgresGroupRepository) ListByPlayground(ctx context.Context, playgroundID int) ([]models.Group, error) {
	return listGroups(ctx, r.db, playgroundID)
}

func listGroups(ctx context.Context, exec SQLExecutor, playgroundID int) ([]models.Group, error) {
	query := `SELECT id, playground_id, name, color FROM groups WHERE playground_id = $1 ORDER BY id`
	rows, err := exec.QueryContext(ctx, query, playgroundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for playground %d: %w", playgroundID, err)
	}
	defer rows.Close()

	groups := make([]models.Group, 0)
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.PlaygroundID, &g.Name, &g.Color); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *postgresGroupRepository) handleGroupError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := asPQError(err); ok {
		switch pqErr.Code {
		case pgUniqueViolation:
			return ErrGroupNameConflict
		case pgForeignKeyViolation:
			return ErrGroupPlaygroundInvalid
		}
	}
	return err
}
