package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/playground-standings/models"
)

var (
	ErrPlaygroundNotFound     = errors.New("playground not found")
	ErrPlaygroundNameConflict = errors.New("playground name already exists")
)

type PlaygroundRepository interface {
	Create(ctx context.Context, playground *models.Playground) error
	GetByID(ctx context.Context, id int) (*models.Playground, error)
	List(ctx context.Context) ([]models.Playground, error)
}

type postgresPlaygroundRepository struct {
	db *sql.DB
}

func NewPostgresPlaygroundRepository(db *sql.DB) PlaygroundRepository {
	return &postgresPlaygroundRepository{db: db}
}

func (r *postgresPlaygroundRepository) Create(ctx context.Context, playground *models.Playground) error {
	query := `INSERT INTO playgrounds (name) VALUES ($1) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, playground.Name).Scan(&playground.ID, &playground.CreatedAt)
	if pqErr, ok := asPQError(err); ok && pqErr.Code == pgUniqueViolation {
		return ErrPlaygroundNameConflict
	}
	return err
}

func (r *postgresPlaygroundRepository) GetByID(ctx context.Context, id int) (*models.Playground, error) {
	return getPlayground(ctx, r.db, id)
}

func getPlayground(ctx context.Context, exec SQLExecutor, id int) (*models.Playground, error) {
	query := `SELECT id, name, created_at FROM playgrounds WHERE id = $1`
	p := &models.Playground{}
	err := exec.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlaygroundNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresPlaygroundRepository) List(ctx context.Context) ([]models.Playground, error) {
	query := `SELECT id, name, created_at FROM playgrounds ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list playgrounds: %w", err)
	}
	defer rows.Close()

	playgrounds := make([]models.Playground, 0)
	for rows.Next() {
		var p models.Playground
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan playground: %w", err)
		}
		playgrounds = append(playgrounds, p)
	}
	return playgrounds, rows.Err()
}
