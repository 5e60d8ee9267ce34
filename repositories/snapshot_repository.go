package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/playground-standings/models"
)

type SnapshotRepository interface {
	// Load reads the playground, its groups, teams, matches, players and
	// player points as of one point in time.
	Load(ctx context.Context, playgroundID int) (*models.PlaygroundSnapshot, error)
}

type postgresSnapshotRepository struct {
	db *sql.DB
}

func NewPostgresSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &postgresSnapshotRepository{db: db}
}

// Load runs all reads in one read-only repeatable-read transaction, so a
// result recorded mid-load is either fully in the snapshot or not at all.
func (r *postgresSnapshotRepository) Load(ctx context.Context, playgroundID int) (*models.PlaygroundSnapshot, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	playground, err := getPlayground(ctx, tx, playgroundID)
	if err != nil {
		return nil, err
	}
	groups, err := listGroups(ctx, tx, playgroundID)
	if err != nil {
		return nil, err
	}
	teams, err := listTeams(ctx, tx, playgroundID)
	if err != nil {
		return nil, err
	}
	matches, err := listMatches(ctx, tx, playgroundID, nil)
	if err != nil {
		return nil, err
	}
	players, err := listPlayers(ctx, tx, playgroundID)
	if err != nil {
		return nil, err
	}
	points, err := listPlayerPoints(ctx, tx, playgroundID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to close snapshot transaction: %w", err)
	}

	return &models.PlaygroundSnapshot{
		Playground:   *playground,
		Groups:       groups,
		Teams:        teams,
		Matches:      matches,
		Players:      players,
		PlayerPoints: points,
	}, nil
}
