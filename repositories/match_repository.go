package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/playground-standings/models"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchSlotTaken   = errors.New("field is already booked for this day and time slot")
	ErrMatchTeamInvalid = errors.New("match team conflict or invalid")
	ErrMatchInvalid     = errors.New("match violates a table constraint")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByPlayground(ctx context.Context, playgroundID int, day *int) ([]models.Match, error)
	UpdateResult(ctx context.Context, id int, scoreA, scoreB, winnerID *int) error
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, playground_id, day, time_slot, field, team_a_id, team_b_id, score_a, score_b, winner_id, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMatch(row rowScanner, m *models.Match) error {
	return row.Scan(
		&m.ID,
		&m.PlaygroundID,
		&m.Day,
		&m.TimeSlot,
		&m.Field,
		&m.TeamAID,
		&m.TeamBID,
		&m.ScoreA,
		&m.ScoreB,
		&m.WinnerID,
		&m.CreatedAt,
	)
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := getExecutor(r.db, exec)
	query := `
		INSERT INTO matches
			(playground_id, day, time_slot, field, team_a_id, team_b_id, score_a, score_b, winner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		match.PlaygroundID,
		match.Day,
		match.TimeSlot,
		match.Field,
		match.TeamAID,
		match.TeamBID,
		match.ScoreA,
		match.ScoreB,
		match.WinnerID,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	m := &models.Match{}
	if err := scanMatch(r.db.QueryRowContext(ctx, query, id), m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) ListByPlayground(ctx context.Context, playgroundID int, day *int) ([]models.Match, error) {
	return listMatches(ctx, r.db, playgroundID, day)
}

func listMatches(ctx context.Context, exec SQLExecutor, playgroundID int, dayFilter *int) ([]models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE playground_id = $1`)

	args := []interface{}{playgroundID}
	placeholderIndex := 2

	if dayFilter != nil {
		queryBuilder.WriteString(" AND day = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *dayFilter)
		placeholderIndex++
	}

	queryBuilder.WriteString(" ORDER BY day ASC, time_slot ASC, field ASC, id ASC")

	rows, err := exec.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for playground %d: %w", playgroundID, err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := scanMatch(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, id int, scoreA, scoreB, winnerID *int) error {
	query := `
		UPDATE matches
		SET score_a = $1, score_b = $2, winner_id = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, scoreA, scoreB, winnerID, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := asPQError(err); ok {
		switch pqErr.Code {
		case pgUniqueViolation:
			if pqErr.Constraint == "matches_slot_unique" {
				return ErrMatchSlotTaken
			}
		case pgForeignKeyViolation:
			return ErrMatchTeamInvalid
		case pgCheckViolation:
			return fmt.Errorf("%w: %s", ErrMatchInvalid, pqErr.Constraint)
		}
	}
	return err
}
