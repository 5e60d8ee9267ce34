package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx, so repository methods
// can run inside a caller's transaction.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Коды ошибок PostgreSQL, которые маппятся в ошибки репозиториев.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

func getExecutor(db *sql.DB, exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return db
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError // Возвращаем переданную ошибку "не найдено"
	}
	return nil
}

// asPQError unwraps a lib/pq error, if there is one.
func asPQError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

// Transactor runs a unit of work atomically.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(exec SQLExecutor) error) error
}

type postgresTransactor struct {
	db *sql.DB
}

func NewPostgresTransactor(db *sql.DB) Transactor {
	return &postgresTransactor{db: db}
}

func (t *postgresTransactor) WithinTx(ctx context.Context, fn func(exec SQLExecutor) error) (err error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()
	return fn(tx)
}
