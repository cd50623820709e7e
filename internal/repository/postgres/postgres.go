package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"homestay-backend/internal/logger"
	"homestay-backend/internal/repository"

	"github.com/lib/pq"
)

//go:embed schema.sql
var schema string

// DBTX is satisfied by both *sql.DB and *sql.Tx, so every repository can run
// standalone or inside a unit of work.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.Repositories
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		Repositories: newRepositories(db),
	}
}

func newRepositories(db DBTX) repository.Repositories {
	return repository.Repositories{
		Users:        NewUserRepository(db),
		Apartments:   NewApartmentRepository(db),
		Images:       NewImageRepository(db),
		Requests:     NewRequestRepository(db),
		Responses:    NewResponseRepository(db),
		Reservations: NewReservationRepository(db),
		Reviews:      NewReviewRepository(db),
		Feedbacks:    NewFeedbackRepository(db),
		WishLists:    NewWishListRepository(db),
	}
}

// Migrate creates any missing tables and constraints.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithinTx implements repository.Transactor.
func (s *Store) WithinTx(ctx context.Context, fn func(repos repository.Repositories) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Transaction("begin", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rbErr := tx.Rollback()
			logger.Transaction("rollback", fmt.Errorf("panic: %v", p), "rollbackError", rbErr)
			panic(p)
		}
	}()

	if err = fn(newRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Transaction("rollback", err, "rollbackError", rbErr)
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		logger.Transaction("rollback", err)
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.Transaction("commit", err)
		return fmt.Errorf("failed to commit transaction: %w", mapError(err))
	}
	logger.Transaction("commit", nil)
	return nil
}

const uniqueViolation = "23505"

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, pqErr.Constraint)
	}
	return err
}

// execOne runs a statement that must touch at least one row.
func execOne(ctx context.Context, db DBTX, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func exec(ctx context.Context, db DBTX, query string, args ...any) error {
	_, err := db.ExecContext(ctx, query, args...)
	return mapError(err)
}

// rowScanner lets one scan function serve both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
