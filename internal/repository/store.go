package repository

import (
	"context"
	"database/sql"
	"errors"
	"roboscout/internal/db"
	"roboscout/internal/errs"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// Store runs groups of queries in one transaction.
type Store struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewStore(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *Store {
	return &Store{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// InTx commits when fn returns nil and rolls back otherwise.
func (s *Store) InTx(ctx context.Context, fn func(q *db.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.NewDataAccessError("begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errs.NewDataAccessError("commit transaction", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errs.NewDataAccessError("ping", err)
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	// the pure-Go driver reports constraint failures with SQLite's own message
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// classify maps driver errors onto the error taxonomy. Errors already
// classified by an inner call pass through untouched.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errs.IsValidation(err) || errs.IsNotFound(err) || errs.IsDataAccess(err) {
		return err
	}
	return errs.NewDataAccessError(op, err)
}
