// Package db provides PostgreSQL access for the recruitment module.
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned by updates and deletes that matched no row.
// Single-row getters return (nil, nil) instead.
var ErrNotFound = errors.New("record not found")

// ErrUniqueViolation is matched by every *ConstraintError.
var ErrUniqueViolation = errors.New("unique constraint violation")

// Unique constraint names declared in the schema.
const (
	ConstraintCandidateJobEmail = "candidates_job_posting_id_email_key"
	ConstraintEmployeeEmail     = "employees_email_key"
	ConstraintStaffEmail        = "staff_users_email_key"
	ConstraintPublicToken       = "job_postings_public_token_key"
)

// ConstraintError reports a write rejected by a unique constraint.
type ConstraintError struct {
	Op         string
	Constraint string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("failed to %s: unique constraint %s violated", e.Op, e.Constraint)
}

func (e *ConstraintError) Unwrap() error { return ErrUniqueViolation }

// IsConstraint reports whether err was caused by the named unique constraint.
func IsConstraint(err error, name string) bool {
	var ce *ConstraintError
	return errors.As(err, &ce) && ce.Constraint == name
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB wraps a PostgreSQL connection pool. A DB handed to an InTx callback is
// bound to that transaction.
type DB struct {
	pool *pgxpool.Pool
	q    querier
	inTx bool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool, q: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil && !db.inTx {
		db.pool.Close()
	}
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// InTx runs fn inside a single transaction. The transaction commits when fn
// returns nil and rolls back otherwise. Calling InTx on a transaction-bound DB
// joins the outer transaction.
func (db *DB) InTx(ctx context.Context, fn func(tx *DB) error) error {
	if db.inTx {
		return fn(db)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.Warn("transaction rollback failed", "error", rErr)
		}
	}()

	if err := fn(&DB{pool: db.pool, q: tx, inTx: true}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// writeErr converts unique violations into *ConstraintError and wraps
// everything else with the failed operation.
func writeErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return &ConstraintError{Op: op, Constraint: pgErr.ConstraintName}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
