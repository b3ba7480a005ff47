package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx operations the repositories need.
// Both *pgxpool.Pool and pgx.Tx satisfy it, so the same repository
// code runs standalone or inside a transaction.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Constraint-level failures the database reports back. The service layer
// translates these into its own error taxonomy, by table.
var (
	ErrUniqueViolation    = errors.New("unique constraint violation")
	ErrExclusionViolation = errors.New("exclusion constraint violation")
	ErrLockNotAvailable   = errors.New("row lock not available")
)

const (
	pgCodeUniqueViolation    = "23505"
	pgCodeExclusionViolation = "23P01"
	pgCodeLockNotAvailable   = "55P03"
)

// mapPgError converts well-known SQLSTATE codes into repository sentinels.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgCodeUniqueViolation:
		return ErrUniqueViolation
	case pgCodeExclusionViolation:
		return ErrExclusionViolation
	case pgCodeLockNotAvailable:
		return ErrLockNotAvailable
	}
	return err
}

// IsNotFound reports whether err means "no rows".
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
