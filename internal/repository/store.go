package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

const uniqueViolation = "23505"

// OrchestraConductorKey is the unique constraint letting a conductor lead one orchestra.
const OrchestraConductorKey = "orchestras_conductor_id_key"

// DuplicateError names the unique constraint a write ran into. It matches ErrDuplicate.
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string { return ErrDuplicate.Error() + ": " + e.Constraint }

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// Violates reports whether err is a duplicate on the named constraint.
func Violates(err error, constraint string) bool {
	var dup *DuplicateError
	return errors.As(err, &dup) && dup.Constraint == constraint
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store groups the per-table repositories. Every repository in a Store shares
// one executor, so a Store handed out by WithTx runs all statements in that transaction.
type Store struct {
	db *sqlx.DB

	Users       *Users
	Players     *Players
	Conductors  *Conductors
	Orchestras  *Orchestras
	Concerts    *Concerts
	Sections    *Lookups
	Instruments *Lookups
	Enrollments *Enrollments
	Activity    *Activity
}

func New(db *sqlx.DB) *Store {
	return newStore(db, db)
}

func newStore(db *sqlx.DB, ext sqlx.ExtContext) *Store {
	return &Store{
		db:          db,
		Users:       &Users{ext: ext},
		Players:     &Players{ext: ext},
		Conductors:  &Conductors{ext: ext},
		Orchestras:  &Orchestras{ext: ext},
		Concerts:    &Concerts{ext: ext},
		Sections:    &Lookups{ext: ext, table: "sections"},
		Instruments: &Lookups{ext: ext, table: "instruments"},
		Enrollments: &Enrollments{ext: ext},
		Activity:    &Activity{ext: ext},
	}
}

// WithTx runs fn against a Store bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := fn(newStore(s.db, tx)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

/* ===================== SQUIRREL HELPERS ===================== */

func qGet(ctx context.Context, ext sqlx.QueryerContext, dest any, q sq.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return err
	}
	if err := sqlx.GetContext(ctx, ext, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func qSelect(ctx context.Context, ext sqlx.QueryerContext, dest any, q sq.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return err
	}
	return sqlx.SelectContext(ctx, ext, dest, query, args...)
}

// qExec runs a write and reports whether it touched at least one row.
func qExec(ctx context.Context, ext sqlx.ExecerContext, q sq.Sqlizer) (bool, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return false, err
	}
	res, err := ext.ExecContext(ctx, query, args...)
	if err != nil {
		return false, classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// qInsert runs an INSERT and returns the generated id.
func qInsert(ctx context.Context, ext sqlx.QueryerContext, q sq.InsertBuilder) (int, error) {
	query, args, err := q.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, err
	}
	var id int
	if err := ext.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, classify(err)
	}
	return id, nil
}

func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &DuplicateError{Constraint: pgErr.ConstraintName}
	}
	return err
}
