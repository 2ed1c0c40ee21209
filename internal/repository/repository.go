package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	custom_error "relief/pkg/errors"
)

const dialect = "postgres"

type Repository struct {
	DB            *sql.DB
	GoquDBWrapper *goqu.Database
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		DB:            db,
		GoquDBWrapper: goqu.New(dialect, db),
	}
}

// Transactor runs fn inside a single database transaction. Every write made
// through tx commits together or not at all.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(tx *goqu.TxDatabase) error) error
}

func (r *Repository) WithinTransaction(ctx context.Context, fn func(tx *goqu.TxDatabase) error) error {
	return WithTransaction(ctx, r.DB, fn)
}

// WithTransaction commits when fn returns nil and rolls back on error or panic.
func WithTransaction(ctx context.Context, db *sql.DB, fn func(tx *goqu.TxDatabase) error) (err error) {
	rawTx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	tx := goqu.NewTx(dialect, rawTx)
	defer func() {
		if p := recover(); p != nil {
			_ = rawTx.Rollback()
			panic(p)
		} else if err != nil {
			_ = rawTx.Rollback()
		} else {
			err = rawTx.Commit()
		}
	}()

	err = fn(tx)
	return
}

// MapDBError turns PostgreSQL constraint violations into typed errors and
// wraps anything else with msg.
func MapDBError(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505", "23503", "23514":
			return custom_error.WrapDBError(msg, string(pqErr.Code))
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
