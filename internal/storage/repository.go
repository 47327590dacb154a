package storage

import (
	"context"
	"errors"

	"github.com/bookline/bookline/libs/db"
	"github.com/jackc/pgx/v5"
)

// Repository is the postgres adapter behind the engine's snapshot/commit seam:
// it loads the snapshots the engine decides against and persists the decisions
// the engine returns.
type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
