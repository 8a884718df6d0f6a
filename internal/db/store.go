package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khatabook/number-change-portal/internal/db/memdb"
	"github.com/khatabook/number-change-portal/internal/db/sqlc"
)

// Store is the explicitly constructed database handle shared by all services.
type Store struct {
	Queries sqlc.Querier
	pool    *pgxpool.Pool
	sqlc    *sqlc.Queries
	mem     *memdb.DB
}

// Open connects to the configured backend. The postgres driver expects the
// schema to be migrated already.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	switch cfg.Driver {
	case DriverMemory:
		slog.Warn("Using in-memory store, data is lost on restart")
		mem := memdb.New()
		return &Store{Queries: mem, mem: mem}, nil
	case "", DriverPostgres:
		pool, err := InitDB(ctx, cfg.Url, cfg.Schema)
		if err != nil {
			return nil, err
		}
		q := sqlc.New(pool)
		return &Store{Queries: q, pool: pool, sqlc: q}, nil
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.Driver)
	}
}

// InTx runs fn against queries bound to one transaction. Nothing fn wrote
// is kept when it returns an error.
func (s *Store) InTx(ctx context.Context, fn func(q sqlc.Querier) error) error {
	if s.mem != nil {
		return s.mem.InTx(fn)
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(s.sqlc.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s.pool == nil {
		return nil
	}
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
