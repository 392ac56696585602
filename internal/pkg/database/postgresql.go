package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	*pgxpool.Pool
}

// Option tunes the pool before it connects.
type Option func(*pgxpool.Config)

// WithPoolSize bounds the number of pooled connections. Non-positive values keep the defaults.
func WithPoolSize(maxConns, minConns int32) Option {
	return func(c *pgxpool.Config) {
		if maxConns > 0 {
			c.MaxConns = maxConns
		}
		if minConns > 0 && minConns <= c.MaxConns {
			c.MinConns = minConns
		}
	}
}

// WithApplicationName tags server-side sessions, visible in pg_stat_activity.
func WithApplicationName(name string) Option {
	return func(c *pgxpool.Config) {
		c.ConnConfig.RuntimeParams["application_name"] = name
	}
}

func NewPostgreSQLDB(ctx context.Context, dsn string, opts ...Option) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	for _, opt := range opts {
		opt(config)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// BeginTx opens a read-committed transaction. Row locks taken inside it
// (SELECT ... FOR UPDATE) are what serialize concurrent ledger writes.
func (db *DB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
}

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Transactor runs fn inside one database transaction. Repositories called with
// txCtx join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}
