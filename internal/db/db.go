package db

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrEmptyDSN is returned when no connection string is configured.
var ErrEmptyDSN = errors.New("db: connection string is empty")

var (
	mu     sync.Mutex
	shared *pgxpool.Pool
)

// Connect opens a pgx connection pool and verifies connectivity with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, ErrEmptyDSN
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// Open returns the process-wide pool, establishing it on first use.
// Repeat calls return the same pool; concurrent cold-start callers are
// serialized so only one connection attempt runs. A failed attempt
// leaves no pool behind, so the next call retries.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	mu.Lock()
	defer mu.Unlock()

	if shared != nil {
		return shared, nil
	}

	pool, err := Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	shared = pool
	return shared, nil
}
