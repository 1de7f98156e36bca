package handoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/intern-ease/internal/types"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS handoff_results (
	key        TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore keeps entries in a PostgreSQL table
type PostgresStore struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewPostgresStore connects to databaseURL and creates the table if needed
func NewPostgresStore(ctx context.Context, databaseURL string, ttl time.Duration) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required for the postgres backend")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create handoff table: %w", err)
	}

	return &PostgresStore{pool: pool, ttl: ttl}, nil
}

// Put upserts the encoded result
func (s *PostgresStore) Put(ctx context.Context, key string, result *types.GenerationResult) error {
	payload, err := encode(result)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO handoff_results (key, payload, expires_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET payload = $2, expires_at = $3`,
		key, payload, time.Now().Add(s.ttl),
	)
	if err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}
	return nil
}

// Get returns the live result stored under key
func (s *PostgresStore) Get(ctx context.Context, key string) (*types.GenerationResult, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM handoff_results WHERE key = $1 AND expires_at > NOW()`,
		key,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load result: %w", err)
	}
	return decode(key, payload)
}

// DeleteExpired removes expired rows and reports how many were removed
func (s *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM handoff_results WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired results: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
