// Package handoff stores a generation result between the submit and the
// results page. Entries are written once per session key and read any number
// of times until they expire.
package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/intern-ease/internal/types"
)

// DefaultTTL is how long an entry survives without the session ending first
const DefaultTTL = 24 * time.Hour

// ErrNotFound is returned when no live entry exists for a key
var ErrNotFound = errors.New("no generation result found")

// DecodeError represents a stored entry that is not a valid result
type DecodeError struct {
	Key   string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("stored result %s is unreadable: %v", e.Key, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Store holds generation results keyed by session key
type Store interface {
	Put(ctx context.Context, key string, result *types.GenerationResult) error
	Get(ctx context.Context, key string) (*types.GenerationResult, error)
	Close() error
}

// Backend names accepted by Open
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Options selects and configures a backend
type Options struct {
	Backend     string
	RedisURL    string
	DatabaseURL string
	TTL         time.Duration
}

// Open connects the configured backend
func Open(ctx context.Context, opts Options) (Store, error) {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryStore(ttl), nil
	case BackendRedis:
		return NewRedisStore(ctx, opts.RedisURL, ttl)
	case BackendPostgres:
		return NewPostgresStore(ctx, opts.DatabaseURL, ttl)
	default:
		return nil, fmt.Errorf("unknown handoff backend %q", opts.Backend)
	}
}

func encode(result *types.GenerationResult) ([]byte, error) {
	if result == nil {
		return nil, errors.New("result is nil")
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return payload, nil
}

func decode(key string, payload []byte) (*types.GenerationResult, error) {
	var result types.GenerationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, &DecodeError{Key: key, Cause: err}
	}
	return &result, nil
}
