package handoff

import (
	"context"
	"time"

	"github.com/jonathan/intern-ease/internal/logging"
)

// Sweep removes expired entries from stores that keep them past their TTL.
// Redis expires keys itself, so it reports zero.
func Sweep(ctx context.Context, store Store) (int64, error) {
	switch s := store.(type) {
	case *MemoryStore:
		return int64(s.Sweep()), nil
	case *PostgresStore:
		return s.DeleteExpired(ctx)
	default:
		return 0, nil
	}
}

// RunJanitor sweeps store every interval until ctx is done
func RunJanitor(ctx context.Context, store Store, interval time.Duration, log *logging.Logger) {
	if log == nil {
		log = logging.NewNop()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := Sweep(ctx, store)
			if err != nil {
				log.Warn("handoff sweep failed", "error", err)
				continue
			}
			if removed > 0 {
				log.Debug("handoff sweep", "removed", removed)
			}
		}
	}
}
