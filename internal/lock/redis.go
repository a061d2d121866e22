package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrHeld means another analysis run currently owns the conversation.
var ErrHeld = errors.New("analysis already in progress")

// AnalysisGuard serializes analysis runs per conversation. Score writes are
// last-write-wins at the row level, so without this guard two concurrent runs
// on the same call would silently clobber each other.
type AnalysisGuard interface {
	Acquire(ctx context.Context, conversationID int64) (release func(), err error)
}

type redisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// defaultLockTTL bounds how long a crashed run can block re-analysis.
const defaultLockTTL = 2 * time.Minute

func NewRedisGuard(client *redis.Client, ttl time.Duration) AnalysisGuard {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &redisGuard{client: client, ttl: ttl}
}

func (g *redisGuard) Acquire(ctx context.Context, conversationID int64) (func(), error) {
	key := fmt.Sprintf("engine:analysis:%d", conversationID)

	ok, err := g.client.SetNX(ctx, key, time.Now().UnixMilli(), g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquiring analysis lock: %w", err)
	}
	if !ok {
		return nil, ErrHeld
	}

	release := func() {
		// Release must not inherit the caller's cancellation: a cancelled
		// pipeline still needs to free the lock.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
		defer cancel()
		if err := g.client.Del(ctx, key).Err(); err != nil {
			slog.WarnContext(ctx, "failed to release analysis lock, will expire",
				"conversation_id", conversationID, "error", err)
		}
	}
	return release, nil
}

// NopGuard performs no locking; used when redis is not configured.
type NopGuard struct{}

func (NopGuard) Acquire(context.Context, int64) (func(), error) {
	return func() {}, nil
}
