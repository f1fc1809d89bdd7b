package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/sentry-coach/pkg/state"
	"github.com/jwebster45206/sentry-coach/pkg/storage"
)

const (
	sessionPrefix = "session:"
	lockSuffix    = ":lock"

	// DefaultSessionTTL applies when NewRedisStorage is given a zero TTL.
	DefaultSessionTTL = 2 * time.Hour
)

// RedisStorage keeps sessions in Redis as JSON with a sliding TTL.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisStorage accepts either a host:port address or a redis:// URL.
func NewRedisStorage(redisURL string, ttl time.Duration, logger *slog.Logger) (*RedisStorage, error) {
	opts := &redis.Options{Addr: redisURL}
	if strings.Contains(redisURL, "://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		opts = parsed
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &RedisStorage{
		client: redis.NewClient(opts),
		logger: logger,
		ttl:    ttl,
	}, nil
}

func sessionKey(id uuid.UUID) string {
	return sessionPrefix + id.String()
}

func lockKey(id uuid.UUID) string {
	return sessionPrefix + id.String() + lockSuffix
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	const maxRetries = 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		err := r.Ping(ctx)
		if err == nil {
			r.logger.Info("Redis connection established")
			return nil
		}
		r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
		case <-time.After(retryDelay):
		}
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Session operations

// SaveSession stamps UpdatedAt and refreshes the key's TTL.
func (r *RedisStorage) SaveSession(ctx context.Context, s *state.Session) error {
	if s == nil {
		return errors.New("session cannot be nil")
	}
	s.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(s)
	if err != nil {
		r.logger.Error("Failed to marshal session", "session_id", s.ID, "error", err)
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(s.ID), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save session", "session_id", s.ID, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadSession(ctx context.Context, id uuid.UUID) (*state.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Session not found", "session_id", id)
			return nil, nil
		}
		r.logger.Error("Failed to load session", "session_id", id, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var s state.Session
	if err := json.Unmarshal(data, &s); err != nil {
		r.logger.Error("Failed to unmarshal session", "session_id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *RedisStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id), lockKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete session", "session_id", id, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Turn lock

func (r *RedisStorage) AcquireTurnLock(ctx context.Context, id uuid.UUID, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, lockKey(id), time.Now().UTC().Format(time.RFC3339Nano), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire turn lock: %w", err)
	}
	return ok, nil
}

func (r *RedisStorage) ReleaseTurnLock(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, lockKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to release turn lock: %w", err)
	}
	return nil
}
