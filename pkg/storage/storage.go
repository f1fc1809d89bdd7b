package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/sentry-coach/pkg/state"
)

// Storage persists practice sessions between turns.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Session operations. LoadSession returns nil, nil when the session does
	// not exist or has expired.
	SaveSession(ctx context.Context, s *state.Session) error
	LoadSession(ctx context.Context, id uuid.UUID) (*state.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// Per-session turn lock. AcquireTurnLock reports false when another turn
	// already holds the lock. The lock expires after ttl if never released.
	AcquireTurnLock(ctx context.Context, id uuid.UUID, ttl time.Duration) (bool, error)
	ReleaseTurnLock(ctx context.Context, id uuid.UUID) error
}
