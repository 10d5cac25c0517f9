package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jwebster45206/chronicle/pkg/era"
	"github.com/jwebster45206/chronicle/pkg/session"
)

// Storage defines a unified interface for all storage operations
// This interface combines session persistence (Redis) with era data loading (filesystem)
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Session operations (Redis-backed)
	SaveSession(ctx context.Context, s *session.Session) error
	// LoadSession returns nil, nil when the session does not exist or has expired
	LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// Era operations (built-in dataset overlaid by filesystem data)
	ListEras(ctx context.Context) ([]era.Era, error)
	// GetEra returns nil, nil for an unknown era
	GetEra(ctx context.Context, id string) (*era.Era, error)
}
