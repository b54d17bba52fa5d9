package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/ringtrail/pkg/journey"
	"github.com/jwebster45206/ringtrail/pkg/state"
)

// Storage persists run state and serves the static journey content.
// Runs live in Redis; content is read from the filesystem.
type Storage interface {
	Ping(ctx context.Context) error
	Close() error

	SaveRun(ctx context.Context, gs *state.GameState) error
	// LoadRun returns (nil, nil) when the run does not exist.
	LoadRun(ctx context.Context, id uuid.UUID) (*state.GameState, error)
	DeleteRun(ctx context.Context, id uuid.UUID) error

	GetJourney(ctx context.Context) (*journey.Journey, error)
}
