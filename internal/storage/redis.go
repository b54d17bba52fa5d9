package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/ringtrail/pkg/journey"
	"github.com/jwebster45206/ringtrail/pkg/state"
)

// RedisStorage implements the Storage interface using Redis for run state
// and the filesystem for static journey content.
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
	runTTL  time.Duration
}

var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance.
func NewRedisStorage(redisURL, dataDir string, runTTL time.Duration, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	if dataDir == "" {
		dataDir = "./data"
	}
	if runTTL <= 0 {
		runTTL = 24 * time.Hour
	}

	return &RedisStorage{
		client:  rdb,
		logger:  logger,
		dataDir: dataDir,
		runTTL:  runTTL,
	}
}

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
	return nil
}

// WaitForConnection polls Redis until it responds or the context expires.
// Used at startup when Redis and the API boot together.
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	const maxRetries = 30
	const retryDelay = 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}
		return nil
	}
	return errors.New("redis did not become ready in time")
}

func runKey(id uuid.UUID) string {
	return "run:" + id.String()
}

func (r *RedisStorage) SaveRun(ctx context.Context, gs *state.GameState) error {
	data, err := json.Marshal(gs)
	if err != nil {
		r.logger.Error("Failed to marshal run", "run_id", gs.ID, "error", err)
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	if err := r.client.Set(ctx, runKey(gs.ID), string(data), r.runTTL).Err(); err != nil {
		r.logger.Error("Failed to save run", "run_id", gs.ID, "error", err)
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadRun(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	cmd := r.client.Get(ctx, runKey(id))
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		r.logger.Error("Failed to load run", "run_id", id, "error", err)
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	var gs state.GameState
	if err := json.Unmarshal([]byte(cmd.Val()), &gs); err != nil {
		r.logger.Error("Failed to unmarshal run", "run_id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return &gs, nil
}

func (r *RedisStorage) DeleteRun(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, runKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete run", "run_id", id, "error", err)
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}

// GetJourney loads the journey content file from the data directory.
// Content is static; callers load once at startup and keep the result.
func (r *RedisStorage) GetJourney(ctx context.Context) (*journey.Journey, error) {
	path := filepath.Join(r.dataDir, "journey.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read journey content: %w", err)
	}

	var j journey.Journey
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("failed to parse journey content: %w", err)
	}
	return &j, nil
}
