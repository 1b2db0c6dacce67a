// Package data wires the MongoDB and Redis clients to the repositories.
package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/taskmanager/config"
	"github.com/ncobase/taskmanager/data/mongodb"
	redisdata "github.com/ncobase/taskmanager/data/redis"
	"github.com/ncobase/taskmanager/internal/data/repository"
	"github.com/ncobase/taskmanager/logging/logger"
	"github.com/redis/go-redis/v9"
)

// Data encapsulates all data layer dependencies.
type Data struct {
	mongo    *mongodb.Manager
	redis    *redis.Client
	TaskRepo repository.TaskRepository
	UserRepo repository.UserRepository
}

// New creates a new Data instance backed by MongoDB, with Redis when configured.
func New(ctx context.Context, cfg *config.Data, logger *logger.Logger) (*Data, error) {
	if cfg == nil {
		return nil, errors.New("data config is nil")
	}

	m, err := mongodb.Connect(ctx, cfg.MongoDB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	logger.Info(ctx, "Connected to MongoDB successfully", "database", cfg.MongoDB.Database)

	rc, err := redisdata.Connect(ctx, cfg.Redis)
	if err != nil {
		_ = m.Close(context.Background())
		return nil, err
	}
	if rc != nil {
		logger.Info(ctx, "Connected to Redis successfully", "addr", cfg.Redis.Addr)
	}

	db := m.Database()
	return &Data{
		mongo:    m,
		redis:    rc,
		TaskRepo: repository.NewTaskRepository(db, logger),
		UserRepo: repository.NewUserRepository(db, logger),
	}, nil
}

// NewMemory creates a Data instance with in-memory repositories and no cache.
func NewMemory() *Data {
	return &Data{
		TaskRepo: repository.NewMemoryTaskRepository(),
		UserRepo: repository.NewMemoryUserRepository(),
	}
}

// Redis returns the Redis client, nil when caching is disabled.
func (d *Data) Redis() *redis.Client {
	return d.redis
}

// Health reports the status of every backing store.
func (d *Data) Health(ctx context.Context) map[string]string {
	status := map[string]string{}
	if d.mongo == nil {
		status["store"] = "memory"
		return status
	}
	if err := d.mongo.Health(ctx); err != nil {
		status["mongodb"] = err.Error()
	} else {
		status["mongodb"] = "ok"
	}
	if d.redis != nil {
		if err := d.redis.Ping(ctx).Err(); err != nil {
			status["redis"] = err.Error()
		} else {
			status["redis"] = "ok"
		}
	}
	return status
}

// Close closes the connections.
func (d *Data) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.Join(redisdata.Close(d.redis), d.mongo.Close(ctx))
}
