// Package mongodb manages the MongoDB client used by the repositories.
//
//	m, err := mongodb.Connect(ctx, cfg.Data.MongoDB)
//	tasks := m.Collection("tasks")
//	defer m.Close(context.Background())
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/taskmanager/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Manager owns a connected client and the application database.
type Manager struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes a MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, cfg *config.MongoDB) (*Manager, error) {
	if cfg == nil {
		return nil, errors.New("mongodb: configuration is required")
	}
	if cfg.URI == "" {
		return nil, errors.New("mongodb: uri is empty")
	}
	if cfg.Database == "" {
		return nil, errors.New("mongodb: database name is empty")
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongodb: failed to connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: failed to ping: %w", err)
	}

	return &Manager{client: client, db: client.Database(cfg.Database)}, nil
}

// Client returns the underlying client.
func (m *Manager) Client() *mongo.Client {
	if m == nil {
		return nil
	}
	return m.client
}

// Database returns the application database.
func (m *Manager) Database() *mongo.Database {
	if m == nil {
		return nil
	}
	return m.db
}

// Collection returns a collection of the application database.
func (m *Manager) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// Health pings the primary.
func (m *Manager) Health(ctx context.Context) error {
	if m == nil || m.client == nil {
		return errors.New("mongodb: not connected")
	}
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb: ping failed: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (m *Manager) Close(ctx context.Context) error {
	if m == nil || m.client == nil {
		return nil
	}
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongodb: failed to disconnect: %w", err)
	}
	return nil
}
