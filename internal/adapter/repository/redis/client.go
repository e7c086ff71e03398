// Package redis stores plan slots as JSON documents in Redis.
//
// Each slot lives under its own key, retireplan:<plan key>:<slot>. The annuity
// collection is one document, so replacing it is a single atomic SET.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

const keyPrefix = "retireplan"

// Options tunes the connection pool
type Options struct {
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Store wraps the go-redis client with health checking capabilities.
type Store struct {
	client *redis.Client
	now    func() time.Time
}

// Connect creates a new store from a redis:// URL and verifies the connection.
func Connect(ctx context.Context, url string, o Options) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	// Apply configuration overrides
	if o.PoolSize > 0 {
		opts.PoolSize = o.PoolSize
	}
	if o.DialTimeout > 0 {
		opts.DialTimeout = o.DialTimeout
	}
	if o.ReadTimeout > 0 {
		opts.ReadTimeout = o.ReadTimeout
	}
	if o.WriteTimeout > 0 {
		opts.WriteTimeout = o.WriteTimeout
	}

	client := redis.NewClient(opts)

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return New(client), nil
}

// New wraps an existing client
func New(client *redis.Client) *Store {
	return &Store{client: client, now: time.Now}
}

// Health checks if the Redis connection is healthy.
func (s *Store) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// Repositories exposes the store through the four slot interfaces
func (s *Store) Repositories() domain.Repositories {
	return domain.Repositories{
		SocialSecurity: &socialSecurityRepository{s},
		Annuities:      &annuityRepository{s},
		Housing:        &housingPlanRepository{s},
		CurrentHome:    &currentHomeRepository{s},
	}
}

func slotKey(key domain.PlanKey, slot domain.Slot) string {
	return keyPrefix + ":" + key.String() + ":" + string(slot)
}

// FlushAll removes every key from the selected database.
// Use between tests to ensure isolation.
func (s *Store) FlushAll(ctx context.Context) error {
	return s.client.FlushDB(ctx).Err()
}
