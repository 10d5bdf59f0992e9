// Package sessionsvc remembers revoked API tokens until they would have expired anyway.
package sessionsvc

import (
	"context"
	"time"

	"github.com/trezcool/kalendar/core"
)

// Store keeps the ids of logged out tokens.
type Store interface {
	// Revoke marks the token id as unusable until exp.
	Revoke(ctx context.Context, id string, exp time.Time) error
	IsRevoked(ctx context.Context, id string) (bool, error)
	Close() error
}

// New returns a Redis store when an address is configured, a memory store otherwise.
func New(conf *core.Config) (Store, error) {
	if conf.Redis.Addr == "" {
		return NewMemoryStore(), nil
	}
	store, err := NewRedisStore(context.Background(), conf.Redis)
	if err != nil {
		return nil, err
	}
	return store, nil
}
