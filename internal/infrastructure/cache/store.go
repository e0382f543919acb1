// Package cache provides the byte-oriented key/value stores behind the
// catalog read cache.
package cache

import (
	"context"
	"time"
)

// Store is a key/value cache with per-entry TTL
type Store interface {
	// Get returns the value and true, or false on a miss
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error
	// Close releases resources held by the store
	Close() error
}

// NopStore never stores anything
type NopStore struct{}

func (NopStore) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NopStore) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NopStore) Delete(context.Context, ...string) error                  { return nil }
func (NopStore) Close() error                                             { return nil }

var _ Store = NopStore{}
