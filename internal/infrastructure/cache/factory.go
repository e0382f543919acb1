package cache

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Backend names accepted by NewStore
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
	BackendNone   = "none"
)

// NewStore builds the Store for the configured backend. When the redis
// backend is requested without a client it falls back to memory and logs
// a warning.
func NewStore(backend string, client redis.UniversalClient, logger *zap.Logger) (Store, error) {
	switch backend {
	case BackendRedis:
		if client == nil {
			logger.Warn("Redis unavailable, using in-memory catalog cache")
			return NewMemoryStore(time.Minute), nil
		}
		logger.Info("Using Redis catalog cache")
		return NewRedisStore(client, DefaultKeyPrefix), nil
	case BackendMemory:
		logger.Info("Using in-memory catalog cache")
		return NewMemoryStore(time.Minute), nil
	case BackendNone, "":
		return NopStore{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
