package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList records access tokens that must be refused before they
// expire: single tokens on logout, and every token of a seller after a
// password change.
type RevocationList interface {
	// RevokeToken refuses the token with this JTI for ttl
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)

	// RevokeUserTokens refuses every token of userID issued before now.
	// The cutoff is remembered for ttl.
	RevokeUserTokens(ctx context.Context, userID string, ttl time.Duration) error
	UserTokenRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

// revokedBefore compares at the one-second precision of JWT "iat" claims.
// A token minted in the same second as the cutoff stays valid so a login
// right after a password change is not refused.
func revokedBefore(issuedAt, cutoff time.Time) bool {
	return issuedAt.Unix() < cutoff.Unix()
}

// RedisRevocationList keeps revocations in Redis so every API instance
// sees them
type RedisRevocationList struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisRevocationList creates a revocation list on a shared client
func NewRedisRevocationList(client redis.UniversalClient) *RedisRevocationList {
	return &RedisRevocationList{client: client, prefix: "catalog:revoked:"}
}

func (l *RedisRevocationList) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if err := l.client.Set(ctx, l.prefix+"jti:"+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (l *RedisRevocationList) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := l.client.Exists(ctx, l.prefix+"jti:"+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}

func (l *RedisRevocationList) RevokeUserTokens(ctx context.Context, userID string, ttl time.Duration) error {
	if err := l.client.Set(ctx, l.prefix+"user:"+userID, time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("revoke user tokens: %w", err)
	}
	return nil
}

func (l *RedisRevocationList) UserTokenRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	raw, err := l.client.Get(ctx, l.prefix+"user:"+userID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check revoked user tokens: %w", err)
	}

	cutoff, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("parse revocation cutoff %q: %w", raw, err)
	}
	return revokedBefore(issuedAt, time.Unix(cutoff, 0)), nil
}

// MemoryRevocationList keeps revocations in process memory. It backs
// single-instance deployments without Redis and the tests.
type MemoryRevocationList struct {
	mu      sync.Mutex
	tokens  map[string]time.Time // jti -> entry expiry
	cutoffs map[string]cutoff    // user id -> cutoff
	now     func() time.Time
}

type cutoff struct {
	at      time.Time
	expires time.Time
}

// NewMemoryRevocationList creates an empty in-memory list
func NewMemoryRevocationList() *MemoryRevocationList {
	return &MemoryRevocationList{
		tokens:  make(map[string]time.Time),
		cutoffs: make(map[string]cutoff),
		now:     time.Now,
	}
}

func (l *MemoryRevocationList) RevokeToken(_ context.Context, jti string, ttl time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens[jti] = l.now().Add(ttl)
	return nil
}

func (l *MemoryRevocationList) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	expires, ok := l.tokens[jti]
	if !ok {
		return false, nil
	}
	if !l.now().Before(expires) {
		delete(l.tokens, jti)
		return false, nil
	}
	return true, nil
}

func (l *MemoryRevocationList) RevokeUserTokens(_ context.Context, userID string, ttl time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	l.cutoffs[userID] = cutoff{at: now, expires: now.Add(ttl)}
	return nil
}

func (l *MemoryRevocationList) UserTokenRevoked(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.cutoffs[userID]
	if !ok {
		return false, nil
	}
	if !l.now().Before(c.expires) {
		delete(l.cutoffs, userID)
		return false, nil
	}
	return revokedBefore(issuedAt, c.at), nil
}

var (
	_ RevocationList = (*RedisRevocationList)(nil)
	_ RevocationList = (*MemoryRevocationList)(nil)
)
