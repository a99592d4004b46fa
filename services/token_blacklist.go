package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist records signed-out tokens until they expire on their own
type TokenBlacklist interface {
	// Revoke blacklists a token for the given remaining lifetime
	Revoke(ctx context.Context, token string, ttl time.Duration) error

	// IsRevoked reports whether a token has been blacklisted
	IsRevoked(ctx context.Context, token string) bool
}

var tokenBlacklistInstance TokenBlacklist

// GetTokenBlacklist returns the initialized token blacklist instance
func GetTokenBlacklist() TokenBlacklist {
	return tokenBlacklistInstance
}

// SetTokenBlacklist sets the token blacklist instance (primarily for testing)
func SetTokenBlacklist(blacklist TokenBlacklist) {
	tokenBlacklistInstance = blacklist
}

// RedisTokenBlacklist implements TokenBlacklist on Redis keys with TTLs
type RedisTokenBlacklist struct {
	client *redis.Client
}

// InitTokenBlacklist initializes the blacklist on the given Redis client
func InitTokenBlacklist(client *redis.Client) TokenBlacklist {
	tokenBlacklistInstance = &RedisTokenBlacklist{client: client}
	return tokenBlacklistInstance
}

// Revoke blacklists a token for the given remaining lifetime
func (b *RedisTokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	key := fmt.Sprintf("blacklist:%s", token)
	if err := b.client.Set(ctx, key, true, ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token has been blacklisted
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, token string) bool {
	key := fmt.Sprintf("blacklist:%s", token)
	count, err := b.client.Exists(ctx, key).Result()
	return err == nil && count > 0
}

// MemoryTokenBlacklist is an in-memory TokenBlacklist for tests
type MemoryTokenBlacklist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

// NewMemoryTokenBlacklist creates an empty in-memory blacklist
func NewMemoryTokenBlacklist() *MemoryTokenBlacklist {
	return &MemoryTokenBlacklist{revoked: make(map[string]time.Time)}
}

// SetAsBlacklistForTesting sets this blacklist as the global instance
func (b *MemoryTokenBlacklist) SetAsBlacklistForTesting() {
	SetTokenBlacklist(b)
}

// Revoke blacklists a token for the given remaining lifetime
func (b *MemoryTokenBlacklist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	b.revoked[token] = time.Now().Add(ttl)
	b.mu.Unlock()
	return nil
}

// IsRevoked reports whether a token has been blacklisted
func (b *MemoryTokenBlacklist) IsRevoked(_ context.Context, token string) bool {
	b.mu.RLock()
	expiry, ok := b.revoked[token]
	b.mu.RUnlock()
	return ok && time.Now().Before(expiry)
}
