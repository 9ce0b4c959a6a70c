package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Revoker remembers logged-out tokens until they expire.
type Revoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

const blacklistPrefix = "blacklist:"

type RedisRevoker struct {
	client *redis.Client
}

// NewRedisRevoker connects to addr and pings it before returning.
func NewRedisRevoker(ctx context.Context, addr string, db int) (*RedisRevoker, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return &RedisRevoker{client: client}, nil
}

func (r *RedisRevoker) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return r.client.Set(ctx, blacklistPrefix+token, "1", ttl).Err()
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := r.client.Get(ctx, blacklistPrefix+token).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisRevoker) Close() error {
	return r.client.Close()
}

type MemoryRevoker struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	now    func() time.Time
}

func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{tokens: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryRevoker) Revoke(_ context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for t, exp := range m.tokens {
		if !now.Before(exp) {
			delete(m.tokens, t)
		}
	}
	m.tokens[token] = now.Add(ttl)
	return nil
}

func (m *MemoryRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.tokens[token]
	if !ok {
		return false, nil
	}
	if !m.now().Before(exp) {
		delete(m.tokens, token)
		return false, nil
	}
	return true, nil
}
