package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// RevocationRegistry records bearer tokens that must no longer be accepted.
// Entries expire once the token itself would have expired.
type RevocationRegistry interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// TokenKey is the registry key for a raw bearer token. The raw token is never
// stored.
func TokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// MemoryRevocationRegistry is a single-process registry for local development
// and tests. Deployments with more than one server use the Redis registry.
type MemoryRevocationRegistry struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocationRegistry() *MemoryRevocationRegistry {
	return &MemoryRevocationRegistry{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (r *MemoryRevocationRegistry) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[TokenKey(token)] = r.now().Add(ttl)
	return nil
}

func (r *MemoryRevocationRegistry) IsRevoked(ctx context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := TokenKey(token)
	expiresAt, ok := r.entries[key]
	if !ok {
		return false, nil
	}
	if !r.now().Before(expiresAt) {
		delete(r.entries, key)
		return false, nil
	}
	return true, nil
}
