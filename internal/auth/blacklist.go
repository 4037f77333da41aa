package auth

import (
	"sync"
	"time"
)

// Blacklist tracks tokens invalidated before their natural expiry. Revocation
// is by exact token string: revoking one token does not touch other tokens
// issued to the same user.
type Blacklist interface {
	// Revoke adds a token to the set. Idempotent. expiresAt bounds how long
	// the entry must be kept; a zero time falls back to the default TTL.
	Revoke(token string, expiresAt time.Time)
	IsRevoked(token string) bool
}

// MemoryBlacklist is a mutex-guarded in-process implementation shared by all
// concurrent requests. Entries are pruned lazily once their recorded expiry
// passes, since the codec rejects the token on its own from that point.
type MemoryBlacklist struct {
	mu         sync.RWMutex
	tokens     map[string]time.Time
	defaultTTL time.Duration
	now        func() time.Time
}

func NewMemoryBlacklist(defaultTTL time.Duration) *MemoryBlacklist {
	return &MemoryBlacklist{
		tokens:     make(map[string]time.Time),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

func (b *MemoryBlacklist) Revoke(token string, expiresAt time.Time) {
	if token == "" {
		return
	}
	if expiresAt.IsZero() {
		expiresAt = b.now().Add(b.defaultTTL)
	}
	b.mu.Lock()
	b.tokens[token] = expiresAt
	b.prune()
	b.mu.Unlock()
}

func (b *MemoryBlacklist) IsRevoked(token string) bool {
	b.mu.RLock()
	expiresAt, ok := b.tokens[token]
	b.mu.RUnlock()
	if !ok {
		return false
	}
	if b.now().After(expiresAt) {
		b.mu.Lock()
		delete(b.tokens, token)
		b.mu.Unlock()
		return false
	}
	return true
}

// prune drops entries whose tokens have expired on their own. Caller holds the
// write lock.
func (b *MemoryBlacklist) prune() {
	now := b.now()
	for token, expiresAt := range b.tokens {
		if now.After(expiresAt) {
			delete(b.tokens, token)
		}
	}
}
