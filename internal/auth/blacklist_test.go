package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryBlacklist_RevokeAndCheck(t *testing.T) {
	t.Parallel()

	bl := NewMemoryBlacklist(time.Hour)

	assert.False(t, bl.IsRevoked("t1"))

	bl.Revoke("t1", time.Now().Add(time.Hour))
	assert.True(t, bl.IsRevoked("t1"))

	// Idempotent.
	bl.Revoke("t1", time.Now().Add(time.Hour))
	assert.True(t, bl.IsRevoked("t1"))

	// Independent of sibling tokens.
	assert.False(t, bl.IsRevoked("t2"))
}

func TestMemoryBlacklist_ZeroExpiryUsesDefaultTTL(t *testing.T) {
	t.Parallel()

	bl := NewMemoryBlacklist(time.Hour)
	bl.Revoke("t1", time.Time{})
	assert.True(t, bl.IsRevoked("t1"))
}

func TestMemoryBlacklist_EntriesExpireWithToken(t *testing.T) {
	t.Parallel()

	now := time.Now()
	bl := NewMemoryBlacklist(time.Hour)
	bl.now = func() time.Time { return now }

	bl.Revoke("t1", now.Add(time.Minute))
	assert.True(t, bl.IsRevoked("t1"))

	// Once the token is past its natural expiry the entry is dropped; the
	// codec rejects it anyway from this point.
	now = now.Add(2 * time.Minute)
	assert.False(t, bl.IsRevoked("t1"))

	bl.mu.RLock()
	_, kept := bl.tokens["t1"]
	bl.mu.RUnlock()
	assert.False(t, kept)
}

func TestMemoryBlacklist_IgnoresEmptyToken(t *testing.T) {
	t.Parallel()

	bl := NewMemoryBlacklist(time.Hour)
	bl.Revoke("", time.Now().Add(time.Hour))
	assert.False(t, bl.IsRevoked(""))
}

func TestMemoryBlacklist_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	bl := NewMemoryBlacklist(time.Hour)
	expiresAt := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bl.Revoke("shared", expiresAt)
				bl.IsRevoked("shared")
				bl.IsRevoked("other")
			}
		}()
	}
	wg.Wait()

	assert.True(t, bl.IsRevoked("shared"))
}
