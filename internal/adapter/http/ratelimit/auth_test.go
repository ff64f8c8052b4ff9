package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthLimiter_UnknownClientNotBlocked(t *testing.T) {
	limiter := NewAuthLimiter(3, time.Minute, 5*time.Minute)
	defer limiter.Stop()

	blocked, remaining := limiter.Blocked("client1")

	assert.False(t, blocked)
	assert.Zero(t, remaining)
}

func TestAuthLimiter_BlocksAfterMaxFailures(t *testing.T) {
	limiter := NewAuthLimiter(3, time.Minute, 5*time.Minute)
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		blocked, _ := limiter.Fail("client1")
		assert.False(t, blocked)
	}

	blocked, remaining := limiter.Fail("client1")
	assert.True(t, blocked)
	assert.Equal(t, 5*time.Minute, remaining)

	blocked, remaining = limiter.Blocked("client1")
	assert.True(t, blocked)
	assert.Greater(t, remaining, 4*time.Minute)
}

func TestAuthLimiter_OtherClientsUnaffected(t *testing.T) {
	limiter := NewAuthLimiter(1, time.Minute, 5*time.Minute)
	defer limiter.Stop()

	limiter.Fail("client1")

	blocked, _ := limiter.Blocked("client2")
	assert.False(t, blocked)
}

func TestAuthLimiter_WindowResetsCount(t *testing.T) {
	limiter := NewAuthLimiter(2, 50*time.Millisecond, 5*time.Minute)
	defer limiter.Stop()

	limiter.Fail("client1")
	time.Sleep(80 * time.Millisecond)

	blocked, _ := limiter.Fail("client1")
	assert.False(t, blocked)
}

func TestAuthLimiter_BlockExpires(t *testing.T) {
	limiter := NewAuthLimiter(1, time.Minute, 50*time.Millisecond)
	defer limiter.Stop()

	blocked, _ := limiter.Fail("client1")
	require.True(t, blocked)

	time.Sleep(80 * time.Millisecond)

	blocked, _ = limiter.Blocked("client1")
	assert.False(t, blocked)
}

func TestAuthLimiter_Reset(t *testing.T) {
	limiter := NewAuthLimiter(1, time.Minute, 5*time.Minute)
	defer limiter.Stop()

	limiter.Fail("client1")
	limiter.Reset("client1")

	blocked, _ := limiter.Blocked("client1")
	assert.False(t, blocked)
}

func TestAuthLimiter_Prune(t *testing.T) {
	limiter := NewAuthLimiter(5, 10*time.Millisecond, 10*time.Millisecond)
	defer limiter.Stop()

	limiter.Fail("old")
	limiter.prune(time.Now().Add(time.Second))

	limiter.mu.Lock()
	_, exists := limiter.failures["old"]
	limiter.mu.Unlock()
	assert.False(t, exists)
}

func TestAuthLimiter_ConcurrentAccess(t *testing.T) {
	limiter := NewAuthLimiter(1000, time.Minute, 5*time.Minute)
	defer limiter.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				limiter.Fail("concurrent-client")
			}
		}()
	}
	wg.Wait()

	limiter.mu.Lock()
	record, exists := limiter.failures["concurrent-client"]
	limiter.mu.Unlock()

	require.True(t, exists)
	assert.Equal(t, 100, record.Count)
}
