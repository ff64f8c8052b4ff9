package ratelimit

import (
	"sync"
	"time"
)

type failureRecord struct {
	Count        int
	LastFailure  time.Time
	BlockedUntil time.Time
}

// AuthLimiter blocks clients that keep presenting a wrong API key.
type AuthLimiter struct {
	mu             sync.Mutex
	failures       map[string]*failureRecord
	maxFailures    int
	windowDuration time.Duration
	blockDuration  time.Duration
	stop           chan struct{}
	stopOnce       sync.Once
}

func NewAuthLimiter(maxFailures int, windowDuration, blockDuration time.Duration) *AuthLimiter {
	limiter := &AuthLimiter{
		failures:       make(map[string]*failureRecord),
		maxFailures:    maxFailures,
		windowDuration: windowDuration,
		blockDuration:  blockDuration,
		stop:           make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

// Blocked reports whether clientID is currently locked out and for how long.
func (l *AuthLimiter) Blocked(clientID string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.failures[clientID]
	if !ok {
		return false, 0
	}
	if remaining := time.Until(record.BlockedUntil); remaining > 0 {
		return true, remaining
	}
	return false, 0
}

// Fail records a rejected attempt and reports whether the client is now
// blocked.
func (l *AuthLimiter) Fail(clientID string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	record, ok := l.failures[clientID]
	if !ok {
		record = &failureRecord{}
		l.failures[clientID] = record
	}

	if now.Before(record.BlockedUntil) {
		return true, record.BlockedUntil.Sub(now)
	}
	if now.Sub(record.LastFailure) > l.windowDuration {
		record.Count = 0
	}

	record.Count++
	record.LastFailure = now

	if record.Count >= l.maxFailures {
		record.BlockedUntil = now.Add(l.blockDuration)
		record.Count = 0
		return true, l.blockDuration
	}
	return false, 0
}

func (l *AuthLimiter) Reset(clientID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.failures, clientID)
}

func (l *AuthLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *AuthLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.prune(time.Now())
		}
	}
}

func (l *AuthLimiter) prune(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for clientID, record := range l.failures {
		if now.Sub(record.LastFailure) > l.windowDuration*2 && now.After(record.BlockedUntil) {
			delete(l.failures, clientID)
		}
	}
}
