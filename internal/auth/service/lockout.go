package service

import (
	"sync"
	"time"

	"github.com/kanenguyen264/library-management-sub008/internal/auth/domain"
)

const (
	defaultMaxAttempts     = 5
	defaultLockoutDuration = 15 * time.Minute
)

// LockoutStore bounds repeated failed logins per identity+origin. State is
// process-local: it does not survive restarts and does not span replicas.
// Both the failure counters and the lock expiries are keyed by username:ip
// so one origin exhausting its attempts cannot lock out the account for
// everyone behind a shared address.
type LockoutStore struct {
	mu          sync.Mutex
	failures    map[string]int
	lockedUntil map[string]time.Time

	maxAttempts  int
	lockDuration time.Duration
	clock        domain.Clock
}

func NewLockoutStore(maxAttempts int, lockDuration time.Duration, clock domain.Clock) *LockoutStore {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if lockDuration <= 0 {
		lockDuration = defaultLockoutDuration
	}

	return &LockoutStore{
		failures:     make(map[string]int),
		lockedUntil:  make(map[string]time.Time),
		maxAttempts:  maxAttempts,
		lockDuration: lockDuration,
		clock:        clock,
	}
}

func lockoutKey(username, ip string) string {
	return username + ":" + ip
}

// RecordFailure increments the counter and sets the lock once the counter
// reaches the configured maximum. Under concurrent attempts the count is a
// rough bound, not an exact one.
func (s *LockoutStore) RecordFailure(username, ip string) {
	key := lockoutKey(username, ip)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[key]++
	if s.failures[key] >= s.maxAttempts {
		s.lockedUntil[key] = s.clock.Now().Add(s.lockDuration)
	}
}

// IsLockedOut reports whether the identity is locked and, if so, how long
// remains. Expired locks are cleared lazily on read.
func (s *LockoutStore) IsLockedOut(username, ip string) (bool, time.Duration) {
	key := lockoutKey(username, ip)

	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.lockedUntil[key]
	if !ok {
		return false, 0
	}

	now := s.clock.Now()
	if now.Before(until) {
		return true, until.Sub(now)
	}

	delete(s.lockedUntil, key)
	return false, 0
}

// ResetFailures clears the counter and any lock after a successful login.
func (s *LockoutStore) ResetFailures(username, ip string) {
	key := lockoutKey(username, ip)

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.failures, key)
	delete(s.lockedUntil, key)
}
