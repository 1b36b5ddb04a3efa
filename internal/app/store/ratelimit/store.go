// internal/app/store/ratelimit/store.go
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// Attempt tracks failed admin login attempts from one client IP.
type Attempt struct {
	Count       int        // failed attempts since the last success or lockout expiry
	LockedUntil *time.Time // lockout expiry (nil if not locked)
	LastAttempt time.Time
}

// Store keeps login attempt counters in process memory. Records are lost
// on restart.
type Store struct {
	mu       sync.Mutex
	attempts map[string]*Attempt

	maxAttempts     int
	lockoutDuration time.Duration
	now             func() time.Time
}

// New creates a rate limit Store. A nil now uses time.Now.
func New(maxAttempts int, lockout time.Duration, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		attempts:        make(map[string]*Attempt),
		maxAttempts:     maxAttempts,
		lockoutDuration: lockout,
		now:             now,
	}
}

func normalizeKey(ip string) string {
	return strings.TrimSpace(ip)
}

// CheckAllowed reports whether ip may attempt a login.
// Returns:
//   - allowed: true if the attempt should be processed
//   - remaining: attempts left before lockout (-1 if locked)
//   - lockedUntil: when the lockout expires (nil if not locked)
//
// A record whose lockout has elapsed is deleted before answering.
func (s *Store) CheckAllowed(ip string) (allowed bool, remaining int, lockedUntil *time.Time) {
	ip = normalizeKey(ip)
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attempts[ip]
	if !ok {
		return true, s.maxAttempts, nil
	}
	if a.LockedUntil != nil {
		if now.Before(*a.LockedUntil) {
			until := *a.LockedUntil
			return false, -1, &until
		}
		delete(s.attempts, ip)
		return true, s.maxAttempts, nil
	}
	return true, s.maxAttempts - a.Count, nil
}

// RecordFailure records a failed login for ip.
// Returns:
//   - lockedOut: true if this failure triggered a lockout
//   - remaining: attempts left before lockout (0 when locked out)
//   - lockedUntil: when the lockout expires (nil if not locked)
func (s *Store) RecordFailure(ip string) (lockedOut bool, remaining int, lockedUntil *time.Time) {
	ip = normalizeKey(ip)
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attempts[ip]
	if !ok || (a.LockedUntil != nil && !now.Before(*a.LockedUntil)) {
		a = &Attempt{}
		s.attempts[ip] = a
	}
	a.Count++
	a.LastAttempt = now

	if a.Count >= s.maxAttempts {
		until := now.Add(s.lockoutDuration)
		a.LockedUntil = &until
		return true, 0, &until
	}
	return false, s.maxAttempts - a.Count, nil
}

// ClearOnSuccess removes the record for ip after a successful login.
func (s *Store) ClearOnSuccess(ip string) {
	ip = normalizeKey(ip)
	s.mu.Lock()
	delete(s.attempts, ip)
	s.mu.Unlock()
}

// Get returns a copy of the record for ip, or nil.
func (s *Store) Get(ip string) *Attempt {
	ip = normalizeKey(ip)
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[ip]
	if !ok {
		return nil
	}
	cp := *a
	return &cp
}

// Sweep deletes records whose lockout has elapsed and returns how many
// were removed. Records that never reached the limit are kept.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for ip, a := range s.attempts {
		if a.LockedUntil != nil && !now.Before(*a.LockedUntil) {
			delete(s.attempts, ip)
			n++
		}
	}
	return n
}
