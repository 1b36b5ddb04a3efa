// internal/app/store/adminsessions/store.go
package adminsessions

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one issued admin token.
type Session struct {
	CreatedAt    time.Time
	LastActivity time.Time
}

// Store keeps admin sessions in process memory with a sliding idle
// window. Sessions are lost on restart.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session

	idle time.Duration
	now  func() time.Time
}

// New creates a session Store. A nil now uses time.Now.
func New(idle time.Duration, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		sessions: make(map[string]*Session),
		idle:     idle,
		now:      now,
	}
}

// IdleTimeout returns the sliding window length.
func (s *Store) IdleTimeout() time.Duration {
	return s.idle
}

// Create mints a random token and records a fresh session for it.
func (s *Store) Create() string {
	token := uuid.NewString()
	now := s.now()

	s.mu.Lock()
	s.sessions[token] = &Session{CreatedAt: now, LastActivity: now}
	s.mu.Unlock()
	return token
}

// Touch validates token and refreshes its last activity.
// Returns:
//   - found: false if the token was never issued or already evicted
//   - expired: true if the session was idle past the window; it is evicted
func (s *Store) Touch(token string) (found, expired bool) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return false, false
	}
	if now.Sub(sess.LastActivity) > s.idle {
		delete(s.sessions, token)
		return true, true
	}
	sess.LastActivity = now
	return true, false
}

// Delete removes token.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts every session idle past the window and returns the count.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for token, sess := range s.sessions {
		if now.Sub(sess.LastActivity) > s.idle {
			delete(s.sessions, token)
			n++
		}
	}
	return n
}
