// internal/app/system/adminauth/guard.go

// Package adminauth implements the admin API login: a single shared
// password, per-IP lockout after repeated failures, and opaque bearer
// tokens with a sliding idle window.
package adminauth

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lunicar/lunicar/internal/app/store/adminsessions"
	"github.com/lunicar/lunicar/internal/app/store/ratelimit"
	"go.uber.org/zap"
)

// Token errors. Their messages are the API error strings.
var (
	ErrMissingToken   = errors.New("Non autorisé")
	ErrInvalidToken   = errors.New("Token invalide")
	ErrSessionExpired = errors.New("Session expirée")
)

// LockedError is returned by Login while the client IP is locked out.
type LockedError struct {
	Until time.Time
	// Remaining is the time left on the lockout when the error was built.
	Remaining time.Duration
	// Triggered is true when this very attempt caused the lockout.
	Triggered bool
}

func (e *LockedError) Error() string {
	if e.Triggered {
		return fmt.Sprintf("Trop de tentatives. Compte bloqué pendant %d minutes.", ceilMinutes(e.Remaining))
	}
	return fmt.Sprintf("Trop de tentatives. Réessayez dans %d minute(s).", ceilMinutes(e.Remaining))
}

// InvalidPasswordError is returned by Login on a wrong password that did
// not trigger a lockout.
type InvalidPasswordError struct {
	Remaining int
}

func (e *InvalidPasswordError) Error() string {
	return fmt.Sprintf("Mot de passe incorrect. %d tentative(s) restante(s).", e.Remaining)
}

func ceilMinutes(d time.Duration) int {
	return int(math.Ceil(d.Minutes()))
}

// Guard ties the password check, attempt counters and sessions together.
type Guard struct {
	sessions *adminsessions.Store
	attempts *ratelimit.Store
	match    func(string) bool
	now      func() time.Time
	logger   *zap.Logger
}

// New creates a Guard. match reports whether a candidate password is the
// admin password. A nil now uses time.Now.
func New(sessions *adminsessions.Store, attempts *ratelimit.Store, match func(string) bool, now func() time.Time, logger *zap.Logger) *Guard {
	if now == nil {
		now = time.Now
	}
	return &Guard{
		sessions: sessions,
		attempts: attempts,
		match:    match,
		now:      now,
		logger:   logger,
	}
}

// Login checks password for a request from ip. On success it returns a
// fresh token and the idle window after which it expires.
func (g *Guard) Login(password, ip string) (token string, expiresIn time.Duration, err error) {
	if allowed, _, until := g.attempts.CheckAllowed(ip); !allowed && until != nil {
		return "", 0, &LockedError{Until: *until, Remaining: until.Sub(g.now())}
	}

	if g.match(password) {
		g.attempts.ClearOnSuccess(ip)
		token = g.sessions.Create()
		g.logger.Info("admin login", zap.String("ip", ip))
		return token, g.sessions.IdleTimeout(), nil
	}

	lockedOut, remaining, until := g.attempts.RecordFailure(ip)
	if lockedOut {
		g.logger.Warn("admin login locked out", zap.String("ip", ip), zap.Time("until", *until))
		return "", 0, &LockedError{Until: *until, Remaining: until.Sub(g.now()), Triggered: true}
	}
	g.logger.Info("admin login failed", zap.String("ip", ip), zap.Int("remaining", remaining))
	return "", 0, &InvalidPasswordError{Remaining: remaining}
}

// Authorize validates an Authorization header value ("Bearer <token>")
// and refreshes the session on success.
func (g *Guard) Authorize(header string) error {
	token, ok := bearerToken(header)
	if !ok {
		return ErrMissingToken
	}
	found, expired := g.sessions.Touch(token)
	switch {
	case !found:
		return ErrInvalidToken
	case expired:
		return ErrSessionExpired
	}
	return nil
}

// Logout drops the session for an Authorization header value, if any.
func (g *Guard) Logout(header string) {
	if token, ok := bearerToken(header); ok {
		g.sessions.Delete(token)
	}
}

// Sweep evicts idle sessions and elapsed lockouts.
func (g *Guard) Sweep() (sessions, attempts int) {
	return g.sessions.Sweep(), g.attempts.Sweep()
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
