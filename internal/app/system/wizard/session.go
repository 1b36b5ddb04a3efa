// internal/app/system/wizard/session.go
package wizard

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	// DefaultSessionName is the cookie holding the wizard session id.
	DefaultSessionName = "lunicar-reprise"

	// SessionMaxAge bounds how long an unfinished request is kept.
	SessionMaxAge = 24 * time.Hour

	// SessionMaxLength bounds one encoded session file. Field limits keep
	// a full wizard well below it.
	SessionMaxLength = 128 << 10

	stateKey = "state"

	// sessionFilePrefix is the file name prefix used by
	// sessions.FilesystemStore.
	sessionFilePrefix = "session_"
)

// SessionConfigError is returned when the session key is unusable.
type SessionConfigError struct {
	Message string
}

func (e *SessionConfigError) Error() string {
	return e.Message
}

// SessionStore keeps wizard state in files under dir. The browser only
// holds a signed cookie with the session id.
type SessionStore struct {
	store  *sessions.FilesystemStore
	dir    string
	name   string
	logger *zap.Logger
}

// NewSessionStore creates the session store, creating dir if needed.
//
// An empty key is replaced by a random one in dev mode, which invalidates
// unfinished requests on restart. With secure set (production), the key
// must be at least 32 characters and not a placeholder.
func NewSessionStore(key, name, dir string, secure bool, logger *zap.Logger) (*SessionStore, error) {
	if key == "" && !secure {
		key = string(securecookie.GenerateRandomKey(32))
		logger.Warn("session key not set; using a random key, wizard progress is lost on restart")
	}
	if key == "" {
		return nil, &SessionConfigError{Message: "session key is empty; provide at least 32 random chars"}
	}

	weak := len(key) < 32 || isDefaultKey(key)
	if weak && secure {
		return nil, &SessionConfigError{Message: "session key is too weak for production; provide at least 32 random chars"}
	}
	if weak {
		logger.Warn("session key is weak; 32+ random chars required in production",
			zap.Int("length", len(key)),
			zap.Bool("is_default", isDefaultKey(key)))
	}

	if name == "" {
		name = DefaultSessionName
	}

	if dir == "" {
		return nil, &SessionConfigError{Message: "session directory is empty"}
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	store := sessions.NewFilesystemStore(dir, []byte(key))
	store.MaxLength(SessionMaxLength)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(SessionMaxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionStore{store: store, dir: dir, name: name, logger: logger}, nil
}

// Load returns the wizard state of the request, or a fresh wizard when the
// cookie is missing or tampered with, or its session file is gone.
func (s *SessionStore) Load(r *http.Request) *State {
	sess, err := s.store.Get(r, s.name)
	if err != nil {
		s.logSessionError(r, err)
		return New()
	}
	raw, ok := sess.Values[stateKey].(string)
	if !ok || raw == "" {
		return New()
	}
	st := New()
	if err := json.Unmarshal([]byte(raw), st); err != nil {
		s.logger.Warn("discarding unreadable wizard state", zap.Error(err))
		return New()
	}
	if st.Values == nil {
		st.Values = map[string]string{}
	}
	if st.Step < StepVehicle || st.Step > StepSuccess {
		st.Step = StepVehicle
	}
	return st
}

// Save writes st to the session file and the id to the response cookie.
func (s *SessionStore) Save(w http.ResponseWriter, r *http.Request, st *State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	// A decode error still yields a usable new session.
	sess, _ := s.store.Get(r, s.name)
	sess.Values[stateKey] = string(raw)
	return sess.Save(r, w)
}

// Clear drops the wizard state.
func (s *SessionStore) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, s.name)
	delete(sess.Values, stateKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// Sweep deletes session files untouched for longer than maxAge and
// returns how many were removed. FilesystemStore never deletes the files
// of abandoned sessions itself.
func (s *SessionStore) Sweep(now time.Time, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), sessionFilePrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil || now.Sub(info.ModTime()) <= maxAge {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}

func (s *SessionStore) logSessionError(r *http.Request, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("wizard session file gone", zap.String("path", r.URL.Path))
		return
	}
	var scErr securecookie.Error
	if !errors.As(err, &scErr) || !scErr.IsDecode() {
		s.logger.Warn("wizard session error", zap.Error(err), zap.String("path", r.URL.Path))
		return
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "expired timestamp"):
		s.logger.Debug("wizard session expired")
	case strings.Contains(msg, "mac") || strings.Contains(msg, "hash"):
		s.logger.Warn("wizard session cookie failed verification", zap.String("path", r.URL.Path))
	default:
		s.logger.Info("wizard session cookie unreadable", zap.Error(err))
	}
}

// isDefaultKey checks if the key looks like a placeholder value.
func isDefaultKey(key string) bool {
	lower := strings.ToLower(key)
	for _, p := range []string{"dev-only", "change-me", "placeholder", "default", "example", "insecure", "test-key", "secret123", "password"} {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
