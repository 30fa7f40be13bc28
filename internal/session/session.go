package session

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/umakossiooo/to-do-app/internal/task"
)

// Session is one browser's private task list. A new session lives only in
// the request that created it until its first write; only then does the
// manager keep it.
type Session struct {
	ID string

	mu       sync.Mutex
	store    *task.Store
	flash    string
	lastSeen time.Time
	manager  *Manager
}

// Do runs fn with exclusive access to the session's store.
func (s *Session) Do(fn func(*task.Store) error) error {
	s.mu.Lock()
	rev := s.store.Revision()
	err := fn(s.store)
	wrote := s.store.Revision() != rev
	s.mu.Unlock()

	if wrote {
		s.manager.keep(s)
	}
	return err
}

// SetFlash stores a one-shot message for the next page render.
func (s *Session) SetFlash(msg string) {
	s.mu.Lock()
	s.flash = msg
	s.mu.Unlock()
	s.manager.keep(s)
}

// TakeFlash returns and clears the pending flash message.
func (s *Session) TakeFlash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.flash
	s.flash = ""
	return msg
}

type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     *bool
	// MaxSessions caps stored sessions. Zero means 10000.
	MaxSessions int
	DefaultSort task.SortStrategy
	Logger      log.FieldLogger
	Now         func() time.Time
}

// Manager hands every browser session its own task store.
type Manager struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	lastSweep time.Time

	cookieName  string
	ttl         time.Duration
	secure      *bool
	max         int
	defaultSort task.SortStrategy
	logger      log.FieldLogger
	now         func() time.Time
}

func NewManager(opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "todo_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 12 * time.Hour
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 10000
	}
	if opts.DefaultSort == "" {
		opts.DefaultSort = task.SortByDate
	}
	if opts.Logger == nil {
		opts.Logger = log.StandardLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		sessions:    make(map[string]*Session),
		cookieName:  opts.CookieName,
		ttl:         opts.TTL,
		secure:      opts.Secure,
		max:         opts.MaxSessions,
		defaultSort: opts.DefaultSort,
		logger:      opts.Logger,
		now:         opts.Now,
	}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// Len reports the number of stored sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// lookup returns the live session for id, or a fresh unstored one. The bool
// reports whether a new session was made.
func (m *Manager) lookup(id string) (*Session, bool) {
	now := m.now()

	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok && now.Sub(s.lastSeen) < m.ttl {
		s.lastSeen = now
		m.mu.Unlock()
		return s, false
	}
	if ok {
		delete(m.sessions, id)
		m.logger.WithField("session_id", id).Debug("session_expired")
	}
	m.mu.Unlock()

	store := task.NewStore()
	store.SetSortStrategy(m.defaultSort)
	return &Session{
		ID:       uuid.NewString(),
		store:    store,
		lastSeen: now,
		manager:  m,
	}, true
}

// keep stores s on its first write, sweeping expired sessions at most once
// per sweep interval and evicting the least recently seen one when full.
func (m *Manager) keep(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[s.ID]; ok {
		return
	}

	now := m.now()
	if now.Sub(m.lastSweep) >= m.sweepInterval() {
		m.sweepLocked(now)
		m.lastSweep = now
	}
	if len(m.sessions) >= m.max {
		m.evictOldestLocked()
	}

	s.lastSeen = now
	m.sessions[s.ID] = s
	m.logger.WithField("session_id", s.ID).Debug("session_stored")
}

func (m *Manager) sweepInterval() time.Duration {
	return min(m.ttl, time.Minute)
}

func (m *Manager) sweepLocked(now time.Time) {
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) >= m.ttl {
			delete(m.sessions, id)
			m.logger.WithField("session_id", id).Debug("session_expired")
		}
	}
}

func (m *Manager) evictOldestLocked() {
	var oldest *Session
	for _, s := range m.sessions {
		if oldest == nil || s.lastSeen.Before(oldest.lastSeen) {
			oldest = s
		}
	}
	if oldest != nil {
		delete(m.sessions, oldest.ID)
		m.logger.WithField("session_id", oldest.ID).Info("session_evicted")
	}
}

// Middleware attaches the caller's session to the request context, starting
// a new one when the cookie is missing, unknown or expired.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(m.cookieName); err == nil {
			id = strings.TrimSpace(c.Value)
		}

		s, created := m.lookup(id)
		if created {
			m.setCookie(w, r, s)
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), s)))
	})
}

func (m *Manager) shouldUseSecureCookie(r *http.Request) bool {
	if m.secure != nil {
		return *m.secure
	}
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https")
}

func (m *Manager) setCookie(w http.ResponseWriter, r *http.Request, s *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.shouldUseSecureCookie(r),
		SameSite: http.SameSiteLaxMode,
	})
}
