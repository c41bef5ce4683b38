package session

import (
	"sync"
	"time"

	"github.com/Makepad-fr/stock/internal/log"
)

// Manager tracks the live sessions of a multi-user front end. Sessions idle
// for longer than the TTL are torn down.
type Manager struct {
	seed   []string
	ttl    time.Duration
	now    func() time.Time
	logger log.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// Option tunes a Manager.
type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }

// WithLogger sets where session lifecycle events go.
func WithLogger(l log.Logger) Option { return func(m *Manager) { m.logger = l } }

func NewManager(seed []string, ttl time.Duration, opts ...Option) *Manager {
	m := &Manager{
		seed:     append([]string(nil), seed...),
		ttl:      ttl,
		now:      time.Now,
		logger:   log.Discard,
		sessions: map[string]*Session{},
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// TTL is the idle timeout.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Start creates and registers a seeded session.
func (m *Manager) Start() *Session {
	s := newAt(m.seed, m.now())
	m.mu.Lock()
	m.sessions[s.ID] = s
	n := len(m.sessions)
	m.mu.Unlock()
	m.logger.Log("start", s.ID, "live", n)
	return s
}

// Get returns the live session with id and marks it as seen. An expired
// session is ended on the way out.
func (m *Manager) Get(id string) (*Session, error) {
	now := m.now()
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok && s.idleSince(now) > m.ttl {
		delete(m.sessions, id)
		m.mu.Unlock()
		s.End()
		m.logger.Log("expire", id)
		return nil, ErrUnknown
	}
	m.mu.Unlock()
	if !ok {
		return nil, ErrUnknown
	}
	s.touch(now)
	return s, nil
}

// End tears down the session with id.
func (m *Manager) End(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrUnknown
	}
	s.End()
	m.logger.Log("end", id)
	return nil
}

// Sweep ends every session idle for longer than the TTL and reports how many
// were removed.
func (m *Manager) Sweep() int {
	now := m.now()
	var expired []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.idleSince(now) > m.ttl {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()
	for _, s := range expired {
		s.End()
		m.logger.Log("expire", s.ID)
	}
	return len(expired)
}

// Len is the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
