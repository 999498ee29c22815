// Package session keys conversation transcripts by session ID and serialises
// turns within a session.
package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	ctxmgr "github.com/ashutoshrp06/vragent/internal/context"
	"github.com/google/uuid"
)

// DefaultID is used when a caller does not name a session.
const DefaultID = "default"

var ErrNotFound = errors.New("session not found")

// Session is one reasoning session. Conversation must only be mutated while
// the session is held via Manager.Acquire.
type Session struct {
	ID           string
	CreatedAt    time.Time
	Conversation *ctxmgr.Manager

	turn sync.Mutex
}

// Manager owns all sessions. Turns on the same session run one at a time;
// turns on different sessions run in parallel.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create registers a new empty session under a random ID.
func (m *Manager) Create() string {
	id := uuid.New().String()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = m.newSession(id)
	return id
}

// Acquire returns the session for id, creating it on first use, and blocks
// until no other turn holds it. The caller must call release exactly once.
func (m *Manager) Acquire(id string) (*Session, func()) {
	if id == "" {
		id = DefaultID
	}

	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		s = m.newSession(id)
		m.sessions[id] = s
	}
	m.mu.Unlock()

	s.turn.Lock()
	var once sync.Once
	return s, func() { once.Do(s.turn.Unlock) }
}

func (m *Manager) Get(id string) (*Session, error) {
	if id == "" {
		id = DefaultID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete forgets a session. A turn already holding it finishes normally.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// List returns all sessions ordered by ID.
func (m *Manager) List() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (m *Manager) newSession(id string) *Session {
	return &Session{
		ID:           id,
		CreatedAt:    m.now(),
		Conversation: ctxmgr.NewManager(),
	}
}
