// Package session tracks the games hosted for connected SSH users. Every
// session plays its own independent game; the manager only knows who is
// connected so it can tell them when the server goes away.
package session

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// EventType identifies an event sent from the manager to a session.
type EventType int

const (
	EventServerShutdown EventType = iota
)

// Event is delivered on a Handle's Events channel.
type Event struct {
	Type EventType
}

// Handle represents one connected session.
type Handle struct {
	ID        string
	User      string
	StartedAt time.Time
	Events    chan Event // closed on Unregister
}

// Manager registers sessions and broadcasts shutdown.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Handle
	logger   *log.Logger
	closing  bool
}

// NewManager creates an empty manager.
func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		sessions: make(map[string]*Handle),
		logger:   logger,
	}
}

// Register adds a session for user and returns its handle. A session that
// registers while the manager is shutting down is told so immediately.
func (m *Manager) Register(user string) *Handle {
	h := &Handle{
		ID:        uuid.NewString(),
		User:      user,
		StartedAt: time.Now(),
		Events:    make(chan Event, 4),
	}

	m.mu.Lock()
	m.sessions[h.ID] = h
	closing := m.closing
	count := len(m.sessions)
	m.mu.Unlock()

	if closing {
		h.Events <- Event{Type: EventServerShutdown}
	}
	m.logger.Info("session registered", "id", h.ID, "user", user, "sessions", count)
	return h
}

// Unregister removes a session and closes its event channel. Unknown ids are
// ignored.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	h, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
		close(h.Events)
	}
	count := len(m.sessions)
	m.mu.Unlock()

	if ok {
		m.logger.Info("session ended", "id", id, "user", h.User,
			"duration", time.Since(h.StartedAt).Round(time.Second), "sessions", count)
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Shutdown notifies every session and waits for them to disconnect, up to
// timeout. It returns the number of sessions still connected.
func (m *Manager) Shutdown(timeout time.Duration) int {
	m.mu.Lock()
	m.closing = true
	for _, h := range m.sessions {
		select {
		case h.Events <- Event{Type: EventServerShutdown}:
		default:
		}
	}
	m.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if remaining := m.Count(); remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			remaining := m.Count()
			m.logger.Warn("shutdown timed out", "sessions", remaining)
			return remaining
		case <-ticker.C:
		}
	}
}
