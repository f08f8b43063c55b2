package quiz

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager owns the live sessions for all connected browsing contexts, keyed
// by an opaque token handed to the client on start. Sessions are volatile:
// they live in memory and are swept once idle.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*managed
}

type managed struct {
	session  *Session
	userID   string
	lastSeen time.Time
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*managed)}
}

// Create registers a fresh session for the given user (empty for anonymous)
// and returns its token.
func (m *Manager) Create(userID string) (string, *Session) {
	token := uuid.NewString()
	session := NewSession()

	m.mu.Lock()
	m.sessions[token] = &managed{session: session, userID: userID, lastSeen: time.Now()}
	m.mu.Unlock()

	return token, session
}

// Get returns the session for a token along with the owning user id.
func (m *Manager) Get(token string) (*Session, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[token]
	if !ok {
		return nil, "", false
	}
	entry.lastSeen = time.Now()
	return entry.session, entry.userID, true
}

func (m *Manager) Remove(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// Sweep drops sessions idle for longer than maxIdle and reports how many
// were removed.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for token, entry := range m.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed
}
