package managers

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionStore keeps live sessions in memory, keyed by a random id.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*SessionState
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*SessionState),
	}
}

func (ss *SessionStore) Create() *SessionState {
	state := NewSessionState(uuid.NewString())

	ss.mu.Lock()
	ss.sessions[state.ID] = state
	ss.mu.Unlock()

	return state
}

func (ss *SessionStore) Get(id string) (*SessionState, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	state, ok := ss.sessions[id]
	return state, ok
}

// GetOrCreate returns the session for id, creating a fresh one when id is
// empty or unknown. created reports which happened.
func (ss *SessionStore) GetOrCreate(id string) (state *SessionState, created bool) {
	if id != "" {
		if state, ok := ss.Get(id); ok {
			return state, false
		}
	}
	return ss.Create(), true
}

func (ss *SessionStore) Delete(id string) {
	ss.mu.Lock()
	delete(ss.sessions, id)
	ss.mu.Unlock()
}

func (ss *SessionStore) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

// EvictIdle drops sessions not seen for maxIdle and returns how many went.
func (ss *SessionStore) EvictIdle(maxIdle time.Duration, now time.Time) int {
	if maxIdle <= 0 {
		return 0
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	evicted := 0
	for id, state := range ss.sessions {
		if state.idleSince(now) > maxIdle {
			delete(ss.sessions, id)
			evicted++
		}
	}
	return evicted
}
