package managers

import (
	"sync"
	"time"

	"video-tutor/work-flows/models"
	"video-tutor/work-flows/services"
)

// SessionState is everything one browser session owns: its selection, the
// resolved video and its chat log. Controller operations on a session are
// serialized by opMu; mu guards the fields so readers can observe an
// in-flight chat turn.
type SessionState struct {
	ID string

	opMu sync.Mutex

	mu           sync.RWMutex
	selection    models.Selection
	videoPath    string
	videoReady   bool
	history      *services.ConversationHistoryManager
	lastResponse string
	lastError    string
	createdAt    time.Time
	lastSeen     time.Time
}

func NewSessionState(id string) *SessionState {
	now := time.Now()
	return &SessionState{
		ID:        id,
		history:   services.NewConversationHistoryManager(),
		createdAt: now,
		lastSeen:  now,
	}
}

// Snapshot is a read-only copy of a session used for rendering.
type Snapshot struct {
	ID           string
	Selection    models.Selection
	VideoPath    string
	VideoReady   bool
	History      []models.ChatMessage
	Pending      bool
	LastResponse string
	LastError    string
	Stats        map[string]int
}

func (s *SessionState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		ID:           s.ID,
		Selection:    s.selection,
		VideoPath:    s.videoPath,
		VideoReady:   s.videoReady,
		History:      s.history.GetConversationHistory(),
		Pending:      s.history.HasPending(),
		LastResponse: s.lastResponse,
		LastError:    s.lastError,
		Stats:        s.history.GetConversationStats(),
	}
}

func (s *SessionState) Selection() models.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

func (s *SessionState) History() []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.GetConversationHistory()
}

func (s *SessionState) VideoReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.videoReady
}

func (s *SessionState) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

func (s *SessionState) Touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *SessionState) idleSince(now time.Time) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return now.Sub(s.lastSeen)
}

func (s *SessionState) setError(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
}
