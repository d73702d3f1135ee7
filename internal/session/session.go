package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/neonyanbbcode/MarketAnly/models"
)

// ErrNotFound is returned when a session id does not name the live session.
var ErrNotFound = errors.New("session not found")

// Session owns the grounding history for follow-up questions plus the
// visible chat transcript. History lives only in process memory and dies
// with the session.
type Session struct {
	id        string
	createdAt time.Time

	mu         sync.Mutex
	history    []models.HistoryTurn
	transcript []models.ConversationTurn
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// History returns a copy of the grounding history in order.
func (s *Session) History() []models.HistoryTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.HistoryTurn, len(s.history))
	copy(out, s.history)
	return out
}

// AppendExchange records one question/answer pair: two history turns for
// the model and two transcript entries for the UI.
func (s *Session) AppendExchange(question, answer string) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history,
		models.HistoryTurn{Role: models.RoleUser, Text: question},
		models.HistoryTurn{Role: models.RoleModel, Text: answer},
	)
	s.transcript = append(s.transcript,
		models.ConversationTurn{ID: uuid.NewString(), Role: models.RoleUser, Text: question, CreatedAt: now},
		models.ConversationTurn{ID: uuid.NewString(), Role: models.RoleAssistant, Text: answer, CreatedAt: now},
	)
}

// Transcript returns a copy of the visible conversation so far.
func (s *Session) Transcript() []models.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ConversationTurn, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Store holds at most one live session. Each completed analysis run
// replaces it wholesale; histories are never merged across runs.
type Store struct {
	mu      sync.RWMutex
	current *Session
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

func newSession(seed []models.HistoryTurn) *Session {
	s := &Session{
		id:        uuid.NewString(),
		createdAt: time.Now(),
	}
	s.history = append(s.history, seed...)
	return s
}

// Begin replaces the live session with a fresh one seeded with the given
// grounding history (the analysis request and its raw response).
func (st *Store) Begin(seed []models.HistoryTurn) *Session {
	s := newSession(seed)
	st.mu.Lock()
	st.current = s
	st.mu.Unlock()
	return s
}

// Current returns the live session, if any.
func (st *Store) Current() (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current, st.current != nil
}

// EnsureCurrent returns the live session, lazily creating a bare one with
// no seeded history when no analysis has run yet.
func (st *Store) EnsureCurrent() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.current == nil {
		st.current = newSession(nil)
	}
	return st.current
}

// Get returns the live session only when id names it.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.current == nil || st.current.id != id {
		return nil, ErrNotFound
	}
	return st.current, nil
}
