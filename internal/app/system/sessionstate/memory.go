package sessionstate

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type marker struct {
	agentID string
	expires time.Time
}

type entry struct {
	data    []byte
	expires time.Time
}

// MemoryStore is a single-process Store for tests and local development.
type MemoryStore struct {
	mu        sync.Mutex
	states    map[string]entry
	markers   map[string]marker
	ttl       time.Duration
	toggleTTL time.Duration
	now       func() time.Time
}

func NewMemoryStore(ttl, toggleTTL time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if toggleTTL <= 0 {
		toggleTTL = DefaultToggleTTL
	}
	return &MemoryStore{
		states:    map[string]entry{},
		markers:   map[string]marker{},
		ttl:       ttl,
		toggleTTL: toggleTTL,
		now:       time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (State, error) {
	if sessionID == "" {
		return State{}, ErrNoSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Default()
	if e, ok := s.states[sessionID]; ok && s.now().Before(e.expires) {
		// stored copies are JSON so callers never share maps
		var saved State
		if err := json.Unmarshal(e.data, &saved); err == nil {
			st = normalize(saved)
		}
	}
	st.ProcessingAgentID = s.processing(sessionID)
	return st, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, st State) error {
	if sessionID == "" {
		return ErrNoSession
	}
	st.ProcessingAgentID = ""
	data, err := json.Marshal(normalize(st))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[sessionID] = entry{data: data, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) AcquireToggle(_ context.Context, sessionID, agentID string) (bool, error) {
	if sessionID == "" {
		return false, ErrNoSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing(sessionID) != "" {
		return false, nil
	}
	s.markers[sessionID] = marker{agentID: agentID, expires: s.now().Add(s.toggleTTL)}
	return true, nil
}

func (s *MemoryStore) ReleaseToggle(_ context.Context, sessionID, agentID string) error {
	if sessionID == "" {
		return ErrNoSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.markers[sessionID]; ok && m.agentID == agentID {
		delete(s.markers, sessionID)
	}
	return nil
}

func (s *MemoryStore) Processing(_ context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrNoSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing(sessionID), nil
}

// processing expects s.mu to be held.
func (s *MemoryStore) processing(sessionID string) string {
	m, ok := s.markers[sessionID]
	if !ok {
		return ""
	}
	if !s.now().Before(m.expires) {
		delete(s.markers, sessionID)
		return ""
	}
	return m.agentID
}

// Sweep drops expired states and markers and returns how many it removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for id, e := range s.states {
		if !now.Before(e.expires) {
			delete(s.states, id)
			n++
		}
	}
	for id, m := range s.markers {
		if !now.Before(m.expires) {
			delete(s.markers, id)
			n++
		}
	}
	return n
}
