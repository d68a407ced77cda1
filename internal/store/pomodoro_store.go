package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"zerim-todo/pkg/types"
)

// CreateSession appends a pomodoro session, assigning an ID when none is set.
func (s *MemoryStore) CreateSession(_ context.Context, session *types.PomodoroSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	stored := *session
	s.sessions = append(s.sessions, &stored)
	return nil
}

// GetSession returns a copy of the session with the given ID.
func (s *MemoryStore) GetSession(_ context.Context, id string) (*types.PomodoroSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.sessions {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, ErrSessionNotFound
}

// UpdateSession replaces the stored session with the same ID.
func (s *MemoryStore) UpdateSession(_ context.Context, session *types.PomodoroSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.sessions {
		if p.ID == session.ID {
			stored := *session
			s.sessions[i] = &stored
			return nil
		}
	}
	return ErrSessionNotFound
}

// ActiveSession returns a copy of the active session, or nil when none is
// active.
func (s *MemoryStore) ActiveSession(_ context.Context) *types.PomodoroSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.sessions {
		if p.IsActive {
			clone := *p
			return &clone
		}
	}
	return nil
}

// CloseActiveSessions deactivates every active session, stamping the given end
// time, and returns how many were closed. The start operation uses this to
// enforce the single-active-session invariant.
func (s *MemoryStore) CloseActiveSessions(_ context.Context, endTime time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	closed := 0
	for _, p := range s.sessions {
		if p.IsActive {
			p.IsActive = false
			ts := endTime
			p.EndTime = &ts
			closed++
		}
	}
	return closed
}
