package store

import (
	"context"

	"github.com/google/uuid"

	"zerim-todo/pkg/types"
)

// ListTimeEntries returns copies of all time entries in insertion order.
func (s *MemoryStore) ListTimeEntries(_ context.Context) []types.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneTimeEntries(s.entries)
}

// CreateTimeEntry appends a time entry, assigning an ID when none is set.
func (s *MemoryStore) CreateTimeEntry(_ context.Context, entry *types.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	stored := *entry
	s.entries = append(s.entries, &stored)
	return nil
}

// GetTimeEntry returns a copy of the time entry with the given ID.
func (s *MemoryStore) GetTimeEntry(_ context.Context, id string) (*types.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			clone := *e
			return &clone, nil
		}
	}
	return nil, ErrTimeEntryNotFound
}

// UpdateTimeEntry replaces the stored entry with the same ID.
func (s *MemoryStore) UpdateTimeEntry(_ context.Context, entry *types.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.ID == entry.ID {
			stored := *entry
			s.entries[i] = &stored
			return nil
		}
	}
	return ErrTimeEntryNotFound
}

// DeleteTimeEntry removes the time entry with the given ID.
func (s *MemoryStore) DeleteTimeEntry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return ErrTimeEntryNotFound
}
