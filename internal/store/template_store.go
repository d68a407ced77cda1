package store

import (
	"context"

	"github.com/google/uuid"

	"zerim-todo/pkg/types"
)

// ListTemplates returns copies of all task templates in insertion order.
func (s *MemoryStore) ListTemplates(_ context.Context) []types.TaskTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.TaskTemplate, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, cloneTemplate(t))
	}
	return out
}

// CreateTemplate appends a template, assigning an ID when none is set.
func (s *MemoryStore) CreateTemplate(_ context.Context, template *types.TaskTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if template.ID == "" {
		template.ID = uuid.New().String()
	}

	stored := cloneTemplate(template)
	s.templates = append(s.templates, &stored)
	return nil
}

// GetTemplate returns a copy of the template with the given ID.
func (s *MemoryStore) GetTemplate(_ context.Context, id string) (*types.TaskTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.templates {
		if t.ID == id {
			clone := cloneTemplate(t)
			return &clone, nil
		}
	}
	return nil, ErrTemplateNotFound
}

// UpdateTemplate replaces the stored template with the same ID.
func (s *MemoryStore) UpdateTemplate(_ context.Context, template *types.TaskTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.templates {
		if t.ID == template.ID {
			stored := cloneTemplate(template)
			s.templates[i] = &stored
			return nil
		}
	}
	return ErrTemplateNotFound
}

// DeleteTemplate removes the template with the given ID.
func (s *MemoryStore) DeleteTemplate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.templates {
		if t.ID == id {
			s.templates = append(s.templates[:i], s.templates[i+1:]...)
			return nil
		}
	}
	return ErrTemplateNotFound
}
