package store

import (
	"context"

	"github.com/google/uuid"

	"zerim-todo/pkg/types"
)

// ListCategories returns copies of all categories in insertion order.
func (s *MemoryStore) ListCategories(_ context.Context) []types.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneCategories(s.categories)
}

// CreateCategory appends a category, assigning an ID when none is set.
func (s *MemoryStore) CreateCategory(_ context.Context, category *types.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}

	stored := *category
	s.categories = append(s.categories, &stored)
	return nil
}

// GetCategory returns a copy of the category with the given ID.
func (s *MemoryStore) GetCategory(_ context.Context, id string) (*types.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if c.ID == id {
			clone := *c
			return &clone, nil
		}
	}
	return nil, ErrCategoryNotFound
}

// UpdateCategory replaces the stored category with the same ID.
func (s *MemoryStore) UpdateCategory(_ context.Context, category *types.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.categories {
		if c.ID == category.ID {
			stored := *category
			s.categories[i] = &stored
			return nil
		}
	}
	return ErrCategoryNotFound
}

// DeleteCategory removes the category and nulls the reference on every task
// that points to it. Tasks themselves are never cascaded.
func (s *MemoryStore) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCategoryNotFound
	}

	for _, t := range s.tasks {
		if t.CategoryID != nil && *t.CategoryID == id {
			t.CategoryID = nil
		}
	}

	s.categories = append(s.categories[:idx], s.categories[idx+1:]...)
	return nil
}
