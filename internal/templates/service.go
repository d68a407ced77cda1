// Package templates provides task template management and instantiation.
// Title and description templates may contain {placeholder} tokens that are
// substituted with caller-supplied values when a task is created from a
// template.
package templates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"zerim-todo/internal/tasks"
	"zerim-todo/pkg/types"
)

// Repository is the store surface the template service depends on.
type Repository interface {
	ListTemplates(ctx context.Context) []types.TaskTemplate
	CreateTemplate(ctx context.Context, template *types.TaskTemplate) error
	GetTemplate(ctx context.Context, id string) (*types.TaskTemplate, error)
	UpdateTemplate(ctx context.Context, template *types.TaskTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
}

// TaskCreator creates tasks from instantiated templates.
type TaskCreator interface {
	CreateTask(ctx context.Context, input *tasks.CreateTaskInput) (*types.Task, error)
}

// Service implements template operations over a repository.
type Service struct {
	repo    Repository
	creator TaskCreator
	now     func() time.Time
}

// NewService creates a new template service.
func NewService(repo Repository, creator TaskCreator) *Service {
	return &Service{
		repo:    repo,
		creator: creator,
		now:     time.Now,
	}
}

// ListTemplates returns all templates.
func (s *Service) ListTemplates(ctx context.Context) []types.TaskTemplate {
	return s.repo.ListTemplates(ctx)
}

// CreateTemplate validates and stores a new template.
func (s *Service) CreateTemplate(ctx context.Context, template *types.TaskTemplate) (*types.TaskTemplate, error) {
	if template.Name == "" {
		return nil, fmt.Errorf("template name is required")
	}
	if template.TitleTemplate == "" {
		return nil, fmt.Errorf("title template is required")
	}

	if template.ID == "" {
		template.ID = uuid.New().String()
	}
	if template.Priority == "" {
		template.Priority = types.PriorityMedium
	}
	if !template.Priority.Valid() {
		return nil, fmt.Errorf("invalid priority: %s", template.Priority)
	}
	if template.Tags == nil {
		template.Tags = []string{}
	}
	template.UsageCount = 0
	template.CreatedAt = s.now()

	if err := s.repo.CreateTemplate(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return template, nil
}

// DeleteTemplate removes a template by ID.
func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	return s.repo.DeleteTemplate(ctx, id)
}

// UseTemplate creates a task from the template, substituting {placeholder}
// tokens in the title and description with the supplied values, and increments
// the template's usage counter.
func (s *Service) UseTemplate(ctx context.Context, templateID string, values map[string]interface{}) (*types.Task, error) {
	template, err := s.repo.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	title := renderPlaceholders(template.TitleTemplate, values)
	description := ""
	if template.DescriptionTemplate != nil {
		description = *template.DescriptionTemplate
	}
	description = renderPlaceholders(description, values)

	input := &tasks.CreateTaskInput{
		Title:             title,
		Description:       &description,
		Priority:          template.Priority,
		CategoryID:        template.CategoryID,
		EstimatedDuration: template.EstimatedDuration,
		Tags:              append([]string(nil), template.Tags...),
	}

	task, err := s.creator.CreateTask(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create task from template: %w", err)
	}

	template.UsageCount++
	if err := s.repo.UpdateTemplate(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to record template usage: %w", err)
	}

	return task, nil
}

// renderPlaceholders substitutes every {key} token with its value.
func renderPlaceholders(text string, values map[string]interface{}) string {
	for key, value := range values {
		text = strings.ReplaceAll(text, "{"+key+"}", fmt.Sprintf("%v", value))
	}
	return text
}
