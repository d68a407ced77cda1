package store

import (
	"time"

	"github.com/google/uuid"

	"zerim-todo/pkg/types"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// defaultCategories returns the starter categories every fresh store carries.
func defaultCategories() []*types.Category {
	now := time.Now()
	return []*types.Category{
		{ID: uuid.New().String(), Name: "Personal", Color: "#10B981", Icon: strPtr("👤"), Description: strPtr("Personal tasks and activities"), CreatedAt: now},
		{ID: uuid.New().String(), Name: "Work", Color: "#3B82F6", Icon: strPtr("💼"), Description: strPtr("Work-related tasks and projects"), CreatedAt: now},
		{ID: uuid.New().String(), Name: "Shopping", Color: "#F59E0B", Icon: strPtr("🛒"), Description: strPtr("Shopping lists and errands"), CreatedAt: now},
		{ID: uuid.New().String(), Name: "Health", Color: "#EF4444", Icon: strPtr("❤️"), Description: strPtr("Health and fitness goals"), CreatedAt: now},
		{ID: uuid.New().String(), Name: "Learning", Color: "#8B5CF6", Icon: strPtr("📚"), Description: strPtr("Educational and learning tasks"), CreatedAt: now},
		{ID: uuid.New().String(), Name: "Home", Color: "#06B6D4", Icon: strPtr("🏠"), Description: strPtr("Household chores and maintenance"), CreatedAt: now},
	}
}

// defaultTemplates returns the starter task templates every fresh store carries.
func defaultTemplates() []*types.TaskTemplate {
	now := time.Now()
	return []*types.TaskTemplate{
		{
			ID:                  uuid.New().String(),
			Name:                "Daily Standup",
			TitleTemplate:       "Daily Standup - {date}",
			DescriptionTemplate: strPtr("- What did I do yesterday?\n- What will I do today?\n- Any blockers?"),
			Priority:            types.PriorityMedium,
			EstimatedDuration:   intPtr(15),
			Tags:                []string{"meeting", "daily"},
			CreatedAt:           now,
		},
		{
			ID:                  uuid.New().String(),
			Name:                "Weekly Review",
			TitleTemplate:       "Weekly Review - Week of {date}",
			DescriptionTemplate: strPtr("1. Review last week's goals\n2. Plan upcoming week\n3. Identify improvements"),
			Priority:            types.PriorityHigh,
			EstimatedDuration:   intPtr(60),
			Tags:                []string{"review", "planning"},
			CreatedAt:           now,
		},
		{
			ID:                  uuid.New().String(),
			Name:                "Bug Report",
			TitleTemplate:       "Bug: {issue}",
			DescriptionTemplate: strPtr("Steps to reproduce:\n1. \n2. \n3. \n\nExpected: \nActual: \n\nEnvironment:"),
			Priority:            types.PriorityHigh,
			Tags:                []string{"bug", "development"},
			CreatedAt:           now,
		},
		{
			ID:                  uuid.New().String(),
			Name:                "Research Task",
			TitleTemplate:       "Research: {topic}",
			DescriptionTemplate: strPtr("Research goals:\n- \n\nKey questions:\n- \n\nDeliverables:\n- "),
			Priority:            types.PriorityMedium,
			EstimatedDuration:   intPtr(120),
			Tags:                []string{"research", "learning"},
			CreatedAt:           now,
		},
	}
}
