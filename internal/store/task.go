package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskSort is a resolved, allow-listed sort instruction. Only the service
// layer constructs these, from its fixed set of sort keys; arbitrary
// expressions never reach the store.
type TaskSort struct {
	// Column is the column to order by ("created_at" or "due_date").
	Column string

	// Descending orders newest/latest first when true.
	Descending bool
}

// TaskFilter describes the filter applied to a task listing. OwnerID is
// always set: listing is ownership-scoped by construction and the count and
// the page are computed from this same filter.
type TaskFilter struct {
	OwnerID  uuid.UUID
	Status   domain.TaskStatus   // empty means no status filter
	Priority domain.TaskPriority // empty means no priority filter
	Search   string              // empty means no text filter
}

// TaskListParams combines filter, sort, and pagination for a listing query.
// Offset and Limit are already validated and coerced by the caller.
type TaskListParams struct {
	Filter TaskFilter
	Sort   TaskSort
	Offset int
	Limit  int
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update persists the mutable fields of an existing task. The owner
	// reference is never changed by this operation.
	// Returns an error wrapping ErrNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns an error wrapping ErrNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of tasks matching the params plus the total
	// count of matches, both computed from the same filter.
	List(ctx context.Context, params TaskListParams) ([]*domain.Task, int, error)

	// CountByStatus returns the number of the owner's tasks per status.
	// Statuses with no tasks are absent from the map; an owner with no
	// tasks yields an empty map.
	CountByStatus(ctx context.Context, ownerID uuid.UUID) (map[domain.TaskStatus]int, error)
}
