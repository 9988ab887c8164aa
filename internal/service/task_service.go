package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/domain/authz"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MaxListLimit caps the page size for task listings.
const MaxListLimit = 100

// listSortKeys is the allow-list of sort keys accepted on the listing
// endpoint, mapped to resolved store sorts. Anything else falls back to
// DefaultSortKey rather than reaching the store.
var listSortKeys = map[string]store.TaskSort{
	"createdAt":  {Column: "created_at"},
	"-createdAt": {Column: "created_at", Descending: true},
	"dueDate":    {Column: "due_date"},
	"-dueDate":   {Column: "due_date", Descending: true},
}

// DefaultSortKey orders listings newest-first by creation time.
const DefaultSortKey = "-createdAt"

// CreateTaskParams carries the caller-supplied fields for a new task.
type CreateTaskParams struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
}

// UpdateTaskParams carries a partial update: nil fields are left unchanged.
// The owner is not represented here at all; ownership is immutable.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *time.Time
	ClearDue    bool
}

// ListTasksParams carries the caller-supplied listing query. Page and Limit
// arrive already parsed to integers; zero or negative values are rejected
// here, not defaulted.
type ListTasksParams struct {
	Page     int
	Limit    int
	Status   string
	Priority string
	Search   string
	Sort     string
}

// TaskPage is one page of a task listing plus the metadata needed for the
// response envelope. Pages is derived from Total and Limit over the same
// filter that produced Tasks.
type TaskPage struct {
	Tasks []*domain.Task
	Total int
	Page  int
	Limit int
	Pages int
}

// TaskService orchestrates validation, authorization, and persistence for
// task operations. Every single-task operation confirms existence first,
// then consults the authorization policy, and only then mutates.
type TaskService struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService with the given dependencies.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) *TaskService {
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskService{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// Create makes a new task owned by the principal. The owner is taken from
// the principal, never from the request payload.
func (s *TaskService) Create(
	ctx context.Context,
	principal domain.Principal,
	params CreateTaskParams,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(
		principal.ID,
		params.Title,
		params.Description,
		params.Status,
		params.Priority,
		params.DueDate,
	)
	if err != nil {
		log.Debug("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("owner_id", principal.ID.String()))
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Get fetches a single task. Existence is checked before authorization so a
// missing task reports not-found regardless of who asks.
func (s *TaskService) Get(
	ctx context.Context,
	principal domain.Principal,
	taskID uuid.UUID,
) (*domain.Task, error) {
	return s.authorize(ctx, principal, taskID, authz.OpRead)
}

// Update applies a partial update to a task after the existence and
// authorization checks pass. Only the supplied fields change.
func (s *TaskService) Update(
	ctx context.Context,
	principal domain.Principal,
	taskID uuid.UUID,
	params UpdateTaskParams,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.authorize(ctx, principal, taskID, authz.OpUpdate)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Status != nil {
		task.Status = *params.Status
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}
	if params.DueDate != nil {
		task.DueDate = params.DueDate
	} else if params.ClearDue {
		task.DueDate = nil
	}
	task.UpdatedAt = time.Now().UTC()

	if err := task.Validate(); err != nil {
		log.Debug("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, err
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		// The task can vanish between the existence check and the write;
		// surface not-found rather than locking.
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Delete permanently removes a task after the existence and authorization
// checks pass.
func (s *TaskService) Delete(
	ctx context.Context,
	principal domain.Principal,
	taskID uuid.UUID,
) error {
	if _, err := s.authorize(ctx, principal, taskID, authz.OpDelete); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// List returns one page of the principal's tasks. The base filter is always
// owner == principal; an admin does not see other users' tasks through this
// path. Unknown sort keys fall back to the default ordering; invalid
// pagination or filter values are rejected.
func (s *TaskService) List(
	ctx context.Context,
	principal domain.Principal,
	params ListTasksParams,
) (*TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if params.Page < 1 {
		return nil, ErrInvalidPage
	}
	if params.Limit < 1 || params.Limit > MaxListLimit {
		return nil, ErrInvalidLimit
	}

	filter := store.TaskFilter{
		OwnerID: principal.ID,
		Search:  params.Search,
	}
	if params.Status != "" {
		status := domain.TaskStatus(params.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatusFilter
		}
		filter.Status = status
	}
	if params.Priority != "" {
		priority := domain.TaskPriority(params.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidPriorityFilter
		}
		filter.Priority = priority
	}

	sort, ok := listSortKeys[params.Sort]
	if !ok {
		if params.Sort != "" {
			log.Debug("unrecognized sort key, using default",
				slog.String("sort", params.Sort))
		}
		sort = listSortKeys[DefaultSortKey]
	}

	tasks, total, err := s.taskStore.List(ctx, store.TaskListParams{
		Filter: filter,
		Sort:   sort,
		Offset: (params.Page - 1) * params.Limit,
		Limit:  params.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &TaskPage{
		Tasks: tasks,
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
		Pages: (total + params.Limit - 1) / params.Limit,
	}, nil
}

// Stats returns the count of the principal's tasks per status. The result
// is scoped strictly to the principal; a user with no tasks gets an empty
// mapping.
func (s *TaskService) Stats(
	ctx context.Context,
	principal domain.Principal,
) (map[domain.TaskStatus]int, error) {
	counts, err := s.taskStore.CountByStatus(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate task stats: %w", err)
	}
	return counts, nil
}

// authorize loads the task and applies the access policy for op. The order
// is fixed: a task that does not exist yields not-found before the policy
// is ever consulted, and the policy runs before any mutation.
func (s *TaskService) authorize(
	ctx context.Context,
	principal domain.Principal,
	taskID uuid.UUID,
	op authz.Operation,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if err := authz.CanAccess(principal, task, op); err != nil {
		log.Warn("task access denied",
			slog.String("principal_id", principal.ID.String()),
			slog.String("task_id", taskID.String()),
			slog.String("owner_id", task.OwnerID.String()),
			slog.String("operation", string(op)))
		return nil, err
	}

	return task, nil
}
