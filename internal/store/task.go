package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskFilter selects the tasks of a single owner. Conditions combine with AND;
// Search matches title OR description as a substring.
type TaskFilter struct {
	OwnerID uuid.UUID

	// Completed restricts by status when non-nil.
	Completed *bool

	// Search is a substring term; empty means no search condition.
	Search string

	// CaseSensitive selects exact-case substring matching for Search.
	CaseSensitive bool

	Offset int
	Limit  int
}

// TaskStore defines the interface for task data persistence.
// Every lookup is scoped to an owner; a task belonging to another owner is
// reported exactly like a missing one.
type TaskStore interface {
	// Create saves a new task.
	Create(ctx context.Context, task *domain.Task) error

	// GetForOwner retrieves the task with id owned by ownerID.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	GetForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// List returns one page of matching tasks, newest first
	// (created_at DESC, id DESC). Offset and Limit come from the filter.
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)

	// Count returns the number of tasks matching the filter, ignoring
	// Offset and Limit.
	Count(ctx context.Context, filter TaskFilter) (int, error)

	// Update writes title, description, completed and updated_at of the
	// task identified by task.ID. Returns ErrTaskNotFound if it is gone.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with id owned by ownerID.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
