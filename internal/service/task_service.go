package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// Pagination bounds for List.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// maxPage keeps the computed offset well inside int32.
	maxPage = 1 << 20
)

// Status filter values accepted by List.
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// ListTasksParams selects a page of the caller's tasks. Zero Page or Limit
// means the default.
type ListTasksParams struct {
	Page   int
	Limit  int
	Status string
	Search string
}

// TaskPage is one page of tasks plus pagination totals.
type TaskPage struct {
	Tasks []domain.Task
	Total int
	Page  int
	Pages int
	Limit int
}

// CreateTaskInput holds the fields accepted when creating a task.
type CreateTaskInput struct {
	Title       string
	Description *string
}

// TaskService manages tasks on behalf of their owner. A task owned by someone
// else is reported as not found.
type TaskService interface {
	List(ctx context.Context, ownerID uuid.UUID, params ListTasksParams) (*TaskPage, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)
	Create(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
	Toggle(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	tasks         store.TaskStore
	caseSensitive bool
	now           func() time.Time
	logger        *slog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(tasks store.TaskStore, cfg config.TasksConfig, logger *slog.Logger) *TaskServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		tasks:         tasks,
		caseSensitive: cfg.SearchCaseSensitive,
		now:           time.Now,
		logger:        logger.With("component", "task_service"),
	}
}

var _ TaskService = (*TaskServiceImpl)(nil)

// List implements TaskService. The count and the page are read concurrently.
func (s *TaskServiceImpl) List(ctx context.Context, ownerID uuid.UUID, params ListTasksParams) (*TaskPage, error) {
	filter, err := s.buildFilter(ownerID, &params)
	if err != nil {
		return nil, err
	}

	var (
		tasks []domain.Task
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.tasks.List(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.tasks.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to list tasks", "error", err, "user_id", ownerID)
		return nil, domain.NewInternalError("failed to list tasks", err)
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}

	return &TaskPage{
		Tasks: tasks,
		Total: total,
		Page:  params.Page,
		Pages: pageCount(total, params.Limit),
		Limit: params.Limit,
	}, nil
}

// Get implements TaskService.
func (s *TaskServiceImpl) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, taskError(err, "get task")
	}
	return task, nil
}

// Create implements TaskService.
func (s *TaskServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, input.Title, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, domain.NewInternalError("failed to create task", err)
	}

	s.logger.Debug("task created", "task_id", task.ID, "user_id", ownerID)
	return task, nil
}

// Update implements TaskService. Ownership is checked before the write; the
// write itself targets the task id.
func (s *TaskServiceImpl) Update(
	ctx context.Context,
	ownerID, id uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	task, err := s.tasks.GetForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, taskError(err, "get task")
	}

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	if !task.Apply(patch, s.now()) {
		return task, nil
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, taskError(err, "update task")
	}
	return task, nil
}

// Toggle implements TaskService.
func (s *TaskServiceImpl) Toggle(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, taskError(err, "get task")
	}

	completed := !task.Completed
	task.Apply(domain.TaskPatch{Completed: &completed}, s.now())

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, taskError(err, "toggle task")
	}
	return task, nil
}

// Delete implements TaskService.
func (s *TaskServiceImpl) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.tasks.Delete(ctx, id, ownerID); err != nil {
		return taskError(err, "delete task")
	}
	s.logger.Debug("task deleted", "task_id", id, "user_id", ownerID)
	return nil
}

// buildFilter applies defaults to params in place and validates them.
func (s *TaskServiceImpl) buildFilter(ownerID uuid.UUID, params *ListTasksParams) (store.TaskFilter, error) {
	if params.Page == 0 {
		params.Page = DefaultPage
	}
	if params.Limit == 0 {
		params.Limit = DefaultLimit
	}
	if params.Page < 1 || params.Page > maxPage {
		return store.TaskFilter{}, domain.NewValidationError(MsgInvalidPage)
	}
	if params.Limit < 1 || params.Limit > MaxLimit {
		return store.TaskFilter{}, domain.NewValidationError(MsgInvalidLimit)
	}

	filter := store.TaskFilter{
		OwnerID:       ownerID,
		Search:        params.Search,
		CaseSensitive: s.caseSensitive,
		Offset:        (params.Page - 1) * params.Limit,
		Limit:         params.Limit,
	}

	switch params.Status {
	case "":
	case StatusCompleted:
		completed := true
		filter.Completed = &completed
	case StatusPending:
		completed := false
		filter.Completed = &completed
	default:
		return store.TaskFilter{}, domain.NewValidationError(MsgInvalidStatus)
	}

	return filter, nil
}

// pageCount is ceil(total/limit).
func pageCount(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
