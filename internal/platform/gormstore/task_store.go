package gormstore

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskStore implements store.TaskStore with GORM.
type TaskStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewTaskStore creates a GORM-backed TaskStore. If logger is nil, a default logger will be used.
func NewTaskStore(db *gorm.DB, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(newTaskModel(task)).Error
	if err != nil {
		s.logError(ctx, "failed to create task", err, task.ID)
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return store.NewStoreError("task", "create", "owner does not exist", store.ErrInvalidEntity)
		}
		return store.NewStoreError("task", "create", "insert failed", err)
	}
	return nil
}

// GetForOwner implements store.TaskStore.GetForOwner
func (s *TaskStore) GetForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	var m taskModel
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrTaskNotFound
		}
		s.logError(ctx, "failed to get task", err, id)
		return nil, store.NewStoreError("task", "get", "query failed", err)
	}

	task := m.toDomain()
	return &task, nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context, filter store.TaskFilter) ([]domain.Task, error) {
	var models []taskModel
	err := s.scoped(ctx, filter).
		Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&models).Error
	if err != nil {
		s.logError(ctx, "failed to list tasks", err, uuid.Nil)
		return nil, store.NewStoreError("task", "list", "query failed", err)
	}

	tasks := make([]domain.Task, 0, len(models))
	for i := range models {
		tasks = append(tasks, models[i].toDomain())
	}
	return tasks, nil
}

// Count implements store.TaskStore.Count
func (s *TaskStore) Count(ctx context.Context, filter store.TaskFilter) (int, error) {
	var total int64
	if err := s.scoped(ctx, filter).Count(&total).Error; err != nil {
		s.logError(ctx, "failed to count tasks", err, uuid.Nil)
		return 0, store.NewStoreError("task", "count", "query failed", err)
	}
	return int(total), nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Model(&taskModel{}).
		Where("id = ?", task.ID).
		Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"completed":   task.Completed,
			"updated_at":  task.UpdatedAt,
		})
	if result.Error != nil {
		s.logError(ctx, "failed to update task", result.Error, task.ID)
		return store.NewStoreError("task", "update", "update failed", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&taskModel{})
	if result.Error != nil {
		s.logError(ctx, "failed to delete task", result.Error, id)
		return store.NewStoreError("task", "delete", "delete failed", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// scoped applies the owner, status and search conditions of filter.
func (s *TaskStore) scoped(ctx context.Context, filter store.TaskFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&taskModel{}).Where("user_id = ?", filter.OwnerID)

	if filter.Completed != nil {
		q = q.Where("completed = ?", *filter.Completed)
	}

	if filter.Search != "" {
		cond, args := s.searchCondition(filter.Search, filter.CaseSensitive)
		q = q.Where(cond, args...)
	}

	return q
}

// searchCondition returns the title-or-description match for the active
// dialect. Both sides of a case-insensitive match are folded by the same
// function: fold_case (Go's strings.ToLower) on SQLite, LOWER on Postgres.
// SQLite's LIKE ignores ASCII case, so exact-case search there uses instr.
func (s *TaskStore) searchCondition(term string, caseSensitive bool) (string, []any) {
	sqlite := s.db.Dialector.Name() == "sqlite"
	switch {
	case sqlite && caseSensitive:
		return `(instr(title, ?) > 0 OR instr(COALESCE(description, ''), ?) > 0)`, []any{term, term}
	case sqlite:
		return `(instr(fold_case(title), fold_case(?)) > 0 OR ` +
			`instr(fold_case(COALESCE(description, '')), fold_case(?)) > 0)`, []any{term, term}
	case caseSensitive:
		pattern := store.ContainsPattern(term)
		return `(title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`, []any{pattern, pattern}
	default:
		pattern := store.ContainsPattern(term)
		return `(LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(description) LIKE LOWER(?) ESCAPE '\')`,
			[]any{pattern, pattern}
	}
}

func (s *TaskStore) logError(ctx context.Context, msg string, err error, taskID uuid.UUID) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if taskID == uuid.Nil {
		log.Error(msg, slog.String("error", err.Error()))
		return
	}
	log.Error(msg, slog.String("error", err.Error()), slog.String("task_id", taskID.String()))
}
