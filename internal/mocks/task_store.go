package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MemoryTaskStore is a thread-safe in-memory store.TaskStore that applies the
// same filter, ordering and search rules as the SQL backends.
type MemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]domain.Task
}

// NewMemoryTaskStore creates an empty MemoryTaskStore.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{tasks: make(map[uuid.UUID]domain.Task)}
}

var _ store.TaskStore = (*MemoryTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *MemoryTaskStore) Create(_ context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = cloneTask(*task)
	return nil
}

// GetForOwner implements store.TaskStore.GetForOwner
func (s *MemoryTaskStore) GetForOwner(_ context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	clone := cloneTask(task)
	return &clone, nil
}

// List implements store.TaskStore.List
func (s *MemoryTaskStore) List(_ context.Context, filter store.TaskFilter) ([]domain.Task, error) {
	matched := s.match(filter)

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() > matched[j].ID.String()
	})

	if filter.Offset >= len(matched) {
		return []domain.Task{}, nil
	}
	end := len(matched)
	if filter.Limit > 0 && filter.Offset+filter.Limit < end {
		end = filter.Offset + filter.Limit
	}
	return matched[filter.Offset:end], nil
}

// Count implements store.TaskStore.Count
func (s *MemoryTaskStore) Count(_ context.Context, filter store.TaskFilter) (int, error) {
	return len(s.match(filter)), nil
}

// Update implements store.TaskStore.Update
func (s *MemoryTaskStore) Update(_ context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[task.ID]
	if !ok {
		return store.ErrTaskNotFound
	}
	existing.Title = task.Title
	existing.Description = task.Description
	existing.Completed = task.Completed
	existing.UpdatedAt = task.UpdatedAt
	s.tasks[task.ID] = cloneTask(existing)
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *MemoryTaskStore) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != ownerID {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *MemoryTaskStore) match(filter store.TaskFilter) []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Task
	for _, task := range s.tasks {
		if task.UserID != filter.OwnerID {
			continue
		}
		if filter.Completed != nil && task.Completed != *filter.Completed {
			continue
		}
		if filter.Search != "" {
			desc := ""
			if task.Description != nil {
				desc = *task.Description
			}
			if !store.Matches(task.Title, filter.Search, filter.CaseSensitive) &&
				!store.Matches(desc, filter.Search, filter.CaseSensitive) {
				continue
			}
		}
		matched = append(matched, cloneTask(task))
	}
	return matched
}

func cloneTask(t domain.Task) domain.Task {
	if t.Description != nil {
		desc := *t.Description
		t.Description = &desc
	}
	return t
}

// TestifyMockTaskStore is a mock of store.TaskStore interface for use with testify/mock
type TestifyMockTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TestifyMockTaskStore)(nil)

// Create is a mock implementation of store.TaskStore.Create
func (m *TestifyMockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

// GetForOwner is a mock implementation of store.TaskStore.GetForOwner
func (m *TestifyMockTaskStore) GetForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id, ownerID)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.TaskStore.List
func (m *TestifyMockTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, filter)
	if tasks, ok := args.Get(0).([]domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// Count is a mock implementation of store.TaskStore.Count
func (m *TestifyMockTaskStore) Count(ctx context.Context, filter store.TaskFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

// Update is a mock implementation of store.TaskStore.Update
func (m *TestifyMockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

// Delete is a mock implementation of store.TaskStore.Delete
func (m *TestifyMockTaskStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}
