package gormstore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/platform/gormstore"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB creates an isolated in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gormstore.Open(context.Background(), config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		URL:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxOpenConns: 1,
	}, nil)
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, gormstore.AutoMigrate(db), "failed to migrate test database")

	t.Cleanup(func() {
		_ = gormstore.Close(db)
	})
	return db
}

func createUser(t *testing.T, users *gormstore.UserStore, email string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(email, "$2a$04$hash")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func createTask(t *testing.T, tasks *gormstore.TaskStore, owner uuid.UUID, title string, desc *string, at time.Time) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(owner, title, desc)
	require.NoError(t, err)
	task.CreatedAt = at
	task.UpdatedAt = at
	require.NoError(t, tasks.Create(context.Background(), task))
	return task
}

func TestUserStore(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	users := gormstore.NewUserStore(db, nil)
	ctx := context.Background()

	user := createUser(t, users, "a@x.com")

	byEmail, err := users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, user.PasswordHash, byEmail.PasswordHash)

	byID, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)

	_, err = users.GetByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = users.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	dup, err := domain.NewUser("a@x.com", "$2a$04$other")
	require.NoError(t, err)
	err = users.Create(ctx, dup)
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.True(t, store.IsDuplicateError(err))
}

func TestTaskStore_CRUD(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	users := gormstore.NewUserStore(db, nil)
	tasks := gormstore.NewTaskStore(db, nil)
	ctx := context.Background()

	owner := createUser(t, users, "owner@x.com")
	other := createUser(t, users, "other@x.com")

	desc := "first draft"
	task := createTask(t, tasks, owner.ID, "write docs", &desc, time.Now().UTC())

	got, err := tasks.GetForOwner(ctx, task.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "write docs", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
	assert.False(t, got.Completed)

	_, err = tasks.GetForOwner(ctx, task.ID, other.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound, "tasks are invisible to other owners")

	got.Completed = true
	got.Description = nil
	got.UpdatedAt = time.Now().UTC()
	require.NoError(t, tasks.Update(ctx, got))

	reloaded, err := tasks.GetForOwner(ctx, task.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Completed)
	assert.Nil(t, reloaded.Description)

	missing := *reloaded
	missing.ID = uuid.New()
	assert.ErrorIs(t, tasks.Update(ctx, &missing), store.ErrTaskNotFound)

	assert.ErrorIs(t, tasks.Delete(ctx, task.ID, other.ID), store.ErrTaskNotFound)
	require.NoError(t, tasks.Delete(ctx, task.ID, owner.ID))
	assert.ErrorIs(t, tasks.Delete(ctx, task.ID, owner.ID), store.ErrTaskNotFound)
}

func TestTaskStore_ListAndCount(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	users := gormstore.NewUserStore(db, nil)
	tasks := gormstore.NewTaskStore(db, nil)
	ctx := context.Background()

	owner := createUser(t, users, "owner@x.com")
	other := createUser(t, users, "other@x.com")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	notes := "Buy MILK on the way"
	t1 := createTask(t, tasks, owner.ID, "Write Docs", nil, base)
	t2 := createTask(t, tasks, owner.ID, "groceries", &notes, base.Add(time.Minute))
	t3 := createTask(t, tasks, owner.ID, "100% coverage", nil, base.Add(2*time.Minute))
	createTask(t, tasks, other.ID, "write docs for someone else", nil, base)

	t2.Completed = true
	require.NoError(t, tasks.Update(ctx, t2))

	completed := true
	pending := false

	tests := []struct {
		name      string
		filter    store.TaskFilter
		want      []uuid.UUID
		wantTotal int
	}{
		{
			name:      "owner only newest first",
			filter:    store.TaskFilter{OwnerID: owner.ID, Limit: 10},
			want:      []uuid.UUID{t3.ID, t2.ID, t1.ID},
			wantTotal: 3,
		},
		{
			name:      "completed",
			filter:    store.TaskFilter{OwnerID: owner.ID, Completed: &completed, Limit: 10},
			want:      []uuid.UUID{t2.ID},
			wantTotal: 1,
		},
		{
			name:      "pending",
			filter:    store.TaskFilter{OwnerID: owner.ID, Completed: &pending, Limit: 10},
			want:      []uuid.UUID{t3.ID, t1.ID},
			wantTotal: 2,
		},
		{
			name:      "case-insensitive search on title",
			filter:    store.TaskFilter{OwnerID: owner.ID, Search: "DOCS", Limit: 10},
			want:      []uuid.UUID{t1.ID},
			wantTotal: 1,
		},
		{
			name:      "search matches description",
			filter:    store.TaskFilter{OwnerID: owner.ID, Search: "milk", Limit: 10},
			want:      []uuid.UUID{t2.ID},
			wantTotal: 1,
		},
		{
			name:      "case-sensitive search misses",
			filter:    store.TaskFilter{OwnerID: owner.ID, Search: "docs", CaseSensitive: true, Limit: 10},
			want:      []uuid.UUID{},
			wantTotal: 0,
		},
		{
			name:      "case-sensitive search hits",
			filter:    store.TaskFilter{OwnerID: owner.ID, Search: "MILK", CaseSensitive: true, Limit: 10},
			want:      []uuid.UUID{t2.ID},
			wantTotal: 1,
		},
		{
			name:      "wildcards are literal",
			filter:    store.TaskFilter{OwnerID: owner.ID, Search: "%", Limit: 10},
			want:      []uuid.UUID{t3.ID},
			wantTotal: 1,
		},
		{
			name:      "search combined with status",
			filter:    store.TaskFilter{OwnerID: owner.ID, Completed: &pending, Search: "milk", Limit: 10},
			want:      []uuid.UUID{},
			wantTotal: 0,
		},
		{
			name:      "second page",
			filter:    store.TaskFilter{OwnerID: owner.ID, Offset: 2, Limit: 2},
			want:      []uuid.UUID{t1.ID},
			wantTotal: 3,
		},
		{
			name:      "offset past end",
			filter:    store.TaskFilter{OwnerID: owner.ID, Offset: 10, Limit: 10},
			want:      []uuid.UUID{},
			wantTotal: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tasks.List(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]uuid.UUID, 0, len(got))
			for _, task := range got {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.want, ids)

			total, err := tasks.Count(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestTaskStore_SearchFoldsNonASCIICase(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	users := gormstore.NewUserStore(db, nil)
	tasks := gormstore.NewTaskStore(db, nil)
	memory := mocks.NewMemoryTaskStore()
	ctx := context.Background()

	owner := createUser(t, users, "owner@x.com")
	notes := "Straße repaving"
	elan := createTask(t, tasks, owner.ID, "Élan report", nil, time.Now().UTC())
	street := createTask(t, tasks, owner.ID, "errands", &notes, time.Now().UTC().Add(time.Second))
	require.NoError(t, memory.Create(ctx, elan))
	require.NoError(t, memory.Create(ctx, street))

	tests := []struct {
		name          string
		search        string
		caseSensitive bool
		want          int
	}{
		{"exact case", "Élan", false, 1},
		{"lowercase term", "élan", false, 1},
		{"uppercase term", "ÉLAN", false, 1},
		{"description", "STRASSE", false, 0},
		{"description folded", "STRAßE", false, 1},
		{"case-sensitive hit", "Élan", true, 1},
		{"case-sensitive miss", "élan", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := store.TaskFilter{OwnerID: owner.ID, Search: tt.search, CaseSensitive: tt.caseSensitive, Limit: 10}

			got, err := tasks.Count(ctx, filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			want, err := memory.Count(ctx, filter)
			require.NoError(t, err)
			assert.Equal(t, want, got, "sqlite and in-memory search disagree")
		})
	}
}
