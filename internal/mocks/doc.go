// Package mocks provides centralized test doubles for the store and auth
// interfaces.
//
// Two styles are available:
//
//   - In-memory fakes (MemoryUserStore, MemoryTaskStore) that behave like a
//     real backend, including owner scoping, ordering and search rules. Use
//     them for behavioural tests of services and handlers.
//   - Function-field and testify/mock doubles (MockJWTService,
//     MockPasswordHasher, TestifyMockTaskStore) for forcing specific
//     results or failures.
//
// Usage:
//
//	users := mocks.NewMemoryUserStore()
//	tasks := mocks.NewMemoryTaskStore()
//	svc := service.NewTaskService(tasks, config.TasksConfig{}, nil)
package mocks
