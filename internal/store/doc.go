// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. Implementations live under
// internal/platform (postgres over database/sql, gormstore over GORM) and
// internal/mocks (in-memory).
package store
