// Package gormstore implements the internal/store interfaces on top of GORM.
// The dialect is chosen from configuration: gorm.io/driver/postgres for
// deployments and gorm.io/driver/sqlite for local runs and tests. The schema
// is created with AutoMigrate from the models in this package.
package gormstore
