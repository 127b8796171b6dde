// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. Stores run raw SQL
// through store.DBTX (a *sql.DB or *sql.Tx opened with the pgx stdlib driver),
// translate PostgreSQL error codes into store errors, and ship the goose
// migrations that create their schema.
package postgres
