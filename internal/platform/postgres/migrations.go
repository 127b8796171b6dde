package postgres

import "embed"

// MigrationsDir is the directory inside MigrationsFS holding the goose SQL files.
const MigrationsDir = "migrations"

// MigrationsTable is the goose version table name.
const MigrationsTable = "schema_migrations"

// MigrationsFS embeds the SQL migrations so the binary and the tests never
// depend on the working directory.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
