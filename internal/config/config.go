package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Tasks    TasksConfig    `mapstructure:"tasks"`
}

// Environment names accepted by ServerConfig.Environment.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// Environment controls whether error responses carry diagnostic details.
	Environment string `mapstructure:"environment" validate:"required,oneof=development test production"`
	// AllowedOrigin is the single cross-origin caller allowed by CORS ("*" for any).
	AllowedOrigin   string        `mapstructure:"allowed_origin"   validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// IsProduction reports whether the server runs in production mode.
func (c ServerConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Database backends.
const (
	BackendGORM = "gorm"
	BackendSQL  = "sql"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Backend selects the store implementation: the GORM repository or the
	// hand-written SQL stores on top of pgx.
	Backend      string `mapstructure:"backend"        validate:"required,oneof=gorm sql"`
	Driver       string `mapstructure:"driver"         validate:"required,oneof=postgres sqlite"`
	URL          string `mapstructure:"url"            validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	AccessTokenSecret  string `mapstructure:"access_token_secret"  validate:"required,min=32"`
	RefreshTokenSecret string `mapstructure:"refresh_token_secret" validate:"required,min=32,nefield=AccessTokenSecret"`

	AccessTokenLifetime  time.Duration `mapstructure:"access_token_lifetime"  validate:"gt=0"`
	RefreshTokenLifetime time.Duration `mapstructure:"refresh_token_lifetime" validate:"gt=0"`

	BcryptCost int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// TasksConfig holds settings for task queries.
type TasksConfig struct {
	// SearchCaseSensitive makes the title/description search match case exactly.
	// The default is case-insensitive matching on every store backend.
	SearchCaseSensitive bool `mapstructure:"search_case_sensitive"`
}
