package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	ObjectStore ObjectStoreConfig `yaml:"object_store"`
	Pagination  PaginationConfig  `yaml:"pagination"`
	Retry       RetryConfig       `yaml:"retry"`
	Log         LogConfig         `yaml:"log"`
}

// ServerConfig holds process-level settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// ObjectStoreConfig holds S3-compatible storage settings for attachment
// files. The endpoint must not include a scheme.
type ObjectStoreConfig struct {
	Endpoint  string `yaml:"endpoint"   env:"OBJECT_STORE_ENDPOINT"   env-default:"localhost:9000"`
	AccessKey string `yaml:"access_key" env:"OBJECT_STORE_ACCESS_KEY" env-required:"true"`
	SecretKey string `yaml:"secret_key" env:"OBJECT_STORE_SECRET_KEY" env-required:"true"`
	Region    string `yaml:"region"     env:"OBJECT_STORE_REGION"     env-default:"us-east-1"`
	UseSSL    bool   `yaml:"use_ssl"    env:"OBJECT_STORE_USE_SSL"    env-default:"false"`
	Bucket    string `yaml:"bucket"     env:"OBJECT_STORE_BUCKET"     env-default:"attachments"`
}

// PaginationConfig bounds list and query page sizes.
type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit" env:"PAGINATION_DEFAULT_LIMIT" env-default:"50"`
	MaxLimit     int `yaml:"max_limit"     env:"PAGINATION_MAX_LIMIT"     env-default:"200"`
}

// RetryConfig bounds the retry of write transactions on storage failures.
type RetryConfig struct {
	MaxElapsedTime  time.Duration `yaml:"max_elapsed_time" env:"RETRY_MAX_ELAPSED_TIME" env-default:"5s"`
	InitialInterval time.Duration `yaml:"initial_interval" env:"RETRY_INITIAL_INTERVAL" env-default:"50ms"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
