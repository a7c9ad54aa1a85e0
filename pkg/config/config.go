package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Drafts  DraftsConfig
	DB      DBConfig
	Redis   RedisConfig
	Metrics MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field requirements envconfig cannot express.
func (c *Config) Validate() error {
	backend, err := enums.ParseDraftBackend(strings.ToLower(strings.TrimSpace(c.Drafts.Backend)))
	if err != nil {
		return fmt.Errorf("%s: %w", EnvDraftBackend, err)
	}
	c.Drafts.Backend = string(backend)

	switch backend {
	case enums.DraftBackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("%s or %s is required for the redis draft backend", EnvRedisURL, EnvRedisAddr)
		}
	case enums.DraftBackendDatabase:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for the database draft backend", EnvDBDSN)
		}
	}

	driver := strings.ToLower(strings.TrimSpace(c.DB.Driver))
	if driver != DBDriverPostgres && driver != DBDriverSQLite {
		return fmt.Errorf("%s must be %s or %s, got %q", EnvDBDriver, DBDriverPostgres, DBDriverSQLite, c.DB.Driver)
	}
	c.DB.Driver = driver

	if c.Drafts.TTL < 0 {
		return fmt.Errorf("%s must not be negative", EnvDraftTTL)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"PROCUREFLOW_APP_ENV" required:"true"`
	Port         string `envconfig:"PROCUREFLOW_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PROCUREFLOW_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"PROCUREFLOW_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"PROCUREFLOW_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DraftsConfig selects where award wizard drafts are saved.
type DraftsConfig struct {
	Backend string        `envconfig:"PROCUREFLOW_DRAFT_BACKEND" default:"memory"`
	TTL     time.Duration `envconfig:"PROCUREFLOW_DRAFT_TTL" default:"720h"`
}

type DBConfig struct {
	Driver      string `envconfig:"PROCUREFLOW_DB_DRIVER" default:"sqlite"`
	DSN         string `envconfig:"PROCUREFLOW_DB_DSN" default:"file:procureflow.db?cache=shared"`
	AutoMigrate bool   `envconfig:"PROCUREFLOW_DB_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"PROCUREFLOW_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"PROCUREFLOW_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"PROCUREFLOW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PROCUREFLOW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PROCUREFLOW_REDIS_URL"`
	Address      string        `envconfig:"PROCUREFLOW_REDIS_ADDR"`
	Password     string        `envconfig:"PROCUREFLOW_REDIS_PASSWORD"`
	DB           int           `envconfig:"PROCUREFLOW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PROCUREFLOW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PROCUREFLOW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PROCUREFLOW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PROCUREFLOW_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"PROCUREFLOW_REDIS_WRITE_TIMEOUT" default:"3s"`
}

type MetricsConfig struct {
	Enabled bool `envconfig:"PROCUREFLOW_METRICS_ENABLED" default:"true"`
}
