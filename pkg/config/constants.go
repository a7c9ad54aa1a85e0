package config

const (
	EnvPrefix = "PROCUREFLOW"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv       = "PROCUREFLOW_APP_ENV"
	EnvPort         = "PROCUREFLOW_APP_PORT"
	EnvLogLevel     = "PROCUREFLOW_LOG_LEVEL"
	EnvLogFormat    = "PROCUREFLOW_LOG_FORMAT"
	EnvLogWarnStack = "PROCUREFLOW_LOG_WARN_STACK"

	EnvDraftBackend = "PROCUREFLOW_DRAFT_BACKEND"
	EnvDraftTTL     = "PROCUREFLOW_DRAFT_TTL"

	EnvDBDriver      = "PROCUREFLOW_DB_DRIVER"
	EnvDBDSN         = "PROCUREFLOW_DB_DSN"
	EnvDBAutoMigrate = "PROCUREFLOW_DB_AUTO_MIGRATE"

	EnvRedisURL  = "PROCUREFLOW_REDIS_URL"
	EnvRedisAddr = "PROCUREFLOW_REDIS_ADDR"

	EnvMetricsEnabled = "PROCUREFLOW_METRICS_ENABLED"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)
